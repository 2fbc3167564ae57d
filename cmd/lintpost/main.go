package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/dshills/lintpost/internal/cli"
)

func main() {
	// A missing .env is fine; CI provides the environment directly.
	_ = godotenv.Load()
	os.Exit(cli.Run())
}
