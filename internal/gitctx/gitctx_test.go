package gitctx

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesFromDiff(t *testing.T) {
	unified := `diff --git a/App/View.swift b/App/View.swift
index 83db48f..bf269f4 100644
--- a/App/View.swift
+++ b/App/View.swift
@@ -1,3 +1,4 @@
 import UIKit
+import SwiftUI
 
 final class View {}
diff --git a/App/Old.swift b/App/Old.swift
deleted file mode 100644
index 83db48f..0000000
--- a/App/Old.swift
+++ /dev/null
@@ -1 +0,0 @@
-struct Old {}
diff --git a/App/New.swift b/App/New.swift
new file mode 100644
index 0000000..bf269f4
--- /dev/null
+++ b/App/New.swift
@@ -0,0 +1 @@
+struct New {}
`
	files, err := FilesFromDiff(unified)
	require.NoError(t, err)
	assert.Equal(t, []string{"App/View.swift", "App/New.swift"}, files)
}

func TestFilesFromDiff_Empty(t *testing.T) {
	files, err := FilesFromDiff("")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"Pods/Session.swift", []string{"Pods/**"}, true},
		{"App/View.swift", []string{"Pods/**"}, false},
		{"Generated.swift", []string{"**/*Generated.swift"}, true},
		{"App/R.Generated.swift", []string{"**/*Generated.swift"}, true},
		{"View.swift", []string{"*.swift"}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchesAny(tt.path, tt.patterns), "%s vs %v", tt.path, tt.patterns)
	}
}

func TestMatchesAny_EmptyPatterns(t *testing.T) {
	assert.False(t, MatchesAny("main.swift", nil))
	assert.False(t, MatchesAny("main.swift", []string{}))
}

// setupTestRepo creates a temp git repo on branch main with one commit and a
// feature branch that edits one file and adds another.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test",
			"GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=test",
			"GIT_COMMITTER_EMAIL=test@test.com",
		)
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("command %v failed: %v\n%s", args, err, out)
		}
	}

	write := func(name, content string) {
		t.Helper()
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	run("git", "init")
	run("git", "checkout", "-b", "main")
	write("App/View.swift", "final class View {}\n")
	write("App/Model.swift", "struct Model {}\n")
	run("git", "add", "-A")
	run("git", "commit", "-m", "init")
	run("git", "remote", "add", "origin", "git@github.com:acme/ios-app.git")

	run("git", "checkout", "-b", "feature")
	write("App/View.swift", "final class View {\n    var title = \"\"\n}\n")
	write("App/Detail.swift", "struct Detail {}\n")
	run("git", "add", "-A")
	run("git", "commit", "-m", "feature")

	return dir
}

func TestGetRepoMeta(t *testing.T) {
	dir := setupTestRepo(t)
	chdirForTest(t, dir)

	meta, err := GetRepoMeta()
	require.NoError(t, err)
	assert.Len(t, meta.Head, 40)
	assert.Equal(t, "feature", meta.Branch)

	// Temp dirs may sit behind symlinks (macOS /var -> /private/var).
	wantRoot, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(meta.Root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestRemoteURL(t *testing.T) {
	dir := setupTestRepo(t)
	chdirForTest(t, dir)

	url, err := RemoteURL("origin")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:acme/ios-app.git", url)

	_, err = RemoteURL("upstream")
	assert.Error(t, err)
}

func TestChangedFiles(t *testing.T) {
	dir := setupTestRepo(t)
	chdirForTest(t, dir)

	files, err := ChangedFiles("main")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"App/View.swift", "App/Detail.swift"}, files)
}

// chdirForTest changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir, added in Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("restore wd %s: %v", oldwd, err)
		}
	})
}
