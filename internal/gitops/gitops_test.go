package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	dir := t.TempDir()
	err := Init(dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git directory should exist")
}

func TestIsRepo(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsRepo(dir), "empty dir should not be a repo")

	require.NoError(t, Init(dir))
	assert.True(t, IsRepo(dir), "initialized dir should be a repo")
}

func TestCommitPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracked.json"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.json"), []byte("[]"), 0o644))

	hash, err := CommitPaths(dir, "classify: statement.csv", "Test Author", "test@example.com", "tracked.json")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Only the named path is committed.
	lsFiles := exec.Command("git", "ls-files")
	lsFiles.Dir = dir
	out, err := lsFiles.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "tracked.json")
	assert.NotContains(t, string(out), "untracked.json")

	// Verify commit message and author.
	log := exec.Command("git", "log", "--format=%s|%an <%ae>", "-1")
	log.Dir = dir
	out, err = log.Output()
	require.NoError(t, err)
	line := strings.TrimSpace(string(out))
	assert.Equal(t, "classify: statement.csv|Test Author <test@example.com>", line)
}
