package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitFile(t *testing.T, repo *git.Repository, dir, name, content string, when time.Time) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	hash, err := wt.Commit("update "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: when},
	})
	require.NoError(t, err)
	return hash.String()
}

func TestLastCommit(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := commitFile(t, repo, dir, "a.yaml", "classes: []\n", base)
	second := commitFile(t, repo, dir, "b.yaml", "classes: []\n", base.Add(time.Hour))

	hash, err := LastCommit(filepath.Join(dir, "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, first, hash)

	hash, err = LastCommit(filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml"))
	require.NoError(t, err)
	assert.Equal(t, second, hash)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.yaml"), nil, 0o644))
	hash, err = LastCommit(filepath.Join(dir, "new.yaml"))
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestLastCommitEmptyRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), nil, 0o644))

	hash, err := LastCommit(filepath.Join(dir, "a.yaml"))
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestLastCommitOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := LastCommit(path)
	assert.Error(t, err)
}
