// Package gitinfo looks up the commit that last touched a model file, used
// for the optional "// Source version:" stamp.
package gitinfo

import (
	"io"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/teranos/mutigen/errors"
)

// LastCommit returns the hash of the newest commit touching any of paths.
// Files without history contribute nothing; "" means none had any.
func LastCommit(paths ...string) (string, error) {
	var newest *object.Commit
	for _, path := range paths {
		commit, err := lastCommit(path)
		if err != nil {
			return "", err
		}
		if commit != nil && (newest == nil || commit.Committer.When.After(newest.Committer.When)) {
			newest = commit
		}
	}
	if newest == nil {
		return "", nil
	}
	return newest.Hash.String(), nil
}

func lastCommit(path string) (*object.Commit, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}
	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to open repository for %s", path),
			"disable output.stamp_source_version outside git checkouts")
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open worktree")
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve worktree root")
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return nil, errors.Wrapf(err, "%s is outside %s", path, root)
	}
	rel = filepath.ToSlash(rel)

	iter, err := repo.Log(&git.LogOptions{FileName: &rel})
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// empty repository
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read history of %s", rel)
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read history of %s", rel)
	}
	return commit, nil
}
