// Package git resolves the set of changed files between two commits
// using go-git.
package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	goGit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	formatdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/Graylog2/reviewbot/internal/domain"
)

// lintableExtensions are the source file extensions the linter handles.
var lintableExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
}

// Engine implements the DiffResolver port backed by go-git.
type Engine struct {
	repoDir string
}

// NewEngine constructs an engine for the provided repository directory.
func NewEngine(repoDir string) *Engine {
	return &Engine{repoDir: repoDir}
}

// ChangedFiles lists the lintable files under prefix that were added,
// copied, modified, or renamed between base and head. Deletions are
// excluded. Returned paths are relative to the prefix. A diff that
// cannot be computed (bad SHAs, missing repository) is a fatal error.
func (e *Engine) ChangedFiles(ctx context.Context, baseSHA, headSHA, prefix string) ([]string, error) {
	repo, err := goGit.PlainOpenWithOptions(e.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repo: %w", err)
	}

	baseCommit, err := resolveCommit(repo, baseSHA)
	if err != nil {
		return nil, fmt.Errorf("resolve base ref %s: %w", baseSHA, err)
	}

	headCommit, err := resolveCommit(repo, headSHA)
	if err != nil {
		return nil, fmt.Errorf("resolve head ref %s: %w", headSHA, err)
	}

	patch, err := baseCommit.PatchContext(ctx, headCommit)
	if err != nil {
		return nil, fmt.Errorf("compute patch: %w", err)
	}

	files := []string{}
	for _, fp := range patch.FilePatches() {
		path, status := pathAndStatus(fp)
		if status == domain.FileStatusDeleted {
			continue
		}
		if !lintableExtensions[filepath.Ext(path)] {
			continue
		}
		rel, ok := underPrefix(path, prefix)
		if !ok {
			continue
		}
		files = append(files, rel)
	}

	return files, nil
}

func resolveCommit(repo *goGit.Repository, ref string) (*object.Commit, error) {
	candidates := []string{
		ref,
		fmt.Sprintf("refs/heads/%s", ref),
		fmt.Sprintf("refs/remotes/origin/%s", ref),
	}

	var lastErr error
	for _, candidate := range candidates {
		name := plumbing.Revision(candidate)
		hash, err := repo.ResolveRevision(name)
		if err != nil {
			lastErr = err
			continue
		}
		return repo.CommitObject(*hash)
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("unable to resolve ref %s", ref)
}

// pathAndStatus returns the head-side path and change status for a file
// patch. Copies surface as adds in go-git, which keeps them included.
func pathAndStatus(fp formatdiff.FilePatch) (string, string) {
	from, to := fp.Files()

	switch {
	case from == nil && to != nil:
		return to.Path(), domain.FileStatusAdded
	case from != nil && to == nil:
		return from.Path(), domain.FileStatusDeleted
	case from != nil && to != nil:
		if from.Path() != to.Path() {
			return to.Path(), domain.FileStatusRenamed
		}
		return to.Path(), domain.FileStatusModified
	default:
		return "", domain.FileStatusModified
	}
}

// underPrefix strips the prefix from a path. The second return value is
// false for paths outside the prefix.
func underPrefix(path, prefix string) (string, bool) {
	if prefix == "" {
		return path, true
	}
	trimmed := strings.TrimSuffix(prefix, "/")
	return strings.CutPrefix(path, trimmed+"/")
}
