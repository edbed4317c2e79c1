// Package git provides an abstraction for git operations.
package git

import (
	"context"
	"strings"
)

// Git defines git operations needed by skim.
type Git interface {
	// IsRepo reports whether dir is inside a git work tree.
	IsRepo(ctx context.Context, dir string) bool
	// RemoteURL returns the origin remote URL for dir.
	RemoteURL(ctx context.Context, dir string) (string, error)
	// Branch returns the current branch name, or short commit SHA if in detached HEAD state.
	Branch(ctx context.Context, dir string) (string, error)
	// TopLevel returns the absolute path of the work tree root for dir.
	TopLevel(ctx context.Context, dir string) (string, error)
	// GetDiff retrieves a unified diff for dir based on the given options.
	GetDiff(ctx context.Context, dir string, opts DiffOptions) (string, error)
}

// splitRemotePath returns the path segments of a git remote URL, with the
// host and a trailing .git suffix removed.
func splitRemotePath(remote string) []string {
	remote = strings.TrimSpace(remote)
	remote = strings.TrimSuffix(remote, ".git")
	if remote == "" {
		return nil
	}

	// scp-like syntax: git@host:owner/repo
	if strings.Contains(remote, "@") && !strings.Contains(remote, "://") {
		_, path, ok := strings.Cut(remote, ":")
		if !ok {
			return nil
		}
		return strings.Split(strings.Trim(path, "/"), "/")
	}

	// URL syntax: scheme://host/owner/repo
	if _, rest, ok := strings.Cut(remote, "://"); ok {
		parts := strings.Split(strings.Trim(rest, "/"), "/")
		if len(parts) < 2 {
			return nil
		}
		return parts[1:]
	}

	return nil
}

// ExtractOwnerRepo parses a git remote URL into owner and repository name.
// For nested paths (gitlab subgroups) the last two segments are used.
func ExtractOwnerRepo(remote string) (owner, repo string) {
	parts := splitRemotePath(remote)
	if len(parts) < 2 {
		return "", ""
	}
	return parts[len(parts)-2], parts[len(parts)-1]
}

// ExtractRepoName returns the repository name from a git remote URL.
func ExtractRepoName(remote string) string {
	_, repo := ExtractOwnerRepo(remote)
	return repo
}
