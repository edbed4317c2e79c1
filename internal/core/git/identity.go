package git

import (
	"context"
	"errors"
	"path/filepath"
)

// ErrNoRepository is returned when session detection runs outside a git work tree.
var ErrNoRepository = errors.New("no git repository detected")

// Identity describes the repository and branch a review session is scoped to.
type Identity struct {
	SessionID  string // "<repo>:<branch>"
	RepoName   string
	BranchName string
}

// DetectIdentity resolves the session identity for dir. The repository name
// comes from the origin remote when one is configured, otherwise from the
// work tree directory name.
func DetectIdentity(ctx context.Context, g Git, dir string) (Identity, error) {
	if !g.IsRepo(ctx, dir) {
		return Identity{}, ErrNoRepository
	}

	branch, err := g.Branch(ctx, dir)
	if err != nil {
		return Identity{}, err
	}

	var repo string
	if remote, err := g.RemoteURL(ctx, dir); err == nil {
		repo = ExtractRepoName(remote)
	}
	if repo == "" {
		top, err := g.TopLevel(ctx, dir)
		if err != nil {
			return Identity{}, err
		}
		repo = filepath.Base(top)
	}

	return Identity{
		SessionID:  repo + ":" + branch,
		RepoName:   repo,
		BranchName: branch,
	}, nil
}
