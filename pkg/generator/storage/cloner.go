package storage

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	errUtils "github.com/taisan11/pj-creater/errors"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=cloner.go -destination=mock_cloner_test.go -package=storage

// Cloner makes a shallow clone of a repository into dest.
type Cloner interface {
	Name() string
	Available() bool
	Clone(ctx context.Context, url, branch, dest string) error
}

// GitCLICloner clones with the git executable.
type GitCLICloner struct {
	// Binary defaults to `git` on PATH.
	Binary string
}

func (c *GitCLICloner) binary() string {
	if c.Binary == "" {
		return "git"
	}
	return c.Binary
}

// Name implements Cloner.
func (c *GitCLICloner) Name() string { return "git" }

// Available reports whether the git binary is on PATH.
func (c *GitCLICloner) Available() bool {
	_, err := exec.LookPath(c.binary())
	return err == nil
}

// Clone runs a shallow `git clone` of url into dest.
func (c *GitCLICloner) Clone(ctx context.Context, url, branch, dest string) error {
	args := []string{"clone", "--depth", "1", "--quiet"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, "--", url, dest)

	log.Debug("Running git clone", "url", url, "branch", branch, "dest", dest)
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary(), args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errUtils.Build(errUtils.ErrCloneFailed).
			WithCause(err).
			WithExplanation(strings.TrimSpace(stderr.String())).
			WithHint("Check that the repository exists and is accessible").
			WithContext("client", c.Name()).
			WithContext("url", url).
			Err()
	}
	return nil
}

// GoGitCloner clones in-process with go-git.
type GoGitCloner struct{}

// Name implements Cloner.
func (GoGitCloner) Name() string { return "go-git" }

// Available is always true: go-git runs in process.
func (GoGitCloner) Available() bool { return true }

// Clone makes a shallow single-branch clone of url into dest.
func (g GoGitCloner) Clone(ctx context.Context, url, branch, dest string) error {
	opts := &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	log.Debug("Cloning with go-git", "url", url, "branch", branch, "dest", dest)
	if _, err := git.PlainCloneContext(ctx, dest, false, opts); err != nil {
		return errUtils.Build(errUtils.ErrCloneFailed).
			WithCause(err).
			WithHint("Check that the repository exists and is accessible").
			WithContext("client", g.Name()).
			WithContext("url", url).
			Err()
	}
	return nil
}

// ClonersFor maps client names from settings to cloners, keeping their order.
func ClonersFor(names []string) ([]Cloner, error) {
	cloners := make([]Cloner, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "git":
			cloners = append(cloners, &GitCLICloner{})
		case "go-git", "gogit":
			cloners = append(cloners, GoGitCloner{})
		case "archive":
			cloners = append(cloners, &ArchiveCloner{})
		default:
			return nil, errUtils.Build(errUtils.ErrInvalidSettings).
				WithExplanationf("Unknown fetch client `%s`", name).
				WithHint("Supported clients: git, go-git, archive").
				WithContext("fetch.clients", strings.Join(names, ",")).
				Err()
		}
	}
	return cloners, nil
}
