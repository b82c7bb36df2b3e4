package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"
	"github.com/samber/lo"

	errUtils "github.com/taisan11/pj-creater/errors"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

const (
	stampSuffix    = ".fetched"
	lockSuffix     = ".lock"
	lockRetryDelay = 100 * time.Millisecond
	lockTimeout    = 2 * time.Minute
)

// RepoCache keeps one shallow clone per repository under Dir.
type RepoCache struct {
	Dir     string
	TTL     time.Duration
	Cloners []Cloner

	// now is replaced in tests.
	now func() time.Time
}

// NewRepoCache returns a cache rooted at dir.
func NewRepoCache(dir string, ttl time.Duration, cloners []Cloner) *RepoCache {
	return &RepoCache{Dir: dir, TTL: ttl, Cloners: cloners}
}

func (c *RepoCache) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// Fetch returns the local directory of ref, cloning the repository when the
// cached copy is missing, older than TTL, or update is set.
func (c *RepoCache) Fetch(ctx context.Context, ref Ref, update bool) (string, error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", errUtils.Build(errUtils.ErrCacheDirectoryCreation).
			WithCause(err).
			WithContext("dir", c.Dir).
			Err()
	}

	repoDir := filepath.Join(c.Dir, ref.Key())
	err := c.withLock(ctx, repoDir, func() error {
		if !update && c.fresh(repoDir) {
			log.Debug("Using cached template repository", "ref", ref.String(), "dir", repoDir)
			return nil
		}
		return c.refresh(ctx, ref, repoDir)
	})
	if err != nil {
		return "", err
	}

	dir := filepath.Join(repoDir, filepath.FromSlash(ref.SubPath))
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", errUtils.Build(errUtils.ErrTemplateNotFound).
			WithExplanationf("`%s` does not exist in `%s/%s`", ref.SubPath, ref.Owner, ref.Name).
			WithContext("ref", ref.String()).
			Err()
	}
	return dir, nil
}

// fresh reports whether repoDir was fetched less than TTL ago.
func (c *RepoCache) fresh(repoDir string) bool {
	stamp, err := os.Stat(repoDir + stampSuffix)
	if err != nil {
		return false
	}
	if _, err := os.Stat(repoDir); err != nil {
		return false
	}
	return c.clock().Sub(stamp.ModTime()) < c.TTL
}

func (c *RepoCache) refresh(ctx context.Context, ref Ref, repoDir string) error {
	cloner, ok := lo.Find(c.Cloners, func(cl Cloner) bool { return cl.Available() })
	if !ok {
		names := lo.Map(c.Cloners, func(cl Cloner, _ int) string { return cl.Name() })
		return errUtils.Build(errUtils.ErrNoCapableClient).
			WithExplanationf("None of the configured clients can run: %s", strings.Join(names, ", ")).
			WithHint("Install git or add `go-git` to `fetch.clients`").
			Err()
	}

	log.Debug("Refreshing template repository", "ref", ref.String(), "client", cloner.Name())
	if err := os.RemoveAll(repoDir); err != nil {
		return errUtils.Build(errUtils.ErrCacheClean).WithCause(err).WithContext("dir", repoDir).Err()
	}
	_ = os.Remove(repoDir + stampSuffix)

	if err := cloner.Clone(ctx, ref.CloneURL(), ref.Branch, repoDir); err != nil {
		_ = os.RemoveAll(repoDir)
		return err
	}

	stamp := []byte(c.clock().UTC().Format(time.RFC3339) + "\n")
	if err := renameio.WriteFile(repoDir+stampSuffix, stamp, 0o644); err != nil {
		return errUtils.Build(errUtils.ErrCacheDirectoryCreation).WithCause(err).WithContext("dir", repoDir).Err()
	}
	if err := os.Chtimes(repoDir+stampSuffix, c.clock(), c.clock()); err != nil {
		log.Trace("Failed to set fetch stamp time", "error", err)
	}
	return nil
}

func (c *RepoCache) withLock(ctx context.Context, repoDir string, fn func() error) error {
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	lock := flock.New(repoDir + lockSuffix)
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil || !locked {
		return errUtils.Build(errUtils.ErrCacheLocked).
			WithCause(err).
			WithExplanation("Another process is fetching the same template").
			WithContext("lock", repoDir+lockSuffix).
			Err()
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Trace("Failed to unlock cache entry", "error", err, "path", repoDir)
		}
	}()

	return fn()
}

// Clean removes every cached repository.
func (c *RepoCache) Clean() error {
	if err := os.RemoveAll(c.Dir); err != nil {
		return errUtils.Build(errUtils.ErrCacheClean).
			WithCause(err).
			WithContext("dir", c.Dir).
			Err()
	}
	log.Debug("Removed template cache", "dir", c.Dir)
	return nil
}
