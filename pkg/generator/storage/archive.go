package storage

import (
	"context"
	"strings"

	getter "github.com/hashicorp/go-getter"

	errUtils "github.com/taisan11/pj-creater/errors"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

// ArchiveCloner downloads the repository snapshot tarball over HTTP, so it
// needs no git client. Only hosts serving `<repo>/archive/<ref>.tar.gz` work.
type ArchiveCloner struct{}

// Name implements Cloner.
func (*ArchiveCloner) Name() string { return "archive" }

// Available is always true: downloads only need HTTP.
func (*ArchiveCloner) Available() bool { return true }

// Clone downloads the branch snapshot, or the default branch when branch is
// empty, and unpacks its top-level directory into dest.
func (a *ArchiveCloner) Clone(ctx context.Context, url, branch, dest string) error {
	src, err := archiveSource(url, branch)
	if err != nil {
		return err
	}

	log.Debug("Downloading repository archive", "src", src, "dest", dest)
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dest,
		Mode: getter.ClientModeDir,
	}
	if err := client.Get(); err != nil {
		return errUtils.Build(errUtils.ErrCloneFailed).
			WithCause(err).
			WithHint("Check that the repository exists and is public").
			WithContext("client", a.Name()).
			WithContext("url", url).
			Err()
	}
	return nil
}

// archiveSource maps a clone URL to a go-getter source that unpacks the
// single top-level directory of the snapshot tarball.
func archiveSource(url, branch string) (string, error) {
	if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
		return "", errUtils.Build(errUtils.ErrCloneFailed).
			WithExplanationf("The archive client cannot fetch `%s`", url).
			WithHint("Use the git or go-git client for non-http repositories").
			Err()
	}
	if branch == "" {
		branch = "HEAD"
	}
	base := strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")
	return base + "/archive/" + branch + ".tar.gz//*", nil
}
