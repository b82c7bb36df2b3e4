// Package storage fetches remote template repositories into a local cache.
package storage

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	giturl "github.com/kubescape/go-git-url"

	errUtils "github.com/taisan11/pj-creater/errors"
	"github.com/taisan11/pj-creater/pkg/config"
)

var (
	segmentPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	scpLikePattern = regexp.MustCompile(`^[\w.-]+@([\w.-]+):(.+)$`)
)

// Ref identifies a template repository and an optional directory inside it.
type Ref struct {
	Host    string
	Owner   string
	Name    string
	Branch  string
	SubPath string
	// URL overrides the clone URL derived from Host, Owner and Name.
	URL string
}

// ParseRef parses `owner/name[/sub/path]` or a repository URL. Shorthand
// references resolve against config.DefaultHost.
func ParseRef(s string) (Ref, error) {
	return ParseRefOn(s, config.DefaultHost)
}

// ParseRefOn is ParseRef with shorthand references resolved against host.
func ParseRefOn(s, host string) (Ref, error) {
	if host == "" {
		host = config.DefaultHost
	}
	s = strings.TrimSpace(s)
	if m := scpLikePattern.FindStringSubmatch(s); m != nil {
		s = "https://" + m[1] + "/" + m[2]
	}
	if strings.Contains(s, "://") {
		return parseURL(s)
	}
	return parseShorthand(s, host)
}

func parseShorthand(s, host string) (Ref, error) {
	parts := strings.Split(strings.Trim(s, "/"), "/")
	if len(parts) < 2 {
		return Ref{}, invalidRef(s, "expected `owner/name`")
	}
	for _, part := range parts {
		if !segmentPattern.MatchString(part) || part == "." || part == ".." {
			return Ref{}, invalidRef(s, fmt.Sprintf("invalid path segment `%s`", part))
		}
	}

	return Ref{
		Host:    host,
		Owner:   parts[0],
		Name:    strings.TrimSuffix(parts[1], ".git"),
		SubPath: strings.Join(parts[2:], "/"),
	}, nil
}

func parseURL(s string) (Ref, error) {
	u, err := giturl.NewGitURL(s)
	if err != nil {
		return Ref{}, errUtils.Build(errUtils.ErrInvalidTemplateRef).
			WithCause(err).
			WithExplanationf("Cannot parse repository URL `%s`", s).
			WithHint("Use `owner/name` or `https://github.com/owner/name`").
			WithContext("ref", s).
			Err()
	}

	ref := Ref{
		Host:    u.GetHostName(),
		Owner:   u.GetOwnerName(),
		Name:    strings.TrimSuffix(u.GetRepoName(), ".git"),
		Branch:  u.GetBranchName(),
		SubPath: strings.Trim(path.Clean("/"+u.GetPath()), "/"),
	}
	if ref.Owner == "" || ref.Name == "" {
		return Ref{}, invalidRef(s, "missing owner or repository name")
	}
	return ref, nil
}

func invalidRef(s, reason string) error {
	return errUtils.Build(errUtils.ErrInvalidTemplateRef).
		WithExplanationf("`%s`: %s", s, reason).
		WithHint("Use `owner/name[/sub/path]` or a repository URL").
		WithContext("ref", s).
		Err()
}

// CloneURL returns the URL the repository is cloned from.
func (r Ref) CloneURL() string {
	if r.URL != "" {
		return r.URL
	}
	return fmt.Sprintf("https://%s/%s/%s.git", r.Host, r.Owner, r.Name)
}

// Key names the cache entry of the repository.
func (r Ref) Key() string {
	key := r.Owner + "__" + r.Name
	if r.Branch != "" {
		key += "__" + strings.ReplaceAll(r.Branch, "/", "_")
	}
	return key
}

// String returns the shorthand form.
func (r Ref) String() string {
	s := r.Owner + "/" + r.Name
	if r.SubPath != "" {
		s += "/" + r.SubPath
	}
	if r.Branch != "" {
		s += "@" + r.Branch
	}
	return s
}
