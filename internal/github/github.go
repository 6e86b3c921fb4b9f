// Package github resolves GitHub repository and release URLs to the
// release asset matching a target platform.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Masterminds/semver/v3"
	gogithub "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/dex-dev/dex/internal/config"
	"github.com/dex-dev/dex/internal/httputil"
	"github.com/dex-dev/dex/internal/log"
	"github.com/dex-dev/dex/internal/platform"
)

// Ref identifies a release: owner, repo, and an optional tag. An empty
// Tag means the latest release.
type Ref struct {
	Owner string
	Repo  string
	Tag   string
}

func (r Ref) String() string {
	if r.Tag == "" {
		return r.Owner + "/" + r.Repo
	}
	return r.Owner + "/" + r.Repo + "@" + r.Tag
}

// ParseURL recognizes GitHub repository and release URLs:
//
//	https://github.com/owner/repo
//	https://github.com/owner/repo/releases
//	https://github.com/owner/repo/releases/latest
//	https://github.com/owner/repo/releases/tag/v1.2.3
//
// http is accepted alongside https; a trailing slash is tolerated.
// Any other shape returns ok=false and the caller falls back to a plain
// download of the URL.
func ParseURL(raw string) (Ref, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return Ref{}, false
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return Ref{}, false
	}
	if u.Hostname() != "github.com" {
		return Ref{}, false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case len(segments) == 2:
		return Ref{Owner: segments[0], Repo: segments[1]}, segments[0] != "" && segments[1] != ""
	case len(segments) == 3 && segments[2] == "releases":
		return Ref{Owner: segments[0], Repo: segments[1]}, true
	case len(segments) == 4 && segments[2] == "releases" && segments[3] == "latest":
		return Ref{Owner: segments[0], Repo: segments[1]}, true
	case len(segments) == 5 && segments[2] == "releases" && segments[3] == "tag":
		return Ref{Owner: segments[0], Repo: segments[1], Tag: segments[4]}, segments[4] != ""
	}
	return Ref{}, false
}

// Client fetches release assets from the GitHub API.
type Client struct {
	gh            *gogithub.Client
	authenticated bool
	logger        log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API endpoint. For tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		if u, err := url.Parse(base); err == nil {
			c.gh.BaseURL = u
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. For tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.gh = gogithub.NewClient(hc)
	}
}

// WithLogger replaces the default logger.
func WithLogger(l log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a GitHub API client. When GITHUB_TOKEN is set the
// client authenticates to raise rate limits; absence of the token is not
// an error, only a quota risk.
func NewClient(opts ...Option) *Client {
	hc := httputil.NewClient(httputil.Options{Timeout: config.HTTPTimeout()})
	authenticated := false

	if token := config.GitHubToken(); token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
		hc = oauth2.NewClient(ctx, ts)
		authenticated = true
	}

	c := &Client{
		gh:            gogithub.NewClient(hc),
		authenticated: authenticated,
		logger:        log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolution is the outcome of resolving a release reference: the tag that
// was actually selected and the asset chosen for the platform.
type Resolution struct {
	Ref   Ref
	Tag   string
	Asset platform.Asset
}

// ResolveAsset fetches the release for ref and selects the asset matching
// the platform. Errors are typed: *APIError for retrieval failures and
// *platform.NoMatchError when no asset fits.
func (c *Client) ResolveAsset(ctx context.Context, ref Ref, p platform.Platform) (*Resolution, error) {
	release, err := c.fetchRelease(ctx, ref)
	if err != nil {
		return nil, err
	}

	tag := release.GetTagName()
	assets := make([]platform.Asset, 0, len(release.Assets))
	for _, a := range release.Assets {
		assets = append(assets, platform.Asset{
			Name: a.GetName(),
			URL:  a.GetBrowserDownloadURL(),
			Size: int64(a.GetSize()),
		})
	}
	c.logger.Debug("fetched release", "ref", ref.String(), "tag", tag, "assets", len(assets))

	if len(assets) == 0 {
		return nil, &APIError{
			Kind:       APINotFound,
			StatusCode: http.StatusNotFound,
			Err:        fmt.Errorf("release %s of %s/%s has no assets", tag, ref.Owner, ref.Repo),
		}
	}

	asset, err := platform.Select(p, assets)
	if err != nil {
		return nil, err
	}
	c.logger.Info("selected release asset", "tag", tag, "asset", asset.Name)

	return &Resolution{Ref: ref, Tag: tag, Asset: asset}, nil
}

func (c *Client) fetchRelease(ctx context.Context, ref Ref) (*gogithub.RepositoryRelease, error) {
	if ref.Tag != "" {
		release, _, err := c.gh.Repositories.GetReleaseByTag(ctx, ref.Owner, ref.Repo, ref.Tag)
		if err != nil {
			return nil, classifyAPIError(err)
		}
		return release, nil
	}

	release, _, err := c.gh.Repositories.GetLatestRelease(ctx, ref.Owner, ref.Repo)
	if err != nil {
		classified := classifyAPIError(err)
		// Some repos tag releases without publishing them formally.
		// Fall back to the highest semver tag.
		if isNotFound(classified) {
			if release, tagErr := c.latestFromTags(ctx, ref); tagErr == nil {
				return release, nil
			}
		}
		return nil, classified
	}
	return release, nil
}

// latestFromTags lists the repository's tags and fetches the release for
// the highest tag that parses as a semantic version.
func (c *Client) latestFromTags(ctx context.Context, ref Ref) (*gogithub.RepositoryRelease, error) {
	tags, _, err := c.gh.Repositories.ListTags(ctx, ref.Owner, ref.Repo,
		&gogithub.ListOptions{PerPage: 100})
	if err != nil {
		return nil, classifyAPIError(err)
	}

	var bestTag string
	var bestVersion *semver.Version
	for _, t := range tags {
		v, err := semver.NewVersion(strings.TrimPrefix(t.GetName(), "v"))
		if err != nil {
			continue
		}
		if bestVersion == nil || v.GreaterThan(bestVersion) {
			bestVersion = v
			bestTag = t.GetName()
		}
	}
	if bestTag == "" {
		return nil, &APIError{
			Kind:       APINotFound,
			StatusCode: http.StatusNotFound,
			Err:        fmt.Errorf("no releases or version tags in %s/%s", ref.Owner, ref.Repo),
		}
	}
	c.logger.Debug("falling back to tags API", "tag", bestTag)

	release, _, err := c.gh.Repositories.GetReleaseByTag(ctx, ref.Owner, ref.Repo, bestTag)
	if err != nil {
		return nil, classifyAPIError(err)
	}
	return release, nil
}
