// SPDX-License-Identifier: MPL-2.0

package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultEndpoint = "https://api.github.com"
	defaultOwner    = "pipewalk"
	defaultRepo     = "pipewalk"

	// defaultPerPage is the number of releases fetched per API page.
	defaultPerPage = 30

	// maxPages is the upper bound on pagination to avoid runaway requests.
	maxPages = 3

	// maxResponseBytes is the upper bound on hub response size (10 MB).
	// Prevents unbounded memory consumption from malicious or malformed responses.
	maxResponseBytes = 10 << 20

	requestTimeout = 30 * time.Second
)

var (
	// ErrNoReleases reports that the hub has no published stable release yet.
	ErrNoReleases = errors.New("no releases published")

	// ErrDevelopmentBuild reports that the running binary carries no comparable
	// version, so an update check is meaningless.
	ErrDevelopmentBuild = errors.New("development build has no release version")
)

type (
	// Release is one published version as the hub reports it.
	Release struct {
		TagName     string    // Semantic version tag, e.g. "v1.5.0"
		Name        string    // Human-readable release name
		Draft       bool      // True for unpublished drafts
		Prerelease  bool      // True for alpha/beta/RC releases
		PublishedAt time.Time // Publication timestamp
		HTMLURL     string    // Browser URL for the release page
	}

	// hubRelease is the JSON wire format for a hub release response.
	hubRelease struct {
		TagName     string    `json:"tag_name"`
		Name        string    `json:"name"`
		Draft       bool      `json:"draft"`
		Prerelease  bool      `json:"prerelease"`
		PublishedAt time.Time `json:"published_at"`
		HTMLURL     string    `json:"html_url"`
	}

	// Update is the outcome of comparing the running version with the hub.
	Update struct {
		Current string
		Latest  string
		// Newer is true when the hub holds a strictly newer version.
		Newer bool
		// URL points at the release page for the latest version.
		URL string
	}

	// RateLimitError is returned when the hub API rate limit is exceeded.
	RateLimitError struct {
		Limit     int
		Remaining int
		ResetAt   time.Time
	}

	// HubClient reads release metadata from one repository on the hub.
	HubClient struct {
		endpoint   string
		owner      string
		repo       string
		token      string
		userAgent  string
		httpClient *http.Client
	}

	// HubOption adjusts a HubClient during construction.
	HubOption func(*HubClient)
)

// Version returns the release version with the canonical v prefix.
func (r *Release) Version() string {
	return normalizeVersion(r.TagName)
}

// Error formats the rate limit details as a human-readable message.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("release hub rate limit exceeded (%d remaining, resets at %s)",
		e.Remaining, e.ResetAt.UTC().Format("15:04 UTC"))
}

// WithEndpoint points the client at a non-default hub API base URL.
func WithEndpoint(endpoint string) HubOption {
	return func(c *HubClient) { c.endpoint = strings.TrimSuffix(endpoint, "/") }
}

// WithRepository retargets the client at another owner/name pair.
func WithRepository(owner, repo string) HubOption {
	return func(c *HubClient) {
		c.owner = owner
		c.repo = repo
	}
}

// WithToken attaches a bearer token to every hub request. Authenticated
// requests get a far higher rate limit.
func WithToken(token string) HubOption {
	return func(c *HubClient) { c.token = token }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) HubOption {
	return func(c *HubClient) { c.userAgent = ua }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(client *http.Client) HubOption {
	return func(c *HubClient) { c.httpClient = client }
}

// NewHubClient builds a client for the canonical pipewalk repository unless
// options retarget it.
func NewHubClient(opts ...HubOption) *HubClient {
	c := &HubClient{
		endpoint:   defaultEndpoint,
		owner:      defaultOwner,
		repo:       defaultRepo,
		userAgent:  "pipewalk",
		httpClient: &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListReleases returns the stable (non-draft, non-prerelease) releases,
// sorted by semantic version in descending order. Pagination is followed
// up to maxPages.
func (c *HubClient) ListReleases(ctx context.Context) ([]Release, error) {
	pageURL := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d",
		c.endpoint, c.owner, c.repo, defaultPerPage)

	var all []Release
	for page := 0; page < maxPages && pageURL != ""; page++ {
		resp, err := c.doRequest(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("listing releases: %w", err)
		}

		if rlErr := checkRateLimit(resp); rlErr != nil {
			resp.Body.Close()
			return nil, rlErr
		}
		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return nil, fmt.Errorf("%w for %s/%s", ErrNoReleases, c.owner, c.repo)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("listing releases: unexpected status %d", resp.StatusCode)
		}

		var raw []hubRelease
		err = json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&raw)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("listing releases: decoding response: %w", err)
		}

		// Filter client-side: only stable releases are candidates.
		for _, r := range raw {
			if !r.Draft && !r.Prerelease {
				all = append(all, Release(r))
			}
		}

		pageURL = parseLinkHeader(resp.Header.Get("Link"))
	}

	sortReleasesBySemverDesc(all)
	return all, nil
}

// Latest returns the newest stable release, or ErrNoReleases when the hub
// holds none.
func (c *HubClient) Latest(ctx context.Context) (*Release, error) {
	releases, err := c.ListReleases(ctx)
	if err != nil {
		return nil, err
	}
	if len(releases) == 0 {
		return nil,
			fmt.Errorf("%w for %s/%s", ErrNoReleases, c.owner, c.repo)
	}
	return &releases[0], nil
}

// Check compares the running version against the newest stable release.
func (c *HubClient) Check(ctx context.Context, current string) (*Update, error) {
	normalized := normalizeVersion(current)
	if !semver.IsValid(normalized) {
		return nil, fmt.Errorf("%w: %q", ErrDevelopmentBuild, current)
	}
	latest, err := c.Latest(ctx)
	if err != nil {
		return nil, err
	}
	latestVersion := latest.Version()
	return &Update{
		Current: normalized,
		Latest:  latestVersion,
		Newer:   semver.Compare(latestVersion, normalized) > 0,
		URL:     latest.HTMLURL,
	}, nil
}

// doRequest executes a GET with the common hub API headers.
func (c *HubClient) doRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	return resp, nil
}

// checkRateLimit inspects the X-RateLimit-* response headers and returns a
// RateLimitError when the remaining quota is zero. Only the header values
// are examined, not the HTTP status code.
func checkRateLimit(resp *http.Response) error {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return nil
	}

	rem, err := strconv.Atoi(remaining)
	if err != nil || rem > 0 {
		return nil
	}

	// Companion headers are best-effort; malformed values default to zero,
	// which is acceptable for a diagnostic error message.
	limit, _ := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))
	resetUnix, _ := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)

	return &RateLimitError{
		Limit:     limit,
		Remaining: 0,
		ResetAt:   time.Unix(resetUnix, 0),
	}
}

// parseLinkHeader extracts the URL for the "next" page from a hub Link
// header. Returns an empty string when no next page exists.
//
// Example header: <https://api.github.com/...?page=2>; rel="next", <...>; rel="last"
func parseLinkHeader(header string) string {
	if header == "" {
		return ""
	}
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start >= 0 && end > start {
			return part[start+1 : end]
		}
	}
	return ""
}

// sortReleasesBySemverDesc sorts releases by semantic version in descending
// order, with invalid tags at the end. The sort is stable so releases with
// identical tags preserve hub ordering.
func sortReleasesBySemverDesc(releases []Release) {
	slices.SortStableFunc(releases, func(a, b Release) int {
		return semver.Compare(normalizeVersion(b.TagName), normalizeVersion(a.TagName))
	})
}

// normalizeVersion ensures the canonical v prefix semver comparison needs.
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return version
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}
