package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the public cat image host
	DefaultBaseURL = "https://cataas.com"

	// DefaultMaxSkip bounds the random offset into the image catalogue
	DefaultMaxSkip = 500
)

// ErrNoImages is returned when the image API has nothing to offer.
var ErrNoImages = errors.New("profile: image source returned no images")

// ImageSource supplies opaque image references for a batch.
type ImageSource interface {
	ImageRefs(ctx context.Context, n int) ([]string, error)
}

// URLSource builds cache-busting image URLs locally and never fails.
//
// Each reference is BaseURL/cat?<nanos+i>-<token>. The timestamp separates
// calls, the index separates cards within a batch and the random token
// separates callers that read the same clock.
type URLSource struct {
	BaseURL string
	Now     func() time.Time
}

// ImageRefs returns n distinct references.
func (s URLSource) ImageRefs(ctx context.Context, n int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := strings.TrimRight(s.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	stamp := now().UnixNano()
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	refs := make([]string, n)
	for i := range refs {
		refs[i] = base + "/cat?" + strconv.FormatInt(stamp+int64(i), 10) + "-" + token
	}
	return refs, nil
}

// APISource asks the image host's JSON API for real image ids.
type APISource struct {
	baseURL    string
	httpClient *http.Client

	// MaxSkip bounds the random catalogue offset; zero always starts at the top.
	MaxSkip int
}

// NewAPISource creates an API-backed source.
func NewAPISource(baseURL string, timeout time.Duration) *APISource {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &APISource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		MaxSkip: DefaultMaxSkip,
	}
}

type apiCat struct {
	ID       string `json:"id"`
	LegacyID string `json:"_id"`
}

// ImageRefs fetches n references. Short pages are cycled to fill the batch.
func (s *APISource) ImageRefs(ctx context.Context, n int) ([]string, error) {
	skip := 0
	if s.MaxSkip > 0 {
		skip = rand.IntN(s.MaxSkip)
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(n))
	q.Set("skip", strconv.Itoa(skip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/cats?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cat api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read cat api response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cat api: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var cats []apiCat
	if err := json.Unmarshal(body, &cats); err != nil {
		return nil, fmt.Errorf("decode cat api response: %w", err)
	}
	if len(cats) == 0 {
		return nil, ErrNoImages
	}

	ids := make([]string, 0, len(cats))
	for _, c := range cats {
		id := c.ID
		if id == "" {
			id = c.LegacyID
		}
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("cat api: entry without id")
		}
		ids = append(ids, id)
	}

	refs := make([]string, n)
	for i := range refs {
		refs[i] = s.baseURL + "/cat/" + url.PathEscape(ids[i%len(ids)])
	}
	return refs, nil
}

// truncate shortens s to at most max runes for error messages.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
