package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avast/retry-go/v4"
	"github.com/sourcegraph/conc/pool"
	"github.com/user/cinelist/internal/config"
	"github.com/user/cinelist/internal/watchlist"
)

var ErrNoAPIKey = errors.New("tmdb api key not set (TMDB_API_KEY or tmdb.api_key)")

// MinQueryLength is the shortest trimmed query that Search sends upstream.
const MinQueryLength = 2

// Client talks to the TMDB v3 REST API.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	retries      uint
	retryDelay   time.Duration
	httpClient   *http.Client
	logger       *slog.Logger
}

func NewClient(cfg config.TMDBConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		language:     cfg.Language,
		retries:      cfg.Retries,
		retryDelay:   250 * time.Millisecond,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       slog.Default().With("component", "tmdb"),
	}
}

// Popular returns a page of popular movies.
func (c *Client) Popular(ctx context.Context, page int) (*Page, error) {
	p, err := c.getPage(ctx, "/movie/popular", pageParams(page))
	if err != nil {
		return nil, err
	}
	tagMediaType(p, watchlist.Movie)
	return p, nil
}

// Trending returns trending titles. mediaType is all, movie or tv; window is
// day or week.
func (c *Client) Trending(ctx context.Context, mediaType, window string, page int) (*Page, error) {
	if mediaType == "" {
		mediaType = "all"
	}
	if window == "" {
		window = "week"
	}
	p, err := c.getPage(ctx, "/trending/"+url.PathEscape(mediaType)+"/"+url.PathEscape(window), pageParams(page))
	if err != nil {
		return nil, err
	}
	if mediaType != "all" {
		tagMediaType(p, watchlist.MediaType(mediaType))
	}
	filterMovieOrTV(p)
	return p, nil
}

// Search runs a multi search and keeps only movies and series. Queries
// shorter than MinQueryLength return an empty page without a request.
func (c *Client) Search(ctx context.Context, query string, page int) (*Page, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return &Page{Page: 1}, nil
	}
	params := pageParams(page)
	params.Set("query", query)
	p, err := c.getPage(ctx, "/search/multi", params)
	if err != nil {
		return nil, err
	}
	filterMovieOrTV(p)
	return p, nil
}

// Details fetches one title with its credits.
func (c *Client) Details(ctx context.Context, id int, mediaType watchlist.MediaType) (*Details, error) {
	if mediaType == "" {
		mediaType = watchlist.Movie
	}
	params := url.Values{}
	params.Set("append_to_response", "credits")

	var d Details
	if err := c.get(ctx, "/"+string(mediaType)+"/"+strconv.Itoa(id), params, &d); err != nil {
		return nil, err
	}
	d.MediaType = mediaType
	d.PosterURL = c.PosterURL(d.PosterPath, PosterMedium)
	d.BackdropURL = c.BackdropURL(d.BackdropPath, BackdropMedium)
	return &d, nil
}

// Genres returns the movie genre list.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var resp struct {
		Genres []Genre `json:"genres"`
	}
	if err := c.get(ctx, "/genre/movie/list", url.Values{}, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// DiscoverByGenre returns popular movies in a genre.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int, page int) (*Page, error) {
	params := pageParams(page)
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")
	p, err := c.getPage(ctx, "/discover/movie", params)
	if err != nil {
		return nil, err
	}
	tagMediaType(p, watchlist.Movie)
	return p, nil
}

// PageFunc fetches one page of a listing.
type PageFunc func(ctx context.Context, page int) (*Page, error)

// FetchPages fetches pages 1..n concurrently and returns their titles in page
// order with duplicates removed. The first failing page cancels the rest.
func FetchPages(ctx context.Context, n int, fetch PageFunc) ([]Title, error) {
	if n < 1 {
		n = 1
	}
	p := pool.NewWithResults[*Page]().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(4)
	for i := 1; i <= n; i++ {
		page := i
		p.Go(func(ctx context.Context) (*Page, error) {
			pg, err := fetch(ctx, page)
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", page, err)
			}
			pg.Page = page
			return pg, nil
		})
	}
	pages, err := p.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Page < pages[j].Page })

	seen := make(map[watchlist.Key]bool)
	var titles []Title
	for _, pg := range pages {
		for _, t := range pg.Results {
			k := t.Entry().Key()
			if seen[k] {
				continue
			}
			seen[k] = true
			titles = append(titles, t)
		}
	}
	return titles, nil
}

func (c *Client) getPage(ctx context.Context, path string, params url.Values) (*Page, error) {
	var p Page
	if err := c.get(ctx, path, params, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	reqURL := c.baseURL + path + "?" + params.Encode()

	start := time.Now()
	err := retry.Do(
		func() error { return c.do(ctx, reqURL, out) },
		retry.Context(ctx),
		retry.Attempts(c.retries+1),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("tmdb request failed, retrying", "path", path, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return err
	}
	c.logger.Debug("tmdb request", "path", path, "took", time.Since(start))
	return nil
}

func (c *Client) do(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return retry.Unrecoverable(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(body, apiErr)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return retry.Unrecoverable(fmt.Errorf("decode tmdb response: %w", err))
	}
	return nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return true
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return params
}

func tagMediaType(p *Page, mt watchlist.MediaType) {
	for i := range p.Results {
		if p.Results[i].MediaType == "" {
			p.Results[i].MediaType = string(mt)
		}
	}
}

func filterMovieOrTV(p *Page) {
	kept := p.Results[:0]
	for _, t := range p.Results {
		if t.MediaType == string(watchlist.Movie) || t.MediaType == string(watchlist.TV) {
			kept = append(kept, t)
		}
	}
	p.Results = kept
}
