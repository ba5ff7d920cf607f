// Festify API implementation of [ArtistService]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/festify/internal/models"
	"github.com/desertthunder/festify/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "http://localhost:8000"
	requestIDHeader  = "X-Request-ID"
	missingArtistMsg = "response did not contain an artist"
)

// FestifyService implements [ArtistService] over HTTP.
//
// Requests are rate limited client-side and carry a bearer token when one is configured.
type FestifyService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// FestifyOpts contains configuration options for creating a [FestifyService].
type FestifyOpts struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	RateLimit  float64 // requests per second, 0 disables limiting
	HTTPClient *http.Client
	Logger     *log.Logger
}

// NewFestifyService creates a new Festify API client.
func NewFestifyService(opts FestifyOpts) *FestifyService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}

	client := &http.Client{}
	if opts.HTTPClient != nil {
		c := *opts.HTTPClient
		client = &c
	}

	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"})
		client = oauth2.NewClient(ctx, src)
	}

	if opts.Timeout > 0 {
		client.Timeout = opts.Timeout
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &FestifyService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: client,
		limiter:    limiter,
		logger:     shared.WithLogger(opts.Logger, "service", "festify"),
	}
}

// NewFestifyServiceFromConfig builds a [FestifyService] from the [shared.APIConfig] section.
func NewFestifyServiceFromConfig(cfg shared.APIConfig, logger *log.Logger) *FestifyService {
	return NewFestifyService(FestifyOpts{
		BaseURL:   cfg.BaseURL,
		Token:     cfg.Token,
		Timeout:   cfg.Timeout(),
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})
}

// BaseURL returns the API root used for requests.
func (f *FestifyService) BaseURL() string {
	return f.baseURL
}

// do performs a request and returns the status and raw body. Only transport failures are errors.
func (f *FestifyService) do(ctx context.Context, method, endpoint string, body []byte) (int, http.Header, []byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return 0, nil, nil, fmt.Errorf("%w: rate limiter: %v", shared.ErrAPIRequest, err)
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, f.baseURL+endpoint, reader)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	f.logger.Debug("api request", "method", method, "endpoint", endpoint, "request_id", requestID)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	f.logger.Debug("api response", "status", resp.StatusCode, "request_id", requestID)

	return resp.StatusCode, resp.Header, data, nil
}

// doJSON performs a request and decodes a 2xx body into result, converting error bodies into [*APIError].
func (f *FestifyService) doJSON(ctx context.Context, method, endpoint string, payload, result any) error {
	var body []byte
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = data
	}

	status, _, data, err := f.do(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	if status < 200 || status >= 300 {
		return newAPIError(status, data)
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func newAPIError(status int, body []byte) *APIError {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
		return &APIError{Status: status, Detail: errResp.Detail}
	}
	detail := http.StatusText(status)
	if detail == "" {
		detail = fmt.Sprintf("status %d", status)
	}
	return &APIError{Status: status, Detail: detail}
}

// artistResult decodes either variant of an artist response.
type artistResult struct {
	models.Artist
	Detail string `json:"detail"`
}

func (r artistResult) unwrap(status int) (*models.Artist, error) {
	if r.ID == "" {
		detail := r.Detail
		if detail == "" {
			detail = missingArtistMsg
		}
		return nil, &APIError{Status: status, Detail: detail}
	}
	artist := r.Artist
	return &artist, nil
}

func artistPath(id string) string {
	return "/artists/" + url.PathEscape(id)
}

// ListArtists retrieves all artists.
//
// Calls GET /artists.
func (f *FestifyService) ListArtists(ctx context.Context) ([]models.Artist, error) {
	var artists []models.Artist
	if err := f.doJSON(ctx, http.MethodGet, "/artists", nil, &artists); err != nil {
		return nil, err
	}
	return artists, nil
}

// GetArtist retrieves a single artist.
//
// Calls GET /artists/{id}.
func (f *FestifyService) GetArtist(ctx context.Context, id string) (*models.Artist, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: artist id", shared.ErrMissingArgument)
	}

	var result artistResult
	if err := f.doJSON(ctx, http.MethodGet, artistPath(id), nil, &result); err != nil {
		return nil, err
	}
	return result.unwrap(http.StatusOK)
}

// CreateArtist adds a new artist.
//
// Calls POST /artists with the JSON encoded [models.ArtistRequest].
func (f *FestifyService) CreateArtist(ctx context.Context, req models.ArtistRequest) (*models.Artist, error) {
	var result artistResult
	if err := f.doJSON(ctx, http.MethodPost, "/artists", req, &result); err != nil {
		return nil, err
	}

	artist, err := result.unwrap(http.StatusCreated)
	if err != nil {
		return nil, err
	}
	f.logger.Info("artist created", "id", artist.ID)
	return artist, nil
}

// UpdateArtist replaces an artist.
//
// Calls PUT /artists/{id} with the JSON encoded [models.ArtistRequest].
func (f *FestifyService) UpdateArtist(ctx context.Context, id string, req models.ArtistRequest) (*models.Artist, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: artist id", shared.ErrMissingArgument)
	}

	var result artistResult
	if err := f.doJSON(ctx, http.MethodPut, artistPath(id), req, &result); err != nil {
		return nil, err
	}

	f.logger.Info("artist updated", "id", id)
	return result.unwrap(http.StatusOK)
}
