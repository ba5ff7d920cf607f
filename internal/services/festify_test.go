package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/festify/internal/models"
	"github.com/desertthunder/festify/internal/shared"
	tu "github.com/desertthunder/festify/internal/testing"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestFestifyService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv := NewFestifyService(FestifyOpts{})
			if srv.BaseURL() != defaultBaseURL {
				t.Errorf("expected default baseURL %s, got %s", defaultBaseURL, srv.BaseURL())
			}
			if srv.limiter != nil {
				t.Error("expected no limiter without rate limit")
			}
		})

		t.Run("Trims Trailing Slash", func(t *testing.T) {
			srv := NewFestifyService(FestifyOpts{BaseURL: "http://example.com/api/"})
			if srv.BaseURL() != "http://example.com/api" {
				t.Errorf("unexpected baseURL %s", srv.BaseURL())
			}
		})

		t.Run("With Custom Client", func(t *testing.T) {
			client := &http.Client{}
			srv := NewFestifyService(FestifyOpts{HTTPClient: client, RateLimit: 2, Timeout: time.Second})
			if srv.httpClient.Timeout != time.Second {
				t.Errorf("expected timeout to be applied, got %v", srv.httpClient.Timeout)
			}
			if client.Timeout != 0 {
				t.Errorf("caller's client must not be modified, got timeout %v", client.Timeout)
			}
			if srv.limiter == nil {
				t.Error("expected limiter to be configured")
			}
		})

		t.Run("Custom Client Transport Is Used", func(t *testing.T) {
			transport := tu.NewMockRoundTripper(nil, errors.New("connection refused"))
			client := &http.Client{Transport: transport}
			srv := NewFestifyService(FestifyOpts{BaseURL: "http://example.com", HTTPClient: client, Timeout: time.Second})

			if _, err := srv.ListArtists(context.Background()); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest from custom transport, got %v", err)
			}
			if client.Timeout != 0 {
				t.Errorf("caller's client must not be modified, got timeout %v", client.Timeout)
			}
		})

		t.Run("From Config", func(t *testing.T) {
			cfg := shared.DefaultConfig()
			srv := NewFestifyServiceFromConfig(cfg.API, nil)
			if srv.BaseURL() != cfg.API.BaseURL {
				t.Errorf("expected %s, got %s", cfg.API.BaseURL, srv.BaseURL())
			}
		})
	})

	t.Run("Headers", func(t *testing.T) {
		var gotAuth, gotRequestID string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotRequestID = r.Header.Get(requestIDHeader)
			json.NewEncoder(w).Encode([]models.Artist{})
		}))
		defer server.Close()

		srv := NewFestifyService(FestifyOpts{BaseURL: server.URL, Token: "secret-token"})
		if _, err := srv.ListArtists(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotAuth != "Bearer secret-token" {
			t.Errorf("expected bearer token, got %q", gotAuth)
		}
		if _, err := uuid.Parse(gotRequestID); err != nil {
			t.Errorf("expected uuid request id, got %q", gotRequestID)
		}
	})

	t.Run("ListArtists", func(t *testing.T) {
		want := []models.Artist{*tu.Artist("1"), *tu.Artist("2")}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/artists" {
				t.Errorf("expected path /artists, got %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(want)
		}))
		defer server.Close()

		srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
		got, err := srv.ListArtists(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ListArtists() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("GetArtist", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/artists/42" {
					t.Errorf("expected path /artists/42, got %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode(tu.Artist("42"))
			}))
			defer server.Close()

			srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
			got, err := srv.GetArtist(context.Background(), "42")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if diff := cmp.Diff(tu.Artist("42"), got); diff != "" {
				t.Errorf("GetArtist() mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("Not Found With Detail", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(models.ErrorResponse{Detail: "not found"})
			}))
			defer server.Close()

			srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
			_, err := srv.GetArtist(context.Background(), "42")

			apiErr, ok := AsAPIError(err)
			if !ok {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Detail != "not found" || apiErr.Status != http.StatusNotFound {
				t.Errorf("unexpected APIError %+v", apiErr)
			}
			if !errors.Is(err, shared.ErrArtistNotFound) {
				t.Error("expected 404 to match ErrArtistNotFound")
			}
		})

		t.Run("Detail Body With Success Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"detail":"artist archived"}`))
			}))
			defer server.Close()

			srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
			_, err := srv.GetArtist(context.Background(), "42")

			apiErr, ok := AsAPIError(err)
			if !ok || apiErr.Detail != "artist archived" {
				t.Errorf("expected APIError with detail, got %v", err)
			}
		})

		t.Run("Error Status Without Detail", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
			_, err := srv.GetArtist(context.Background(), "42")

			apiErr, ok := AsAPIError(err)
			if !ok || apiErr.Detail != "Internal Server Error" {
				t.Errorf("expected status text detail, got %v", err)
			}
		})

		t.Run("Missing ID", func(t *testing.T) {
			srv := NewFestifyService(FestifyOpts{})
			if _, err := srv.GetArtist(context.Background(), ""); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})

		t.Run("Transport Failure", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
			srv := NewFestifyService(FestifyOpts{BaseURL: "http://example.com", HTTPClient: client})

			_, err := srv.GetArtist(context.Background(), "42")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if _, ok := AsAPIError(err); ok {
				t.Error("transport failure must not be an APIError")
			}
		})
	})

	t.Run("CreateArtist", func(t *testing.T) {
		t.Run("Sends Payload", func(t *testing.T) {
			req := models.ArtistRequest{
				Name:      "Rosalía",
				Genres:    []string{"Flamenco", "Pop"},
				Country:   "ES",
				Listeners: 5000,
				Status:    models.StatusActive,
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/artists" {
					t.Errorf("expected path /artists, got %s", r.URL.Path)
				}

				var got models.ArtistRequest
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if diff := cmp.Diff(req, got); diff != "" {
					t.Errorf("payload mismatch (-want +got):\n%s", diff)
				}

				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(tu.Artist("77"))
			}))
			defer server.Close()

			srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
			got, err := srv.CreateArtist(context.Background(), req)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.ID != "77" {
				t.Errorf("expected id 77, got %s", got.ID)
			}
		})

		t.Run("Validation Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(models.ErrorResponse{Detail: "name already taken"})
			}))
			defer server.Close()

			srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
			_, err := srv.CreateArtist(context.Background(), models.ArtistRequest{})

			apiErr, ok := AsAPIError(err)
			if !ok || apiErr.Status != http.StatusUnprocessableEntity || apiErr.Detail != "name already taken" {
				t.Errorf("expected APIError with detail, got %v", err)
			}
		})

		t.Run("Response Without ID", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
			_, err := srv.CreateArtist(context.Background(), models.ArtistRequest{})

			apiErr, ok := AsAPIError(err)
			if !ok || apiErr.Detail != missingArtistMsg {
				t.Errorf("expected missing artist APIError, got %v", err)
			}
		})
	})

	t.Run("UpdateArtist", func(t *testing.T) {
		t.Run("Sends Payload", func(t *testing.T) {
			req := models.ArtistRequest{
				Name:      "Vetusta Morla",
				Genres:    []string{"Indie", "Pop"},
				Country:   "ES",
				Listeners: 0,
				Status:    models.StatusDraft,
				Biography: "bio",
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut {
					t.Errorf("expected PUT, got %s", r.Method)
				}
				if r.URL.Path != "/artists/42" {
					t.Errorf("expected path /artists/42, got %s", r.URL.Path)
				}

				var got models.ArtistRequest
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if diff := cmp.Diff(req, got); diff != "" {
					t.Errorf("payload mismatch (-want +got):\n%s", diff)
				}

				json.NewEncoder(w).Encode(tu.Artist("42"))
			}))
			defer server.Close()

			srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
			got, err := srv.UpdateArtist(context.Background(), "42", req)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.ID != "42" {
				t.Errorf("expected id 42, got %s", got.ID)
			}
		})

		t.Run("Escapes ID", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.EscapedPath() != "/artists/a%2Fb" {
					t.Errorf("expected escaped path, got %s", r.URL.EscapedPath())
				}
				json.NewEncoder(w).Encode(tu.Artist("a/b"))
			}))
			defer server.Close()

			srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
			if _, err := srv.UpdateArtist(context.Background(), "a/b", models.ArtistRequest{}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Validation Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(models.ErrorResponse{Detail: "name already taken"})
			}))
			defer server.Close()

			srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
			_, err := srv.UpdateArtist(context.Background(), "42", models.ArtistRequest{})

			apiErr, ok := AsAPIError(err)
			if !ok || apiErr.Detail != "name already taken" {
				t.Errorf("expected APIError with detail, got %v", err)
			}
			if errors.Is(err, shared.ErrArtistNotFound) {
				t.Error("422 must not match ErrArtistNotFound")
			}
		})
	})

	t.Run("Rate Limit", func(t *testing.T) {
		var mu sync.Mutex
		hits := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			hits++
			mu.Unlock()
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		srv := NewFestifyService(FestifyOpts{BaseURL: server.URL, RateLimit: 0.001})
		if _, err := srv.ListArtists(context.Background()); err != nil {
			t.Fatalf("first request should pass the limiter: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := srv.ListArtists(ctx)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected limiter to reject with ErrAPIRequest, got %v", err)
		}

		mu.Lock()
		defer mu.Unlock()
		if hits != 1 {
			t.Errorf("expected exactly one request to reach the server, got %d", hits)
		}
	})
}
