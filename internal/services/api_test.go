package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/festify/internal/shared"
	tu "github.com/desertthunder/festify/internal/testing"
)

func TestRawRequests(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		t.Run("Successful Request With JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if r.URL.Path != "/health" {
					t.Errorf("expected path '/health', got %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"status":"ok"}`))
			}))
			defer server.Close()

			srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
			resp, err := srv.Get(context.Background(), "/health")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Errorf("expected status 200, got %d", resp.StatusCode)
			}
			if !resp.IsJSON || resp.JSONData == nil {
				t.Error("expected response to be JSON")
			}
		})

		t.Run("Non-JSON Error Response Is Not An Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("upstream down"))
			}))
			defer server.Close()

			srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
			resp, err := srv.Get(context.Background(), "/artists")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON {
				t.Error("expected response to not be JSON")
			}
			if resp.StatusCode != http.StatusBadGateway {
				t.Errorf("expected status 502, got %d", resp.StatusCode)
			}
			if string(resp.Body) != "upstream down" {
				t.Errorf("expected body 'upstream down', got %s", string(resp.Body))
			}
		})

		t.Run("Path Without Leading Slash", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/artists" {
					t.Errorf("expected path /artists, got %s", r.URL.Path)
				}
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
			resp, err := srv.Get(context.Background(), "artists")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Errorf("expected status 200, got %d", resp.StatusCode)
			}
		})

		t.Run("Absolute URL Is Rejected", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("must not be called"))}
			srv := NewFestifyService(FestifyOpts{BaseURL: "http://example.com", HTTPClient: client})

			_, err := srv.Get(context.Background(), "http://other.example.com/artists")
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("Failed Request Creation", func(t *testing.T) {
			srv := NewFestifyService(FestifyOpts{BaseURL: "http://example.com"})
			_, err := srv.Get(context.Background(), "/test\x00invalid")

			if err == nil || !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed"))}

			srv := NewFestifyService(FestifyOpts{BaseURL: "http://example.com", HTTPClient: client})
			_, err := srv.Get(context.Background(), "/test")
			if err == nil {
				t.Fatal("expected error for failed request")
			}
			if !strings.Contains(err.Error(), "connection failed") {
				t.Errorf("expected transport error to be kept, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			srv := NewFestifyService(FestifyOpts{BaseURL: "http://example.com", HTTPClient: client})
			_, err := srv.Get(context.Background(), "/test")
			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected 'failed to read response' error, got %v", err)
			}
		})
	})

	t.Run("Put", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT method, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %s", ct)
			}
			body, _ := io.ReadAll(r.Body)
			if string(body) != `{"name":"x"}` {
				t.Errorf("unexpected body %s", body)
			}
			w.Write([]byte(`{"id":"1"}`))
		}))
		defer server.Close()

		srv := NewFestifyService(FestifyOpts{BaseURL: server.URL})
		resp, err := srv.Put(context.Background(), "/artists/1", []byte(`{"name":"x"}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !resp.IsJSON {
			t.Error("expected JSON response")
		}
	})
}
