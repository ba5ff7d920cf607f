// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/festify/internal/models"
)

// MockArtistService is a test double for [services.ArtistService].
//
// Unset funcs return zero values. Calls are counted and update payloads recorded.
type MockArtistService struct {
	ListFunc   func(ctx context.Context) ([]models.Artist, error)
	GetFunc    func(ctx context.Context, id string) (*models.Artist, error)
	CreateFunc func(ctx context.Context, req models.ArtistRequest) (*models.Artist, error)
	UpdateFunc func(ctx context.Context, id string, req models.ArtistRequest) (*models.Artist, error)

	mu          sync.Mutex
	listCalls   int
	getCalls    int
	updateCalls int
	updates     []UpdateCall
	creates     []models.ArtistRequest
}

// UpdateCall records one UpdateArtist invocation.
type UpdateCall struct {
	ID      string
	Request models.ArtistRequest
}

func (m *MockArtistService) ListArtists(ctx context.Context) ([]models.Artist, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.Artist{}, nil
}

func (m *MockArtistService) GetArtist(ctx context.Context, id string) (*models.Artist, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockArtistService) CreateArtist(ctx context.Context, req models.ArtistRequest) (*models.Artist, error) {
	m.mu.Lock()
	m.creates = append(m.creates, req)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockArtistService) UpdateArtist(ctx context.Context, id string, req models.ArtistRequest) (*models.Artist, error) {
	m.mu.Lock()
	m.updateCalls++
	m.updates = append(m.updates, UpdateCall{ID: id, Request: req})
	m.mu.Unlock()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockArtistService) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

func (m *MockArtistService) GetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls
}

func (m *MockArtistService) UpdateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls
}

func (m *MockArtistService) CreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.creates)
}

// Creates returns a copy of the recorded create payloads.
func (m *MockArtistService) Creates() []models.ArtistRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ArtistRequest(nil), m.creates...)
}

// Updates returns a copy of the recorded update calls.
func (m *MockArtistService) Updates() []UpdateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]UpdateCall(nil), m.updates...)
}

// RecordingNotifier captures success and failure notifications.
type RecordingNotifier struct {
	mu        sync.Mutex
	Successes []string
	Failures  []string
}

func (r *RecordingNotifier) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *RecordingNotifier) Failure(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, msg)
}

// RecordingNavigator captures navigation targets.
type RecordingNavigator struct {
	mu    sync.Mutex
	Paths []string
}

func (r *RecordingNavigator) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Paths = append(r.Paths, path)
}

// Artist returns a fully populated artist fixture.
func Artist(id string) *models.Artist {
	return &models.Artist{
		ID:        id,
		Name:      "Vetusta Morla",
		Genres:    []string{"Indie", "Pop"},
		Country:   "ES",
		Listeners: 1200000,
		Status:    models.StatusActive,
		Biography: "Madrid indie rock band.",
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails once maxWrites writes have gone through
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
