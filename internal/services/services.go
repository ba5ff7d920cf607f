// package services defines interface ArtistService for interacting with the Festify HTTP API
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/festify/internal/models"
	"github.com/desertthunder/festify/internal/shared"
)

// ArtistService defines the remote operations on artist records.
type ArtistService interface {
	// ListArtists retrieves every artist.
	ListArtists(ctx context.Context) ([]models.Artist, error)

	// GetArtist retrieves a specific artist by ID.
	// Returns an [*APIError] when the API answers with an error body.
	GetArtist(ctx context.Context, id string) (*models.Artist, error)

	// CreateArtist adds an artist built from the payload; the API assigns the id.
	// Returns an [*APIError] when the API answers with an error body.
	CreateArtist(ctx context.Context, req models.ArtistRequest) (*models.Artist, error)

	// UpdateArtist replaces the artist identified by id with the payload.
	// Returns an [*APIError] when the API answers with an error body.
	UpdateArtist(ctx context.Context, id string, req models.ArtistRequest) (*models.Artist, error)
}

// APIError is the error variant of an API result: the API answered, but with a {detail} body.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("festify API error (status %d): %s", e.Status, e.Detail)
}

// Is lets callers match a 404 with [shared.ErrArtistNotFound].
func (e *APIError) Is(target error) bool {
	return target == shared.ErrArtistNotFound && e.Status == http.StatusNotFound
}

// AsAPIError unwraps err into an [*APIError].
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
