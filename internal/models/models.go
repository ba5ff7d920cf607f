package models

import "strings"

// ArtistStatus is the publication state of an artist. Values match the API wire format.
type ArtistStatus string

const (
	StatusActive ArtistStatus = "Activo"
	StatusDraft  ArtistStatus = "Borrador"
)

// ParseArtistStatus maps user input onto a status; anything other than active is a draft.
func ParseArtistStatus(s string) ArtistStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "activo", "active":
		return StatusActive
	default:
		return StatusDraft
	}
}

// Label returns the display name of the status.
func (s ArtistStatus) Label() string {
	if s == StatusActive {
		return "Active"
	}
	return "Draft"
}

// Artist represents an artist record from the Festify API
type Artist struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Genres    []string     `json:"genres"`
	Country   string       `json:"country"`
	Listeners int          `json:"listeners"` // monthly listeners
	Status    ArtistStatus `json:"status"`
	Biography string       `json:"biography"`
}

// ArtistRequest is the body sent when updating an artist. The ID travels in the URL.
type ArtistRequest struct {
	Name      string       `json:"name"`
	Genres    []string     `json:"genres"`
	Country   string       `json:"country"`
	Listeners int          `json:"listeners"`
	Status    ArtistStatus `json:"status"`
	Biography string       `json:"biography"`
}

// ErrorResponse is the body returned by the API on failure.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
