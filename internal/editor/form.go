package editor

import (
	"strconv"
	"strings"

	"github.com/desertthunder/festify/internal/models"
)

// Field names an editable input of the artist form.
type Field string

const (
	FieldName      Field = "name"
	FieldGenres    Field = "genres"
	FieldCountry   Field = "country"
	FieldListeners Field = "listeners"
	FieldStatus    Field = "status"
	FieldBiography Field = "biography"
)

// Fields lists the editable fields in display order.
var Fields = []Field{FieldName, FieldGenres, FieldCountry, FieldListeners, FieldStatus, FieldBiography}

const genreSeparator = ", "

// ArtistForm is the local editing buffer for an artist.
//
// Genres holds the comma separated display string. A nil Listeners is the
// empty value of a field nothing has been typed into yet.
type ArtistForm struct {
	ID        string
	Name      string
	Genres    string
	Country   string
	Listeners *int
	Status    models.ArtistStatus
	Biography string
}

// DefaultArtistForm returns the form shown before an artist is loaded.
func DefaultArtistForm() ArtistForm {
	zero := 0
	return ArtistForm{
		Country:   models.DefaultCountry,
		Listeners: &zero,
		Status:    models.StatusActive,
	}
}

// FormFromArtist seeds a form from a fetched artist.
func FormFromArtist(a models.Artist) ArtistForm {
	listeners := a.Listeners
	return ArtistForm{
		ID:        a.ID,
		Name:      a.Name,
		Genres:    strings.Join(a.Genres, genreSeparator),
		Country:   strings.ToUpper(strings.TrimSpace(a.Country)),
		Listeners: &listeners,
		Status:    a.Status,
		Biography: a.Biography,
	}
}

// Clone returns a copy that shares no memory with f.
func (f ArtistForm) Clone() ArtistForm {
	if f.Listeners != nil {
		v := *f.Listeners
		f.Listeners = &v
	}
	return f
}

// Equal reports whether two forms hold the same values.
func (f ArtistForm) Equal(o ArtistForm) bool {
	if (f.Listeners == nil) != (o.Listeners == nil) {
		return false
	}
	if f.Listeners != nil && *f.Listeners != *o.Listeners {
		return false
	}
	return f.ID == o.ID && f.Name == o.Name && f.Genres == o.Genres && f.Country == o.Country &&
		f.Status == o.Status && f.Biography == o.Biography
}

// Valid reports whether the form may be submitted: trimmed name and genres both longer than two characters.
func (f ArtistForm) Valid() bool {
	return len([]rune(strings.TrimSpace(f.Name))) > 2 && len([]rune(strings.TrimSpace(f.Genres))) > 2
}

// ListenersText renders the listeners value for a text input; empty for the empty value.
func (f ArtistForm) ListenersText() string {
	if f.Listeners == nil {
		return ""
	}
	return strconv.Itoa(*f.Listeners)
}

// Request builds the update payload from the form.
func (f ArtistForm) Request() models.ArtistRequest {
	listeners := 0
	if f.Listeners != nil {
		listeners = *f.Listeners
	}
	return models.ArtistRequest{
		Name:      f.Name,
		Genres:    ParseGenres(f.Genres),
		Country:   f.Country,
		Listeners: listeners,
		Status:    f.Status,
		Biography: f.Biography,
	}
}

// ParseGenres splits a comma separated genre string into trimmed, non-empty tags, keeping order.
func ParseGenres(s string) []string {
	genres := []string{}
	for _, part := range strings.Split(s, ",") {
		if g := strings.TrimSpace(part); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
