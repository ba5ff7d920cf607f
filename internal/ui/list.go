package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/festify/internal/formatter"
	"github.com/desertthunder/festify/internal/models"
)

var _ list.Item = artistItem{}

// artistItem wraps [models.Artist] to implement [list.Item].
type artistItem struct {
	artist models.Artist
}

func (i artistItem) FilterValue() string { return i.artist.Name }
func (i artistItem) Title() string       { return i.artist.Name }
func (i artistItem) Description() string {
	desc := fmt.Sprintf("%s listeners • %s", formatter.FormatListeners(i.artist.Listeners), i.artist.Status.Label())
	if len(i.artist.Genres) > 0 {
		desc = fmt.Sprintf("%s • %s", strings.Join(i.artist.Genres, ", "), desc)
	}
	return desc
}
