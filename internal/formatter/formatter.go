// package formatter renders artist data as CSV, Markdown, plain text or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/festify/internal/models"
)

// Format selects an output renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatCSV, FormatMarkdown, FormatJSON:
		return f, nil
	case "", "txt":
		return FormatText, nil
	case "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// RenderArtists renders a list of artists in the given format.
func RenderArtists(artists []models.Artist, f Format, pretty bool) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ArtistsToCSV(artists)
	case FormatMarkdown:
		return ArtistsToMarkdown(artists)
	case FormatJSON:
		return MarshalJSON(artists, pretty)
	default:
		return ArtistsToText(artists)
	}
}

// ArtistsToCSV converts artists to CSV with columns: ID, Name, Genres, Country, Listeners, Status, Biography
//
// Genres are joined with "|" so they stay in one column.
func ArtistsToCSV(artists []models.Artist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Genres", "Country", "Listeners", "Status", "Biography"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, a := range artists {
		record := []string{
			a.ID,
			a.Name,
			strings.Join(a.Genres, "|"),
			a.Country,
			strconv.Itoa(a.Listeners),
			string(a.Status),
			a.Biography,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ArtistsToMarkdown renders artists as a Markdown table.
func ArtistsToMarkdown(artists []models.Artist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Artists\n\n")
	buf.WriteString(fmt.Sprintf("**Total**: %d\n\n", len(artists)))
	buf.WriteString("| ID | Name | Genres | Country | Listeners | Status |\n")
	buf.WriteString("|----|------|--------|---------|-----------|--------|\n")

	for _, a := range artists {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			escapeCell(a.ID),
			escapeCell(a.Name),
			escapeCell(strings.Join(a.Genres, ", ")),
			models.CountryName(a.Country),
			FormatListeners(a.Listeners),
			a.Status.Label(),
		))
	}

	return buf.Bytes(), nil
}

// ArtistsToText renders artists as a numbered plain-text list.
func ArtistsToText(artists []models.Artist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Artists: %d\n\n", len(artists)))
	for i, a := range artists {
		buf.WriteString(fmt.Sprintf("%d. %s [%s] - %s (%s listeners, %s)\n",
			i+1, a.Name, a.ID, strings.Join(a.Genres, ", "), FormatListeners(a.Listeners), a.Status.Label()))
	}

	return buf.Bytes(), nil
}

// ArtistToText renders a single artist as a detail block.
func ArtistToText(a models.Artist) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Artist: %s\n", a.Name))
	buf.WriteString(fmt.Sprintf("ID: %s\n", a.ID))
	buf.WriteString(fmt.Sprintf("Genres: %s\n", strings.Join(a.Genres, ", ")))
	buf.WriteString(fmt.Sprintf("Country: %s (%s)\n", models.CountryName(a.Country), a.Country))
	buf.WriteString(fmt.Sprintf("Monthly listeners: %s\n", FormatListeners(a.Listeners)))
	buf.WriteString(fmt.Sprintf("Status: %s\n", a.Status.Label()))
	if a.Biography != "" {
		buf.WriteString(fmt.Sprintf("\n%s\n", a.Biography))
	}

	return buf.Bytes()
}

// FormatListeners groups digits in thousands, e.g. 1200000 -> "1,200,000".
func FormatListeners(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return s
	}
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// MarshalJSON encodes data, optionally indented.
func MarshalJSON(data any, pretty bool) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return out, nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
