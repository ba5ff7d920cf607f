package tasks

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/festify/internal/services"
	"github.com/desertthunder/festify/internal/shared"
)

// ProgressUpdate represents a progress event during a long-running operation.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchList Phase = iota
	FetchArtist
	WriteArtist
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchList:
		return "fetch_list"
	case FetchArtist:
		return "fetch_artist"
	case WriteArtist:
		return "write_artist"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

// ExportEngine exports artists from an [services.ArtistService].
type ExportEngine struct {
	service services.ArtistService
	logger  *log.Logger
}

// NewExportEngine creates an engine reading from service.
func NewExportEngine(service services.ArtistService, logger *log.Logger) *ExportEngine {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &ExportEngine{service: service, logger: shared.WithLogger(logger, "task", "export")}
}

// sendProgress sends a progress update without blocking.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func listingUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: FetchList, Message: "Fetching artist list..."}
}

func fetchedUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchArtist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetched %s", step, total, name),
	}
}

func writtenUpdate(step, total int, res ArtistExportResult) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] ✓ %s → %s", step, total, res.ArtistName, res.File)
	if !res.Success {
		msg = fmt.Sprintf("[%d/%d] ✗ %s: %s", step, total, res.ArtistName, res.Error)
	}
	return ProgressUpdate{Phase: WriteArtist, Step: step, Total: total, Message: msg}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{Phase: WriteManifest, Message: fmt.Sprintf("Writing manifest %s", path)}
}
