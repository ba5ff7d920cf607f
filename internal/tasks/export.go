package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/festify/internal/formatter"
	"github.com/desertthunder/festify/internal/models"
	"github.com/desertthunder/festify/internal/shared"
	"golang.org/x/time/rate"
)

const manifestName = "export_manifest.json"

// ExportOpts contains configuration for bulk artist exports.
type ExportOpts struct {
	Format     formatter.Format // json, csv, md or text
	OutputDir  string           // Base output directory (default: festify_export_{epoch})
	NumWorkers int              // Concurrent writers (default: 5, max: 10)
	RateLimit  float64          // Fetches per second (default: 5)
}

// ArtistExportResult describes the export of one artist.
type ArtistExportResult struct {
	ArtistID   string `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	File       string `json:"file,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// ExportResult summarises a bulk export.
type ExportResult struct {
	TotalArtists      int                  `json:"total_artists"`
	SuccessfulExports int                  `json:"successful_exports"`
	FailedExports     int                  `json:"failed_exports"`
	OutputDirectory   string               `json:"output_directory"`
	Format            formatter.Format     `json:"format"`
	ExportedAt        time.Time            `json:"exported_at"`
	Results           []ArtistExportResult `json:"results"`
	ManifestPath      string               `json:"-"`
}

type exportJob struct {
	artist models.Artist
}

// BulkExport writes the artists with the given ids to opts.OutputDir. Without ids every listed artist is exported.
func (e *ExportEngine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, ids []string, opts ExportOpts) (*ExportResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("festify_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if len(ids) == 0 {
		e.sendProgress(prog, listingUpdate())
		artists, err := e.service.ListArtists(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list artists: %w", err)
		}
		for _, a := range artists {
			ids = append(ids, a.ID)
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		TotalArtists:    len(ids),
		OutputDirectory: opts.OutputDir,
		Format:          opts.Format,
		ExportedAt:      time.Now().UTC(),
		Results:         make([]ArtistExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan exportJob, len(ids))
	results := make(chan ArtistExportResult, len(ids))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(&wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, id := range ids {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			artist, err := e.service.GetArtist(ctx, id)
			if err != nil {
				results <- ArtistExportResult{
					ArtistID:   id,
					ArtistName: fmt.Sprintf("Unknown (%s)", id),
					Error:      fmt.Sprintf("failed to fetch artist: %v", err),
				}
				continue
			}

			e.sendProgress(prog, fetchedUpdate(i+1, len(ids), artist.Name))
			jobs <- exportJob{artist: *artist}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		result.Results = append(result.Results, res)
		if res.Success {
			result.SuccessfulExports++
		} else {
			result.FailedExports++
		}
		e.sendProgress(prog, writtenUpdate(len(result.Results), len(ids), res))
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export interrupted: %w", err)
	}

	sort.Slice(result.Results, func(i, j int) bool {
		return result.Results[i].ArtistID < result.Results[j].ArtistID
	})

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	e.sendProgress(prog, manifestUpdate(manifestPath))
	data, err := formatter.MarshalJSON(result, true)
	if err != nil {
		return result, err
	}
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	e.logger.Info("export finished", "ok", result.SuccessfulExports, "failed", result.FailedExports)
	return result, nil
}

// exportWorker writes artists from the jobs channel until it closes.
func (e *ExportEngine) exportWorker(wg *sync.WaitGroup, jobs <-chan exportJob, results chan<- ArtistExportResult, opts ExportOpts) {
	defer wg.Done()
	for job := range jobs {
		results <- e.exportArtist(job.artist, opts)
	}
}

func (e *ExportEngine) exportArtist(a models.Artist, opts ExportOpts) ArtistExportResult {
	res := ArtistExportResult{ArtistID: a.ID, ArtistName: a.Name}

	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case formatter.FormatJSON:
		data, err = formatter.MarshalJSON(a, true)
	case formatter.FormatCSV:
		data, err = formatter.ArtistsToCSV([]models.Artist{a})
	case formatter.FormatMarkdown:
		data, err = formatter.ArtistsToMarkdown([]models.Artist{a})
	default:
		data = formatter.ArtistToText(a)
	}
	if err != nil {
		res.Error = fmt.Sprintf("%s export failed: %v", opts.Format, err)
		return res
	}

	path := filepath.Join(opts.OutputDir, fileName(a.ID, opts.Format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		res.Error = fmt.Sprintf("failed to write file: %v", err)
		return res
	}

	e.logger.Debug("artist exported", "id", a.ID, "file", path)
	res.File = path
	res.Success = true
	return res
}

var unsafeChars = strings.NewReplacer("/", "_", "\\", "_", "..", "_")

func fileName(id string, f formatter.Format) string {
	ext := string(f)
	if f == formatter.FormatText {
		ext = "txt"
	}
	return fmt.Sprintf("artist_%s.%s", unsafeChars.Replace(id), ext)
}
