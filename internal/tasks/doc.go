// Package tasks runs long artist operations against the Festify API with progress reporting.
//
// # Bulk export
//
// [ExportEngine.BulkExport] fetches artists through a rate limited producer and writes them with a pool of
// workers, one file per artist plus an export_manifest.json summarising the run. Failures of single artists
// are recorded in the result and do not stop the export.
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on an optional channel. Sends use select with default,
// so a slow or absent reader never blocks an export.
package tasks
