// Package metrics provides Prometheus instrumentation for the gallery generator.
//
// All metrics are registered on the default registry with the "media_gallery_"
// prefix. A batch run exposes them through WriteTextfile (for the node_exporter
// textfile collector); the preview server exposes them through Handler.
//
// # Metric Categories
//
//   - Walk: runs, last run duration/timestamp, entries by outcome, gallery
//     directory count, detected container formats.
//   - Thumbnails: generations by type and status, generation duration, cache
//     hits (thumbnail already on disk) and misses.
//   - Metadata: EXIF strip operations and images that carried GPS data.
//   - External tools: ffmpeg, ffprobe, exiftool and image library durations and
//     failures.
//   - Gallery pages: pages written and items rendered.
//   - HTTP: preview server requests.
//   - Filesystem: NFS stale handle retries, recorded through the observer
//     returned by NewFilesystemObserver.
package metrics
