// Package indexer walks a gallery tree and drives the per-file work.
//
// A walk has three passes:
//   - Collect: every file below the root is inspected; thumbnails, exiftool
//     backups, non-regular files and non-media content are ignored
//   - Process: each remaining file has its EXIF data stripped and its
//     thumbnail ensured, sequentially or with a bounded worker group
//   - Pages: every directory that received a thumbnail gets a fresh
//     index.html
//
// Failures of single files are isolated and reported in the Result unless
// FailFast is set, in which case the walk stops at the first one.
package indexer
