// Package main provides the media-gallery command.
//
// media-gallery walks a directory tree, strips EXIF metadata from images,
// creates a thumbnail next to every image and video, and writes a
// PhotoSwipe index.html into every directory that holds media.
//
// # Usage
//
//	media-gallery [flags] <directory> [base_url]
//
// base_url prefixes every link in the generated pages and defaults to "./".
// Run with --help for the flag list; every flag also reads an environment
// variable (see [media-gallery/internal/startup]).
//
// # Run Sequence
//
//  1. Configuration: flags, GOMEMLIMIT, external tool checks, libvips
//  2. Walk: classify every file by content, strip EXIF, ensure thumbnails
//  3. Pages: regenerate index.html for every directory with thumbnailed media
//  4. Metrics: optionally write a Prometheus textfile
//  5. Serve: optionally serve the tree until SIGINT or SIGTERM
//
// The exit code is 1 when the directory argument is missing, the walk is
// aborted, or any file failed.
//
// # External Tools
//
//   - exiftool: EXIF stripping (stay-open mode)
//   - ffmpeg: video frame extraction
//   - ffprobe: video dimensions
//   - libvips: decode-time image shrinking (linked, optional)
//
// # Related Packages
//
//   - [media-gallery/internal/indexer]: the walk
//   - [media-gallery/internal/media]: classification, thumbnails, metadata stripping
//   - [media-gallery/internal/gallery]: index.html generation
//   - [media-gallery/internal/transcoder]: ffmpeg and ffprobe
//   - [media-gallery/internal/handlers]: preview server
package main
