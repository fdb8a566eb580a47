/*
Package filesystem provides resilient filesystem operations with automatic retry logic
for NFS stale file handle errors, and atomic file replacement.

# Purpose

Gallery trees frequently live on NAS shares. This package wraps os.Stat and os.Open with retry logic for ESTALE (stale file
handle) errors that occur when NFS-mounted files are accessed during network issues
or server-side changes.

# Usage

	info, err := filesystem.StatWithRetry("/nfs/galleries/file.jpg", filesystem.DefaultRetryConfig())

	ok, err := filesystem.Exists(thumbPath)

	err := filesystem.WriteFileAtomic(indexPath, page)

# Retry Behavior

  - MaxRetries: 3 attempts
  - InitialBackoff: 50ms
  - MaxBackoff: 500ms

Only ESTALE triggers retries. All other errors fail immediately.

# Atomic writes

WriteFileAtomic writes through github.com/natefinch/atomic. Thumbnails and index.html
are written this way because the existence of a thumbnail is the only signal that it
does not need regenerating.
*/
package filesystem
