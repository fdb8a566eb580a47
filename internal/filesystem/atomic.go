package filesystem

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// NewFileMode is applied to files created by WriteFileAtomic. Existing files
// keep their mode.
const NewFileMode os.FileMode = 0o644

// WriteFileAtomic replaces path with data via a temporary file in the same
// directory and a rename, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte) error {
	_, statErr := os.Stat(path)
	created := errors.Is(statErr, os.ErrNotExist)

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}

	// the temporary file is created 0600
	if created {
		if err := os.Chmod(path, NewFileMode); err != nil {
			return fmt.Errorf("chmod %s: %w", path, err)
		}
	}
	return nil
}
