package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/jupypod/pkg/core"
)

const (
	// TempFilePrefix is the prefix of the scratch file a notebook is written to
	// before it replaces the stored one.
	TempFilePrefix = "jupypod-tmp-"

	notebookPerm = 0644
	dirPerm      = 0755
)

// writeNotebook replaces the notebook at filename in one rename, creating
// missing parent directories. Readers never observe a half-written document.
// Every failure wraps core.ErrStorageUnavailable.
func writeNotebook(filename string, data []byte) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return unavailable("create notebook directory", err)
	}

	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return unavailable("create scratch file", err)
	}
	// No-op once the rename succeeded.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return unavailable("write scratch file", err)
	}

	if err := os.Chmod(tmp.Name(), notebookPerm); err != nil {
		return unavailable("chmod scratch file", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return unavailable("replace "+filepath.Base(filename), err)
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", core.ErrStorageUnavailable, op, err)
}
