package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootMarkers are the files or directories that identify a notebook workspace.
var RootMarkers = []string{".jupypod", "jupypod.yaml", "jupypod.yml", "jupypod.toml", ".git"}

// FindRoot walks upwards from startDir looking for a workspace marker and
// returns the absolute path of the first directory holding one.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, marker := range RootMarkers {
			if hasFile(dir, marker) {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
