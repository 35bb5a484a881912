package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

func DirectoryExists(path string) bool {
	info, error := os.Stat(path)
	if os.IsNotExist(error) {
		return false
	}
	return true && info.IsDir()
}

// SaveBinaryFile writes data to path, creating parent directories as needed.
func SaveBinaryFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if !DirectoryExists(dir) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}
	return nil
}
