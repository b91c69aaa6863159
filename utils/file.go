package utils

import (
	"os"
	"path/filepath"
)

// EnsureUploadDir creates the uploads directory if it doesn't exist
func EnsureUploadDir() error {
	return os.MkdirAll(filepath.Join("uploads", "certificates"), os.ModePerm)
}

// WriteUploadFile writes rendered content (e.g., a certificate) under the
// uploads directory and returns the relative path served by the static route.
func WriteUploadFile(relPath string, data []byte) (string, error) {
	destPath := filepath.Join("uploads", relPath)
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return "", err
	}
	return destPath, nil
}
