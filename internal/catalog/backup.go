package catalog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// BackupSuffix is appended to a catalog file's name by BackupFile.
const BackupSuffix = ".bak"

// BackupFile copies an existing catalog file next to itself before it is
// overwritten. It returns the backup path, or "" when there was nothing to
// back up.
func BackupFile(path string) (string, error) {
	path = expandHome(path)
	src, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to open catalog: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	dst := path + BackupSuffix
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to copy: %w", err)
	}
	return dst, out.Close()
}
