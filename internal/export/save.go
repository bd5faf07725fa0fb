package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Save writes the worksheet into dir under FileName(opts.Locale) and
// returns the path. An existing file is never overwritten; a numeric
// suffix is added instead.
func Save(dir string, problems []string, opts Options) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".mathsheet-*.docx")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteDOCX(tmp, problems, opts); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	path, err := freePath(dir, FileName(opts.Locale))
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename worksheet: %w", err)
	}
	return path, nil
}

// freePath returns dir/name, or dir/base-N.ext for the first N >= 2 that
// does not exist.
func freePath(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 1; n < 1000; n++ {
		candidate := name
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d%s", base, n, ext)
		}
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("no free file name for %s in %s", name, dir)
}
