package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"parking-insights/models"
	"parking-insights/utils"
)

var (
	ErrNotFound       = errors.New("dataset file not found")
	ErrMalformedInput = errors.New("malformed dataset input")
)

// Collections are the dataset directories under the data root that
// ListDatasets enumerates.
var Collections = []string{"raw", "processed"}

// Loader reads dataset files relative to a fixed root directory.
// It holds no mutable state and is safe for concurrent use.
type Loader struct {
	root   string
	logger *utils.Logger
}

// NewLoader creates a Loader rooted at root.
func NewLoader(root string, logger *utils.Logger) *Loader {
	return &Loader{root: root, logger: logger}
}

// Root returns the directory relative paths resolve against.
func (l *Loader) Root() string {
	return l.root
}

// Resolve maps a dataset path to a filesystem path. Absolute paths are kept.
func (l *Loader) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.root, filepath.FromSlash(path))
}

// ParseDelimited reads a comma-separated file with a header row.
//
// Fields are split on every comma; quoting is not supported, so a comma
// inside a value shifts the remaining columns. Rows shorter than the header
// are padded with empty strings and extra cells are dropped.
func (l *Loader) ParseDelimited(path string) ([]*Record, error) {
	data, err := l.read(path)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, 64)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: %s: need a header and at least one data row, got %d line(s)",
			ErrMalformedInput, path, len(lines))
	}

	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	records := make([]*Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := strings.Split(line, ",")
		rec := newRecord(len(headers))
		for i, h := range headers {
			raw := ""
			if i < len(cells) {
				raw = cells[i]
			}
			rec.fields.Set(h, coerceValue(raw))
		}
		records = append(records, rec)
	}

	l.logger.Debug("[loader] Parsed %d rows x %d columns from %s", len(records), len(headers), path)
	return records, nil
}

// ParseStructured decodes a JSON document and returns it unmodified
// (map[string]any, []any or a scalar).
func (l *Loader) ParseStructured(path string) (any, error) {
	data, err := l.read(path)
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedInput, path, err)
	}

	l.logger.Debug("[loader] Parsed JSON document %s (%d bytes)", path, len(data))
	return v, nil
}

// StatFile never fails; missing or unreadable paths report Exists=false.
func (l *Loader) StatFile(path string) models.FileMetadata {
	info, err := os.Stat(l.Resolve(path))
	if err != nil {
		return models.FileMetadata{Exists: false}
	}
	mod := info.ModTime()
	return models.FileMetadata{
		Exists:     true,
		Size:       info.Size(),
		ModifiedAt: &mod,
	}
}

// ListDatasets enumerates the files of every collection directory.
// Collections that are missing or hold no files are left out of the result.
func (l *Loader) ListDatasets() (map[string][]models.DatasetEntry, error) {
	result := make(map[string][]models.DatasetEntry, len(Collections))

	for _, collection := range Collections {
		entries, err := os.ReadDir(l.Resolve(collection))
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("[loader] Collection %q not present, skipping", collection)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("list collection %q: %w", collection, err)
		}

		files := lo.FilterMap(entries, func(e os.DirEntry, _ int) (models.DatasetEntry, bool) {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				return models.DatasetEntry{}, false
			}
			rel := collection + "/" + e.Name()
			return models.DatasetEntry{
				Name:     e.Name(),
				Path:     rel,
				Metadata: l.StatFile(rel),
			}, true
		})
		if len(files) == 0 {
			continue
		}
		result[collection] = files
	}

	return result, nil
}

// read checks existence before opening so a missing file never yields a
// partial read.
func (l *Loader) read(path string) ([]byte, error) {
	full := l.Resolve(path)
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrMalformedInput, path)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
