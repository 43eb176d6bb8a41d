// Package dataset discovers transaction files and loads them as baskets.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Veraticus/cooccur/internal/common"
	"github.com/Veraticus/cooccur/internal/model"
	"github.com/Veraticus/cooccur/internal/ofx"
)

// CSVSuffix marks a file as a basket CSV during discovery.
const CSVSuffix = "_transactions.csv"

var (
	// ErrDataDirNotFound is returned when the data directory does not exist.
	ErrDataDirNotFound = errors.New("data folder not found")
	// ErrUnsupportedFormat is returned for files that are neither CSV nor OFX/QFX.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// Dataset is a discovered transaction file.
type Dataset struct {
	Name string
	Path string
}

// Stem is the file name without its extension; output folders are keyed by it.
func (d Dataset) Stem() string {
	return Stem(d.Path)
}

// Stem strips directory and extension from path.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Discover lists the datasets in dir sorted by file name.
func Discover(dir string) ([]Dataset, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDataDirNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data folder: %w", err)
	}

	var datasets []Dataset
	for _, entry := range entries {
		if entry.IsDir() || !isDatasetFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		datasets = append(datasets, Dataset{
			Name: FriendlyName(Stem(path)),
			Path: path,
		})
	}

	if len(datasets) == 0 {
		return nil, fmt.Errorf("%w: no '*%s' in %s", common.ErrNoDatasets, CSVSuffix, dir)
	}

	sort.Slice(datasets, func(i, j int) bool {
		return filepath.Base(datasets[i].Path) < filepath.Base(datasets[j].Path)
	})

	return datasets, nil
}

func isDatasetFile(name string) bool {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, CSVSuffix):
		return true
	case strings.HasSuffix(lower, ".ofx"), strings.HasSuffix(lower, ".qfx"):
		return true
	}
	return false
}

// Resolve finds a dataset by index (1-based), friendly name, stem or path.
func Resolve(datasets []Dataset, ref string) (Dataset, error) {
	ref = strings.TrimSpace(ref)

	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return Dataset{Name: FriendlyName(Stem(ref)), Path: ref}, nil
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(datasets) {
			return Dataset{}, fmt.Errorf("%w: dataset %d (choose 1-%d)", common.ErrNotFound, n, len(datasets))
		}
		return datasets[n-1], nil
	}

	for _, d := range datasets {
		if strings.EqualFold(d.Name, ref) || strings.EqualFold(d.Stem(), ref) ||
			strings.EqualFold(strings.TrimSuffix(d.Stem(), "_transactions"), ref) {
			return d, nil
		}
	}

	return Dataset{}, fmt.Errorf("%w: dataset %q", common.ErrNotFound, ref)
}

// Load reads the baskets of the file at path, choosing a loader by extension.
func Load(ctx context.Context, path string) ([]model.Transaction, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	var txns []model.Transaction
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		txns, err = ReadCSV(f)
	case ".ofx", ".qfx":
		txns, err = ofx.NewParser().ParseFile(ctx, f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	if len(txns) == 0 {
		return nil, fmt.Errorf("%w in %s", common.ErrNoTransactions, filepath.Base(path))
	}

	return txns, nil
}
