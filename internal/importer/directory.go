package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/bizledger/constants"
)

// FileResult is the outcome of importing one file of a directory.
type FileResult struct {
	Path     string
	Kind     Kind
	Inserted int
	Err      string
}

// DirStats aggregates a directory import.
type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Failed    uint32
	Inserted  uint32
}

// ImportDirectory walks root and imports every file with a supported
// extension, inferring the kind from the file name prefix. Hidden files and
// directories are skipped when skipHidden is set. A failing file does not
// stop the walk.
func (s *Service) ImportDirectory(ctx context.Context, root string, skipHidden bool) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var results []FileResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && path != root && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		if _, ok := constants.ImportExtensions[constants.NormalizeExt(filepath.Ext(path))]; !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Matched++

		kind, ok := KindFromFileName(path)
		if !ok {
			results = append(results, FileResult{Path: path, Err: "cannot infer import kind from file name"})
			stats.Failed++
			return nil
		}

		res, err := s.ImportFile(ctx, kind, path)
		stats.Inserted += uint32(res.Inserted)
		if err != nil {
			s.logger.Warn("import.file.failed", "path", path, "kind", kind, "err", err)
			results = append(results, FileResult{Path: path, Kind: kind, Inserted: res.Inserted, Err: err.Error()})
			stats.Failed++
			return nil
		}
		results = append(results, FileResult{Path: path, Kind: kind, Inserted: res.Inserted})
		stats.Succeeded++
		return nil
	})
	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	s.logger.Info("import.directory.ok", "root", root, "matched", stats.Matched, "failed", stats.Failed, "inserted", stats.Inserted)
	return results, stats, nil
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
