package store

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

// ReadReportFile reads a report from disk, transparently decompressing
// files with a .gz extension. maxBytes bounds the decoded size; reports
// are human-readable text and anything larger is rejected at this boundary.
func ReadReportFile(path string, maxBytes int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("opening gzip report: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading report: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("report %s exceeds %d byte limit", path, maxBytes)
	}
	return string(data), nil
}

// LoadDefault installs the default report file if present. A missing file
// is not fatal; the store stays empty until an upload arrives and readers
// see ErrNoReport in the meantime.
func (s *Store) LoadDefault(path string, maxBytes int64) error {
	text, err := ReadReportFile(path, maxBytes)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("default report not found", zap.String("path", path))
			return nil
		}
		return err
	}
	s.Replace(text, "default")
	return nil
}
