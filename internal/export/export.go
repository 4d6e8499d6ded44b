// Package export serializes sealed scan sessions to files. It is a
// pure consumer of the engine's output: an export failure is reported
// to the caller but never invalidates the session, which stays
// available for retry or an alternate format.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Zilvh/Vesta-Sries/internal/errors"
	"github.com/Zilvh/Vesta-Sries/internal/scan"
)

// Format identifies a supported export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatCSV:
		return Format(name), nil
	default:
		return "", errors.NewExportError(errors.CodeFormatInvalid,
			fmt.Sprintf("unsupported export format %q (json or csv)", name), "")
	}
}

// report is the persisted JSON shape. The field set and names are a
// compatibility contract; do not rename.
type report struct {
	ScanTime string            `json:"scan_time"`
	Duration float64           `json:"duration"`
	Results  []scan.PortResult `json:"results"`
}

// Write serializes the session to path in the given format.
func Write(path string, format Format, session *scan.Session) error {
	switch format {
	case FormatJSON:
		return WriteJSON(path, session)
	case FormatCSV:
		return WriteCSV(path, session)
	default:
		return errors.NewExportError(errors.CodeFormatInvalid,
			fmt.Sprintf("unsupported export format %q", format), path)
	}
}

// WriteJSON writes the session as an indented JSON report.
func WriteJSON(path string, session *scan.Session) error {
	r := report{
		ScanTime: session.StartTime.Format(time.RFC3339),
		Duration: session.Duration.Seconds(),
		Results:  session.Results,
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.WrapExportError(errors.CodeFileWrite, "failed to encode JSON report", path, err)
	}

	if err := writeAtomic(path, append(data, '\n')); err != nil {
		return errors.ErrExportWrite(path, err)
	}
	return nil
}

// WriteCSV writes the session as CSV, one row per open port, in the
// session's canonical ascending-port order.
func WriteCSV(path string, session *scan.Session) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"port", "service", "status", "banner"}); err != nil {
		return errors.WrapExportError(errors.CodeFileWrite, "failed to encode CSV header", path, err)
	}
	for _, result := range session.Results {
		row := []string{strconv.Itoa(result.Port), result.Service, result.Status, result.Banner}
		if err := w.Write(row); err != nil {
			return errors.WrapExportError(errors.CodeFileWrite, "failed to encode CSV row", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapExportError(errors.CodeFileWrite, "failed to flush CSV", path, err)
	}

	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return errors.ErrExportWrite(path, err)
	}
	return nil
}

// writeAtomic writes data to path via a temp file in the same
// directory and a rename, so a failed export never leaves a truncated
// report behind.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, "vesta-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
