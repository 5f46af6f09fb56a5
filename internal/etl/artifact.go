package etl

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// utf8bom makes the artifact open cleanly in spreadsheet tools.
var utf8bom = []byte{0xEF, 0xBB, 0xBF}

const emergencyFilename = "EMERGENCY_OUTPUT.csv"

// ArtifactInfo reports a verified write.
type ArtifactInfo struct {
	Path      string
	SizeBytes int64
	Rows      int
}

// ResolveOutputDir returns preferred if it can be created, otherwise a
// well-known directory under the user's home. The returned directory exists.
func ResolveOutputDir(preferred string) (string, error) {
	if err := os.MkdirAll(preferred, 0o755); err == nil {
		return preferred, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}
	dir := filepath.Join(home, "Desktop", "ETL_OUTPUT")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}
	return dir, nil
}

// WriteArtifact persists the result as a timestamped CSV in dir and
// verifies the file landed on disk.
func WriteArtifact(res *Result, dir string, now time.Time) (ArtifactInfo, error) {
	name := fmt.Sprintf("performance_%s.csv", now.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := writeCSV(res, path); err != nil {
		return ArtifactInfo{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return ArtifactInfo{}, fmt.Errorf("artifact not found after write: %w", err)
	}
	return ArtifactInfo{Path: path, SizeBytes: info.Size(), Rows: len(res.Rows)}, nil
}

// WriteEmergency is the one fallback write: a fixed, untimestamped filename
// in the user's home directory.
func WriteEmergency(res *Result) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("emergency write: %w", err)
	}
	path := filepath.Join(home, emergencyFilename)
	if err := writeCSV(res, path); err != nil {
		return "", err
	}
	return path, nil
}

func writeCSV(res *Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8bom); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(res.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(res.Columns))
	for _, row := range res.Rows {
		for i, col := range res.Columns {
			record[i] = formatCell(row[col])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Sync()
}

// formatCell renders a value for CSV output. A nil (missing) value becomes
// an empty cell; floats keep full precision.
func formatCell(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32)
	case int:
		return strconv.Itoa(n)
	case int32:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	default:
		return fmt.Sprint(n)
	}
}
