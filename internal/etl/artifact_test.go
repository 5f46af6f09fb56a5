package etl

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func transformFixture(t *testing.T) *Result {
	t.Helper()
	res, err := Transform([]bson.D{
		perfDoc("S1", 80.0, "90%"),
		perfDoc("S2", "bad", "N/A"),
	})
	require.NoError(t, err)
	return res
}

func readArtifact(t *testing.T, path string) [][]string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, utf8bom), "artifact must start with a UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(raw[len(utf8bom):])).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteArtifact(t *testing.T) {
	res := transformFixture(t)
	dir := t.TempDir()
	now := time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)

	info, err := WriteArtifact(res, dir, now)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "performance_20240315_103045.csv"), info.Path)
	assert.Equal(t, 2, info.Rows)
	assert.Greater(t, info.SizeBytes, int64(0))

	records := readArtifact(t, info.Path)
	require.Len(t, records, 3)
	assert.Equal(t, res.Columns, records[0])

	t.Run("missing values are empty cells", func(t *testing.T) {
		header := records[0]
		row := records[2] // the uncoercible exam score row
		cells := map[string]string{}
		for i, col := range header {
			cells[col] = row[i]
		}
		assert.Equal(t, "", cells["Exam_Score"])
		assert.Equal(t, "", cells["Final_Score"])
		assert.Equal(t, "0", cells["Homework_Score"])
	})
}

func TestWriteArtifactTimestampedRuns(t *testing.T) {
	// Re-running the transform is idempotent on content but each run gets
	// its own timestamped filename.
	res := transformFixture(t)
	again := transformFixture(t)
	dir := t.TempDir()

	first, err := WriteArtifact(res, dir, time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC))
	require.NoError(t, err)
	second, err := WriteArtifact(again, dir, time.Date(2024, 3, 15, 10, 30, 46, 0, time.UTC))
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
	assert.Equal(t, first.Rows, second.Rows)

	a := readArtifact(t, first.Path)
	b := readArtifact(t, second.Path)
	assert.Equal(t, a, b)
}

func TestWriteArtifactUnwritableDir(t *testing.T) {
	res := transformFixture(t)
	_, err := WriteArtifact(res, filepath.Join(t.TempDir(), "missing", "nested"), time.Now())
	assert.Error(t, err)
}

func TestResolveOutputDir(t *testing.T) {
	preferred := filepath.Join(t.TempDir(), "out")
	dir, err := ResolveOutputDir(preferred)
	require.NoError(t, err)
	assert.Equal(t, preferred, dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", formatCell(nil))
	assert.Equal(t, "85.5", formatCell(85.5))
	assert.Equal(t, "42", formatCell(42))
	assert.Equal(t, "free text", formatCell("free text"))
}
