package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseRecords(t *testing.T) {
	header := []string{"Student_ID", "Subject", "Exam_Score"}

	t.Run("trims whitespace and coerces numbers", func(t *testing.T) {
		docs := ParseRecords(header, [][]string{
			{" S1 ", "  Math", "85"},
			{"S2", "Science", "72.5"},
		})
		require.Len(t, docs, 2)
		assert.Equal(t, bson.M{"Student_ID": "S1", "Subject": "Math", "Exam_Score": int64(85)}, docs[0])
		assert.Equal(t, bson.M{"Student_ID": "S2", "Subject": "Science", "Exam_Score": 72.5}, docs[1])
	})

	t.Run("drops rows with empty cells", func(t *testing.T) {
		docs := ParseRecords(header, [][]string{
			{"S1", "", "85"},
			{"S2", "Math", "90"},
			{"S3", "Math", "   "},
		})
		require.Len(t, docs, 1)
		assert.Equal(t, "S2", docs[0].(bson.M)["Student_ID"])
	})

	t.Run("drops short rows", func(t *testing.T) {
		docs := ParseRecords(header, [][]string{{"S1", "Math"}})
		assert.Empty(t, docs)
	})
}

func TestReadFile(t *testing.T) {
	t.Run("parses a csv with a BOM", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "performance.csv")
		content := "\uFEFFStudent_ID,Subject\nS1,Math\nS2,Science\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		docs, err := ReadFile(path)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "S1", docs[0].(bson.M)["Student_ID"])
	})

	t.Run("header-only file yields nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.csv")
		require.NoError(t, os.WriteFile(path, []byte("Student_ID,Subject\n"), 0o644))

		docs, err := ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}
