// Package ingest loads CSV source files into the record store, one
// collection per file. The walk is best effort: a bad file is logged and
// skipped, never fatal to the rest of the directory.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Loader struct {
	Client       *mongo.Client
	DatabaseName string
	Log          *zap.SugaredLogger
}

// Run scans dataDir in sorted filename order and bulk-inserts every CSV
// into the collection named after its basename. No dedup: re-running the
// ingestion duplicates rows.
func (l *Loader) Run(ctx context.Context, dataDir string) error {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return fmt.Errorf("read data dir %s: %w", dataDir, err)
	}

	db := l.Client.Database(l.DatabaseName)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}

		path := filepath.Join(dataDir, entry.Name())
		collection := strings.TrimSuffix(entry.Name(), ".csv")

		docs, err := ReadFile(path)
		if err != nil {
			l.Log.Warnw("skipping file", "file", entry.Name(), "error", err)
			continue
		}
		if len(docs) == 0 {
			l.Log.Warnw("empty file", "file", entry.Name())
			continue
		}

		result, err := db.Collection(collection).InsertMany(ctx, docs)
		if err != nil {
			l.Log.Warnw("insert failed", "collection", collection, "error", err)
			continue
		}
		l.Log.Infow("inserted records", "collection", collection, "count", len(result.InsertedIDs))
	}
	return nil
}

// ReadFile parses one CSV file into store documents.
func ReadFile(path string) ([]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	return ParseRecords(header, records[1:]), nil
}

// ParseRecords turns raw CSV rows into documents: string cells are
// whitespace-trimmed, numeric-looking cells become numbers, and any row
// with an empty cell is dropped.
func ParseRecords(header []string, rows [][]string) []interface{} {
	var docs []interface{}
rowLoop:
	for _, row := range rows {
		doc := bson.M{}
		for i, col := range header {
			if i >= len(row) {
				continue rowLoop
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue rowLoop
			}
			doc[strings.TrimSpace(col)] = coerceCell(cell)
		}
		docs = append(docs, doc)
	}
	return docs
}

func coerceCell(cell string) interface{} {
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}
