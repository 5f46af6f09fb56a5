// Package etl implements the performance transform: extract the raw
// collection, coerce the messy score fields, derive the composite score
// and persist the result as a timestamped CSV artifact.
package etl

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/PedroAugusto-sys/bigdata/internal/score"
)

const completionColumn = "Homework_Completion_%"

var (
	// RequiredColumns must be present in the input schema; their absence is
	// a configuration error, not a per-record one.
	RequiredColumns = []string{"Student_ID", "Exam_Score"}

	ErrEmptySource    = errors.New("no documents in source collection")
	ErrMissingColumns = errors.New("required columns missing")
)

// Result is the enriched record set. Columns preserves the input schema in
// first-appearance order with the two derived columns appended; Rows hold
// nil for a missing value (uncoercible exam score, and the final score it
// poisons).
type Result struct {
	Columns []string
	Rows    []map[string]interface{}
}

// Transform validates the schema, coerces Exam_Score per record, derives
// Homework_Score and Final_Score and returns the enriched rows. It performs
// no I/O; persistence policy belongs to the caller.
func Transform(docs []bson.D) (*Result, error) {
	if len(docs) == 0 {
		return nil, ErrEmptySource
	}

	columns := collectColumns(docs)
	colSet := make(map[string]bool, len(columns))
	for _, c := range columns {
		colSet[c] = true
	}

	var missing []string
	for _, c := range RequiredColumns {
		if !colSet[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingColumns, missing)
	}

	// Absent column means assume full completion; a present column with no
	// digits in a value means zero completion. The two must stay distinct.
	hasCompletion := colSet[completionColumn]

	rows := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		row := make(map[string]interface{}, len(doc)+2)
		for _, e := range doc {
			if e.Key == "_id" {
				continue
			}
			row[e.Key] = e.Value
		}

		var exam interface{}
		if n, ok := score.CoerceNumber(row["Exam_Score"]); ok {
			exam = n
		}
		row["Exam_Score"] = exam

		homework := 100.0
		if hasCompletion {
			homework = score.ParsePercent(stringify(row[completionColumn]))
		}
		row["Homework_Score"] = homework

		if exam != nil {
			row["Final_Score"] = score.Final(exam.(float64), homework)
		} else {
			row["Final_Score"] = nil
		}

		rows = append(rows, row)
	}

	return &Result{
		Columns: append(columns, "Homework_Score", "Final_Score"),
		Rows:    rows,
	}, nil
}

func collectColumns(docs []bson.D) []string {
	var columns []string
	seen := make(map[string]bool)
	for _, doc := range docs {
		for _, e := range doc {
			if e.Key == "_id" || seen[e.Key] {
				continue
			}
			seen[e.Key] = true
			columns = append(columns, e.Key)
		}
	}
	return columns
}

func stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
