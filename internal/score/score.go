// Package score holds the one canonical parser for the messy percentage
// text carried by the source data, plus the weighted composite formula.
// Every layer that needs a numeric completion percentage goes through
// ParsePercent so the ETL and the query paths cannot disagree.
package score

import "strconv"

const (
	ExamWeight     = 0.7
	HomeworkWeight = 0.3
)

// ParsePercent interprets the first contiguous run of decimal digits in s
// as an integer percentage. A value with no digits at all ("N/A", "-")
// parses to 0. Callers that need the distinct "field entirely absent"
// policy (assume full completion) must apply it before calling.
func ParsePercent(s string) float64 {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return 0
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		// digit run too long for an int; treat like no digits
		return 0
	}
	return float64(n)
}

// CoerceNumber attempts to read v as a float: numbers pass through,
// numeric strings are parsed, anything else reports ok=false (the
// missing-value marker is the caller's nil).
func CoerceNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Final computes the weighted composite of an exam score and a homework
// completion score.
func Final(exam, homework float64) float64 {
	return ExamWeight*exam + HomeworkWeight*homework
}
