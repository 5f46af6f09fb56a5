package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PedroAugusto-sys/bigdata/internal/models"
	"github.com/PedroAugusto-sys/bigdata/internal/query"
	"github.com/PedroAugusto-sys/bigdata/internal/score"
)

const performanceLimit = 100

// The analysis variant projects the completion timestamp and maps an empty
// join to 404; the plain variant returns the empty sequence.
const (
	analysisVariant = true
	plainVariant    = false
)

type PerformanceHandler struct {
	collection *mongo.Collection
}

func NewPerformanceHandler(client *mongo.Client, dbName string) *PerformanceHandler {
	return &PerformanceHandler{
		collection: client.Database(dbName).Collection("performance"),
	}
}

type performanceParams struct {
	MinExam *int `validate:"omitempty,min=0"`
	Subject string
	Limit   int `validate:"min=1,max=100"`
}

// GetPerformance returns performance records filtered by minimum exam
// score and subject.
func (h *PerformanceHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	minExam, ok := queryInt(r, "min_exam")
	if !ok {
		respondError(w, http.StatusBadRequest, "min_exam must be an integer")
		return
	}
	limit, ok := queryLimit(r, performanceLimit, performanceLimit)
	if !ok {
		respondError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	params := performanceParams{
		MinExam: minExam,
		Subject: r.URL.Query().Get("subject"),
		Limit:   limit,
	}
	if err := validate.Struct(params); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := query.NewFilter()
	if params.MinExam != nil {
		filter.Gte("Exam_Score", *params.MinExam)
	}
	if params.Subject != "" {
		filter.Eq("Subject", params.Subject)
	}
	if err := filter.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"_id": 0, "Student_ID": 1, "Subject": 1, "Exam_Score": 1}).
		SetLimit(int64(params.Limit))
	cursor, err := h.collection.Find(ctx, filter.BSON(), opts)
	if err != nil {
		storeError(w, err)
		return
	}
	defer cursor.Close(ctx)

	results := []bson.M{}
	if err := cursor.All(ctx, &results); err != nil {
		storeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

type completionParams struct {
	MinPercentage *int `validate:"omitempty,min=0,max=100"`
	Subject       string
	Limit         int `validate:"min=1,max=100"`
}

// GetHomeworkCompletion exposes the raw completion-percentage text stored
// on performance records alongside a numeric value parsed at read time.
// The regex over the raw text is only a server-side prefilter; rows are
// re-checked against the parsed value so the threshold is exact.
func (h *PerformanceHandler) GetHomeworkCompletion(w http.ResponseWriter, r *http.Request) {
	minPct, ok := queryInt(r, "min_percentage")
	if !ok {
		respondError(w, http.StatusBadRequest, "min_percentage must be an integer")
		return
	}
	limit, ok := queryLimit(r, performanceLimit, performanceLimit)
	if !ok {
		respondError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	params := completionParams{
		MinPercentage: minPct,
		Subject:       r.URL.Query().Get("subject"),
		Limit:         limit,
	}
	if err := validate.Struct(params); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := query.NewFilter()
	if params.MinPercentage != nil {
		filter.Regex("Homework_Completion_%", query.CompletionTextRegex(*params.MinPercentage))
	}
	if params.Subject != "" {
		filter.Eq("Subject", params.Subject)
	}
	if err := filter.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{
			"_id":                   0,
			"Student_ID":            1,
			"Subject":               1,
			"Homework_Completion_%": 1,
			"Teacher_Comments":      1,
		}).
		SetLimit(int64(params.Limit))
	cursor, err := h.collection.Find(ctx, filter.BSON(), opts)
	if err != nil {
		storeError(w, err)
		return
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		storeError(w, err)
		return
	}

	results := []bson.M{}
	for _, row := range rows {
		raw := ""
		if v, found := row["Homework_Completion_%"]; found && v != nil {
			raw = fmt.Sprint(v)
		}
		parsed := score.ParsePercent(raw)
		if params.MinPercentage != nil && parsed < float64(*params.MinPercentage) {
			continue
		}
		row["Homework_Completion"] = parsed
		results = append(results, row)
	}
	respondJSON(w, http.StatusOK, results)
}

// GetCombinedAnalysis joins performance with homework completion and
// treats an empty join as not found.
func (h *PerformanceHandler) GetCombinedAnalysis(w http.ResponseWriter, r *http.Request) {
	h.combined(w, r, analysisVariant)
}

// GetCombined is the same join but an empty result is an empty sequence.
func (h *PerformanceHandler) GetCombined(w http.ResponseWriter, r *http.Request) {
	h.combined(w, r, plainVariant)
}

func (h *PerformanceHandler) combined(w http.ResponseWriter, r *http.Request, analysis bool) {
	minCompletion, ok := queryInt(r, "min_completion")
	if !ok {
		respondError(w, http.StatusBadRequest, "min_completion must be an integer")
		return
	}
	min := 0
	if minCompletion != nil {
		min = *minCompletion
	}
	if min < 0 || min > 100 {
		respondError(w, http.StatusBadRequest, "min_completion must be between 0 and 100")
		return
	}
	subject := r.URL.Query().Get("subject")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pipeline := query.CombinedPipeline(subject, min, analysis)
	cursor, err := h.collection.Aggregate(ctx, pipeline)
	if err != nil {
		storeError(w, err)
		return
	}
	defer cursor.Close(ctx)

	results := []models.CombinedRow{}
	if err := cursor.All(ctx, &results); err != nil {
		storeError(w, err)
		return
	}

	if len(results) == 0 && analysis {
		respondError(w, http.StatusNotFound, "no data found for the given filters")
		return
	}
	respondJSON(w, http.StatusOK, results)
}
