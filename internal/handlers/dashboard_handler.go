package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PedroAugusto-sys/bigdata/internal/query"
)

type DashboardHandler struct {
	collection *mongo.Collection
}

func NewDashboardHandler(client *mongo.Client, dbName string) *DashboardHandler {
	return &DashboardHandler{
		collection: client.Database(dbName).Collection("attendance"),
	}
}

// GetSummary runs the three-branch dashboard facet: attendance counts by
// status, homework counts by status and the five most recent communications.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.collection.Aggregate(ctx, query.DashboardPipeline())
	if err != nil {
		storeError(w, err)
		return
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		storeError(w, err)
		return
	}
	if len(results) == 0 {
		// facet always yields one document; an empty cursor means the store
		// misbehaved
		respondError(w, http.StatusServiceUnavailable, "record store returned no summary document")
		return
	}
	respondJSON(w, http.StatusOK, results[0])
}
