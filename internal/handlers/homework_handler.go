package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PedroAugusto-sys/bigdata/internal/query"
)

const homeworkLimit = 200

type HomeworkHandler struct {
	collection *mongo.Collection
}

func NewHomeworkHandler(client *mongo.Client, dbName string) *HomeworkHandler {
	return &HomeworkHandler{
		collection: client.Database(dbName).Collection("homework"),
	}
}

// GetHomework filters homework tasks by subject, status and a grade
// feedback prefix.
func (h *HomeworkHandler) GetHomework(w http.ResponseWriter, r *http.Request) {
	filter := query.NewFilter()
	if subject := r.URL.Query().Get("subject"); subject != "" {
		filter.Eq("Subject", subject)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Eq("Status", status)
	}
	if grade := r.URL.Query().Get("grade"); grade != "" {
		filter.Prefix("Grade_Feedback", grade)
	}
	if err := filter.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"_id": 0, "Due_Date": 1, "Subject": 1, "Status": 1}).
		SetLimit(homeworkLimit)
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
