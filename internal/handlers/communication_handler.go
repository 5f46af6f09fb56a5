package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PedroAugusto-sys/bigdata/internal/models"
	"github.com/PedroAugusto-sys/bigdata/internal/query"
)

const communicationLimit = 100

type CommunicationHandler struct {
	collection *mongo.Collection

	// now is swappable so the recency cutoff is testable.
	now func() time.Time
}

func NewCommunicationHandler(client *mongo.Client, dbName string) *CommunicationHandler {
	return &CommunicationHandler{
		collection: client.Database(dbName).Collection("teacher_parent_communication"),
		now:        time.Now,
	}
}

type communicationParams struct {
	MessageType string
	LastDays    int `validate:"min=0"`
}

// GetCommunications filters communications by message type and recency.
// last_days defaults to 30; zero disables the cutoff.
func (h *CommunicationHandler) GetCommunications(w http.ResponseWriter, r *http.Request) {
	lastDays, ok := queryInt(r, "last_days")
	if !ok {
		respondError(w, http.StatusBadRequest, "last_days must be an integer")
		return
	}
	params := communicationParams{
		MessageType: r.URL.Query().Get("message_type"),
		LastDays:    30,
	}
	if lastDays != nil {
		params.LastDays = *lastDays
	}
	if err := validate.Struct(params); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := query.NewFilter()
	if params.MessageType != "" {
		filter.Eq("Message_Type", params.MessageType)
	}
	if params.LastDays > 0 {
		cutoff := h.now().AddDate(0, 0, -params.LastDays).Format(time.RFC3339)
		filter.Gte("Date", cutoff)
	}
	if err := filter.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetLimit(communicationLimit)
	cursor, err := h.collection.Find(ctx, filter.BSON(), opts)
	if err != nil {
		storeError(w, err)
		return
	}
	defer cursor.Close(ctx)

	results := []models.Communication{}
	if err := cursor.All(ctx, &results); err != nil {
		storeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}
