package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PedroAugusto-sys/bigdata/internal/query"
)

const studentLimit = 500

type StudentHandler struct {
	collection *mongo.Collection
}

func NewStudentHandler(client *mongo.Client, dbName string) *StudentHandler {
	return &StudentHandler{
		collection: client.Database(dbName).Collection("students"),
	}
}

// GetStudents lists students, optionally filtered by grade level. The
// emergency_contact toggle widens the projection with that one field.
func (h *StudentHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	emergencyContact := false
	if raw := r.URL.Query().Get("emergency_contact"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "emergency_contact must be a boolean")
			return
		}
		emergencyContact = b
	}

	filter := query.NewFilter()
	if gradeLevel := r.URL.Query().Get("grade_level"); gradeLevel != "" {
		filter.Eq("Grade_Level", gradeLevel)
	}
	if err := filter.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	projection := bson.M{"_id": 0, "Student_ID": 1, "Full_Name": 1}
	if emergencyContact {
		projection["Emergency_Contact"] = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(projection).
		SetLimit(studentLimit)
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
