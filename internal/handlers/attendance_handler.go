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

const attendanceLimit = 500

type AttendanceHandler struct {
	collection *mongo.Collection
}

func NewAttendanceHandler(client *mongo.Client, dbName string) *AttendanceHandler {
	return &AttendanceHandler{
		collection: client.Database(dbName).Collection("attendance"),
	}
}

// GetAttendance returns attendance records filtered by an inclusive date
// range and status. A status outside the allowed enumeration is rejected
// before any store call.
func (h *AttendanceHandler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	dateStart := r.URL.Query().Get("date_start")
	dateEnd := r.URL.Query().Get("date_end")
	status := r.URL.Query().Get("status")

	if status != "" && !models.ValidAttendanceStatus(status) {
		respondError(w, http.StatusBadRequest, "status must be Present or Absent")
		return
	}

	filter := query.NewFilter()
	if dateStart != "" && dateEnd != "" {
		filter.Range("Date", dateStart, dateEnd)
	}
	if status != "" {
		filter.Eq("Attendance_Status", status)
	}
	if err := filter.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetLimit(attendanceLimit)
	cursor, err := h.collection.Find(ctx, filter.BSON(), opts)
	if err != nil {
		storeError(w, err)
		return
	}
	defer cursor.Close(ctx)

	results := []models.Attendance{}
	if err := cursor.All(ctx, &results); err != nil {
		storeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}
