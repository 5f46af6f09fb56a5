package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PedroAugusto-sys/bigdata/internal/handlers"
)

func SetupRouter(client *mongo.Client, dbName string) *mux.Router {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is healthy"))
	}).Methods("GET")

	performanceHandler := handlers.NewPerformanceHandler(client, dbName)
	attendanceHandler := handlers.NewAttendanceHandler(client, dbName)
	homeworkHandler := handlers.NewHomeworkHandler(client, dbName)
	studentHandler := handlers.NewStudentHandler(client, dbName)
	communicationHandler := handlers.NewCommunicationHandler(client, dbName)
	dashboardHandler := handlers.NewDashboardHandler(client, dbName)

	router.HandleFunc("/performance", performanceHandler.GetPerformance).Methods("GET")
	router.HandleFunc("/performance/homework-completion", performanceHandler.GetHomeworkCompletion).Methods("GET")
	router.HandleFunc("/performance/combined-analysis", performanceHandler.GetCombinedAnalysis).Methods("GET")
	router.HandleFunc("/performance/combined", performanceHandler.GetCombined).Methods("GET")
	router.HandleFunc("/attendance", attendanceHandler.GetAttendance).Methods("GET")
	router.HandleFunc("/homework", homeworkHandler.GetHomework).Methods("GET")
	router.HandleFunc("/students", studentHandler.GetStudents).Methods("GET")
	router.HandleFunc("/communications", communicationHandler.GetCommunications).Methods("GET")
	router.HandleFunc("/dashboard/summary", dashboardHandler.GetSummary).Methods("GET")

	return router
}
