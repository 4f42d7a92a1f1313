package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/studyloop/backend/internal/database"
	"github.com/studyloop/backend/internal/gamification"
	"github.com/studyloop/backend/internal/generator"
	"github.com/studyloop/backend/internal/questions"
	"github.com/studyloop/backend/internal/registry"
	"github.com/studyloop/backend/internal/scheduler"
)

func main() {
	db, err := database.Connect()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	topicStore := registry.NewStore(db)
	topicHandler := registry.NewHandler(topicStore)

	progressStore := scheduler.NewStore(db)
	schedService := scheduler.NewService(progressStore, topicStore)
	schedHandler := scheduler.NewHandler(schedService)

	gamifyStore := gamification.NewStore(db)
	gamifyService := gamification.NewService(gamifyStore)
	gamifyHandler := gamification.NewHandler(gamifyService)

	gen := generator.NewGenerator()

	questionStore := questions.NewStore(db)
	questionService := questions.NewService(questionStore, topicStore, schedService, gen, gamifyService)
	questionHandler := questions.NewHandler(questionService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Topic registry
	api.HandleFunc("/topics", topicHandler.ListTopics).Methods("GET")
	api.HandleFunc("/topics", topicHandler.LoadTopicSet).Methods("POST")
	api.HandleFunc("/topics", topicHandler.ClearTopics).Methods("DELETE")
	api.HandleFunc("/topics/{topicID}", topicHandler.GetTopic).Methods("GET")

	// Scheduling and progress
	api.HandleFunc("/learners/{id}/progress", schedHandler.InitProgress).Methods("POST")
	api.HandleFunc("/learners/{id}/progress", schedHandler.GetSnapshot).Methods("GET")
	api.HandleFunc("/learners/{id}/progress", schedHandler.ClearProgress).Methods("DELETE")
	api.HandleFunc("/learners/{id}/progress/{topicID}", schedHandler.GetTopicStats).Methods("GET")
	api.HandleFunc("/learners/{id}/answers", schedHandler.RecordAnswer).Methods("POST")
	api.HandleFunc("/learners/{id}/next-topic", schedHandler.PickNextTopic).Methods("GET")
	api.HandleFunc("/learners/{id}/study-order", schedHandler.GetStudyOrder).Methods("GET")
	api.HandleFunc("/learners/{id}/priorities", schedHandler.GetPriorities).Methods("GET")
	api.HandleFunc("/learners/{id}/due", schedHandler.GetDueTopics).Methods("GET")
	api.HandleFunc("/learners/{id}/difficulty/{topicID}", schedHandler.GetDifficulty).Methods("GET")
	api.HandleFunc("/learners/{id}/velocity/{topicID}", schedHandler.GetVelocity).Methods("GET")
	api.HandleFunc("/learners/{id}/report", schedHandler.GetReport).Methods("GET")
	api.HandleFunc("/learners/{id}/forgetting-curve", schedHandler.GetForgettingCurve).Methods("GET")

	// Practice questions
	api.HandleFunc("/learners/{id}/next-question", questionHandler.NextQuestion).Methods("GET")
	api.HandleFunc("/learners/{id}/questions/{questionID}/answer", questionHandler.SubmitAnswer).Methods("POST")

	// Gamification
	api.HandleFunc("/learners/{id}/gamification", gamifyHandler.GetSummary).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server listening on port", port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(r)))
}
