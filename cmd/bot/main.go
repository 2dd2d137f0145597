package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/postpilot/calendar-bot/internal/config"
	"github.com/postpilot/calendar-bot/internal/export"
	"github.com/postpilot/calendar-bot/internal/generator"
	"github.com/postpilot/calendar-bot/internal/models"
	"github.com/postpilot/calendar-bot/internal/notifications"
	"github.com/postpilot/calendar-bot/internal/scheduler"
	"github.com/postpilot/calendar-bot/internal/storage"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting content calendar bot")

	// Resolve the authoritative timezone for date windows
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		logrus.Fatalf("Invalid TIMEZONE %q: %v", cfg.TimeZone, err)
	}

	// Initialize Azure storage
	store, err := storage.NewAzureStorage(cfg.StorageAccount, cfg.StorageContainer)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize notification service
	notificationService := notifications.NewService(cfg)

	// Initialize generation service
	generatorService := generator.NewService(cfg, location)

	// Initialize retention scheduler
	schedulerService := scheduler.NewService(cfg, store)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Set up HTTP server
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	router.HandleFunc("/metrics", metricsHandler(generatorService)).Methods("GET")
	router.HandleFunc("/api/generate", generateHandler(generatorService, store, notificationService)).Methods("POST")
	router.HandleFunc("/api/calendars", listCalendarsHandler(store)).Methods("GET")
	router.HandleFunc("/api/calendars/{id}", getCalendarHandler(store)).Methods("GET")
	router.HandleFunc("/api/calendars/{id}", deleteCalendarHandler(store)).Methods("DELETE")
	router.HandleFunc("/api/calendars/{id}/export", exportCalendarHandler(store)).Methods("GET")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // generation waits on the model fallback chain
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func metricsHandler(generatorService *generator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(generatorService.GetMetrics()))
	}
}

func generateHandler(generatorService *generator.Service, store storage.CalendarStore, notificationService notifications.NotificationInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.GenerationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.InputText == "" {
			writeError(w, http.StatusBadRequest, "Input text is required")
			return
		}

		calendar, err := generatorService.Generate(r.Context(), req)
		if err != nil {
			logrus.Errorf("Calendar generation failed: %v", err)
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}

		saved, err := store.Save(calendar)
		if err != nil {
			logrus.Errorf("Failed to save calendar: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to save calendar")
			return
		}

		// Notify out of band; the caller already has the calendar.
		go func(cal models.Calendar) {
			if err := notificationService.SendCalendarReady(&cal, export.Render(&cal)); err != nil {
				logrus.Errorf("Failed to send calendar notification: %v", err)
			}
		}(*saved)

		writeJSON(w, http.StatusOK, map[string]interface{}{"calendar": saved})
	}
}

func listCalendarsHandler(store storage.CalendarStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calendars, err := store.List()
		if err != nil {
			logrus.Errorf("Failed to list calendars: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to list calendars")
			return
		}
		if calendars == nil {
			calendars = []models.Calendar{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"calendars": calendars})
	}
}

func getCalendarHandler(store storage.CalendarStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calendar, err := store.Get(mux.Vars(r)["id"])
		if err != nil {
			writeError(w, http.StatusNotFound, "Calendar not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"calendar": calendar})
	}
}

func deleteCalendarHandler(store storage.CalendarStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(mux.Vars(r)["id"]); err != nil {
			writeError(w, http.StatusNotFound, "Calendar not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func exportCalendarHandler(store storage.CalendarStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		calendar, err := store.Get(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "Calendar not found")
			return
		}

		w.Header().Set("Content-Type", "text/calendar;charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="social-calendar-%s.ics"`, id))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(export.Render(calendar)))
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
