package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"socialfeed/cmd/app"
	"socialfeed/internal/config"
	handlers "socialfeed/internal/handler"
	"socialfeed/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)

	router.HandleFunc("/api/posts", handler.GetFeed).Methods(http.MethodGet)
	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/polls", handler.CreatePoll).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/promotions", handler.CreatePromotion).Methods(http.MethodPost)

	router.HandleFunc("/api/posts/{postId}/like", handler.ToggleLike).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{postId}/share", handler.ToggleShare).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{postId}/comments", handler.AddComment).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{postId}/vote", handler.Vote).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.Logging,
		middleware.CORS,
		middleware.Auth(cfg),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.WithField("addr", addr).Info("starting server")

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
