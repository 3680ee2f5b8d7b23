package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"socialfeed/internal/config"
	"socialfeed/internal/service"
)

type Handlers struct {
	Services *service.Service
	Cfg      *config.Config
	Validate *validator.Validate
}

func NewHandlers(services *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		Services: services,
		Cfg:      cfg,
		Validate: validator.New(),
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
