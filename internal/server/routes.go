package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/sivajik34/aifastcommerce/internal/api/v1"
	"github.com/sivajik34/aifastcommerce/internal/api/ws"
	"github.com/sivajik34/aifastcommerce/internal/auth"
)

func registerAuthRoutes(api huma.API, authSvc *auth.Service) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAPIRoutes(api huma.API, controller v1.AssistantController) {
	v1.RegisterAssistantRoutes(api, controller)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/chat/{sessionID}", hub.ServeChat)
}
