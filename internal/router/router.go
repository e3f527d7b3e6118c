package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/taskline/backend/api/handler"
)

type Handlers struct {
	Health *apiHandler.HealthHandler
}

// New wires the ops HTTP surface. The bot itself talks over Telegram long
// polling; this endpoint only serves deployment probes.
func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	return r
}
