package handler

import (
	"net/http"

	"github.com/vfg2006/ad-sync-api/internal/api/handler/router"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Sync retorna as rotas de gatilho de sincronização, uma por provedor, todas
// protegidas pelo segredo compartilhado
func Sync(services SyncServices, triggerSecret string) []router.Route {
	auth := []func(http.Handler) http.Handler{middleware.SyncTriggerAuth(triggerSecret)}

	routes := []router.Route{
		{
			Path:        "/v1/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(services),
			Middlewares: auth,
		},
	}

	for _, provider := range domain.Providers() {
		routes = append(routes, router.Route{
			Path:        "/v1/sync/" + string(provider),
			Method:      http.MethodGet,
			Handler:     TriggerSync(services, provider),
			Middlewares: auth,
		})
	}

	return routes
}
