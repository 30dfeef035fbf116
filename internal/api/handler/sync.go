package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/internal/scheduler"
	"github.com/vfg2006/ad-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/ad-sync-api/pkg/apiErrors"
)

// SyncServices contém o orquestrador e os agendadores expostos pelos
// endpoints de gatilho
type SyncServices struct {
	Syncer     syncing.Syncer
	Schedulers map[domain.Provider]*scheduler.ProviderSyncService
}

// SyncResponse é o corpo devolvido pelo gatilho de sincronização. O lote que
// rodou até o fim responde 200 mesmo quando integrações individuais falharam;
// cada falha aparece no seu próprio resultado.
type SyncResponse struct {
	Success   bool                `json:"success"`
	Results   []domain.SyncResult `json:"results,omitempty"`
	Error     string              `json:"error,omitempty"`
	Timestamp string              `json:"timestamp"`
}

// TriggerSync dispara sincronamente a sincronização de todas as integrações
// ativas do provedor. Cada provedor tem sua própria rota; o handler recebe o
// provedor já resolvido.
func TriggerSync(services SyncServices, provider domain.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !provider.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrUnknownProvider,
				"Provedor desconhecido. Valores aceitos: meta, google_ads, ga4", nil)
			return
		}

		lookbackDays := 0
		if raw := r.URL.Query().Get("lookback_days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
					"lookback_days deve ser um inteiro positivo", nil)
				return
			}
			lookbackDays = parsed
		}

		logrus.WithFields(logrus.Fields{
			"provider":      provider,
			"lookback_days": lookbackDays,
		}).Info("Sincronização acionada via HTTP")

		results, err := services.Syncer.SyncProvider(provider, lookbackDays)
		if err != nil {
			logrus.WithError(err).WithField("provider", provider).Error("Falha ao executar o lote de sincronização")
			writeSyncResponse(w, http.StatusInternalServerError, SyncResponse{
				Success:   false,
				Error:     err.Error(),
				Timestamp: time.Now().Format(time.RFC3339),
			})
			return
		}

		writeSyncResponse(w, http.StatusOK, SyncResponse{
			Success:   true,
			Results:   results,
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
}

// GetSyncStatus retorna o status dos agendadores de todos os provedores
func GetSyncStatus(services SyncServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services.Schedulers))
		for provider, svc := range services.Schedulers {
			status[string(provider)] = svc.GetStatus()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"success":   true,
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
		}); err != nil {
			logrus.WithError(err).Error("Erro ao serializar status dos agendadores")
		}
	}
}

func writeSyncResponse(w http.ResponseWriter, statusCode int, response SyncResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logrus.WithError(err).Error("Erro ao serializar resposta do gatilho de sincronização")
	}
}
