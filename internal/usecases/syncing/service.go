package syncing

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-sync-api/infrastructure/integrator"
	"github.com/vfg2006/ad-sync-api/infrastructure/repository"
	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/internal/syslog"
	"github.com/vfg2006/ad-sync-api/internal/usecases/tokening"
)

// Service orquestra a sincronização de métricas por provedor: renova o
// token, busca as linhas normalizadas no adaptador e substitui a janela no
// banco, uma integração por vez.
type Service struct {
	cfg        *config.Config
	adapters   map[domain.Provider]integrator.Adapter
	tokens     tokening.TokenSource
	integrRepo repository.IntegrationRepository
	metricRepo repository.CampaignMetricRepository
	audit      syslog.Logger
	now        func() time.Time
	sleep      func(time.Duration)
}

func NewService(
	cfg *config.Config,
	tokens tokening.TokenSource,
	integrRepo repository.IntegrationRepository,
	metricRepo repository.CampaignMetricRepository,
	audit syslog.Logger,
	adapters ...integrator.Adapter,
) Syncer {
	byProvider := make(map[domain.Provider]integrator.Adapter, len(adapters))
	for _, a := range adapters {
		byProvider[a.Provider()] = a
	}

	return &Service{
		cfg:        cfg,
		adapters:   byProvider,
		tokens:     tokens,
		integrRepo: integrRepo,
		metricRepo: metricRepo,
		audit:      audit,
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

func (s *Service) SyncProvider(provider domain.Provider, lookbackDays int) ([]domain.SyncResult, error) {
	adapter, ok := s.adapters[provider]
	if !ok {
		return nil, fmt.Errorf("nenhum adaptador registrado para o provedor %s", provider)
	}

	if lookbackDays <= 0 {
		lookbackDays = s.defaultLookbackDays(provider)
	}
	window := domain.NewLookbackRange(s.now(), lookbackDays)

	integrations, err := s.integrRepo.ListByProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar integrações do provedor %s: %w", provider, err)
	}

	logrus.WithFields(logrus.Fields{
		"provider":      provider,
		"integrations":  len(integrations),
		"lookback_days": lookbackDays,
	}).Info("Iniciando sincronização do provedor")

	results := make([]domain.SyncResult, 0, len(integrations))
	for i, integration := range integrations {
		if i > 0 {
			// Pausa entre integrações para não estourar rate limit do provedor
			s.sleep(s.cfg.RequestDelay())
		}

		results = append(results, s.syncIntegration(adapter, integration, window))
	}

	logrus.WithFields(logrus.Fields{
		"provider": provider,
		"results":  summarize(results),
	}).Info("Sincronização do provedor concluída")

	return results, nil
}

// syncIntegration processa uma única integração. Qualquer falha (inclusive
// pânico) é contida aqui: uma integração quebrada nunca derruba as demais.
func (s *Service) syncIntegration(
	adapter integrator.Adapter,
	integration *domain.Integration,
	window domain.DateRange,
) (result domain.SyncResult) {
	result = domain.SyncResult{OrganizationID: integration.OrganizationID}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("pânico ao sincronizar a integração %s: %v", integration.ID, r)
			logrus.WithError(err).Error("Pânico contido na sincronização")
			s.audit.Log(integration.OrganizationID, domain.ComponentSync, domain.LogLevelError,
				"Pânico contido durante a sincronização",
				map[string]any{"integration_id": integration.ID, "error": err},
			)
			result.Status = domain.SyncStatusError
			result.Error = err.Error()
		}
	}()

	s.audit.Log(integration.OrganizationID, domain.ComponentSync, domain.LogLevelInfo,
		"Iniciando sincronização da integração",
		map[string]any{
			"integration_id": integration.ID,
			"provider":       integration.Provider,
			"since":          window.Since.Format(time.DateOnly),
			"until":          window.Until.Format(time.DateOnly),
		},
	)

	accessToken, err := s.tokens.GetValidAccessToken(integration)
	if err != nil {
		return s.failure(integration, "Falha ao obter token válido", err)
	}
	integration.AccessToken = accessToken

	rows, err := adapter.FetchMetrics(integration, window)
	if err != nil {
		return s.failure(integration, "Falha ao buscar métricas no provedor", err)
	}

	// Provedor sem linhas na janela: não tocar no armazenamento, senão uma
	// resposta vazia apagaria dados históricos válidos
	if len(rows) == 0 {
		s.audit.Log(integration.OrganizationID, domain.ComponentSync, domain.LogLevelWarn,
			"Provedor não devolveu linhas na janela, armazenamento intacto",
			map[string]any{"integration_id": integration.ID},
		)
		result.Status = domain.SyncStatusSkipped
		result.Reason = domain.SkipReasonNoData
		return result
	}

	metrics := buildCampaignMetrics(integration.ID, rows)
	if err := s.metricRepo.ReplaceWindow(integration.ID, window.Since, metrics); err != nil {
		return s.failure(integration, "Falha ao substituir a janela de métricas", err)
	}

	s.audit.Log(integration.OrganizationID, domain.ComponentSync, domain.LogLevelInfo,
		"Sincronização da integração concluída",
		map[string]any{"integration_id": integration.ID, "rows": len(metrics)},
	)

	result.Status = domain.SyncStatusSuccess
	result.Count = len(metrics)
	return result
}

func (s *Service) failure(integration *domain.Integration, message string, err error) domain.SyncResult {
	logrus.WithError(err).WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"provider":       integration.Provider,
	}).Error(message)

	s.audit.Log(integration.OrganizationID, domain.ComponentSync, domain.LogLevelError,
		message,
		map[string]any{"integration_id": integration.ID, "error": err},
	)

	return domain.SyncResult{
		OrganizationID: integration.OrganizationID,
		Status:         domain.SyncStatusError,
		Error:          err.Error(),
	}
}

func (s *Service) defaultLookbackDays(provider domain.Provider) int {
	switch provider {
	case domain.ProviderMeta:
		return s.cfg.MetaSync.LookbackDays
	case domain.ProviderGoogleAds:
		return s.cfg.GoogleAdsSync.LookbackDays
	case domain.ProviderGA4:
		return s.cfg.GA4Sync.LookbackDays
	}
	return 30
}

// buildCampaignMetrics converte as linhas canônicas do adaptador nas linhas
// persistidas da integração
func buildCampaignMetrics(integrationID string, rows []domain.MetricRow) []*domain.CampaignMetric {
	metrics := make([]*domain.CampaignMetric, 0, len(rows))
	for _, row := range rows {
		metrics = append(metrics, &domain.CampaignMetric{
			IntegrationID:   integrationID,
			Date:            row.Date,
			CampaignID:      row.CampaignID,
			CampaignName:    row.CampaignName,
			Spend:           row.Spend,
			Impressions:     row.Impressions,
			Clicks:          row.Clicks,
			Conversions:     row.Conversions,
			ConversionValue: row.ConversionValue,
			Extras:          row.Extras,
		})
	}
	return metrics
}

func summarize(results []domain.SyncResult) map[string]int {
	counts := make(map[string]int, 3)
	for _, r := range results {
		counts[string(r.Status)]++
	}
	return counts
}
