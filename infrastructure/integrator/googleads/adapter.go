package googleads

import (
	"time"

	"github.com/vfg2006/ad-sync-api/infrastructure/integrator"
	"github.com/vfg2006/ad-sync-api/infrastructure/repository"
	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/internal/normalize"
	"github.com/vfg2006/ad-sync-api/internal/syslog"
)

type Adapter struct {
	cfg          *config.Config
	client       Client
	settingsRepo repository.OrganizationSettingsRepository
	audit        syslog.Logger
}

// NewAdapter valida o developer token obrigatório e monta o adaptador do
// Google Ads
func NewAdapter(
	cfg *config.Config,
	client Client,
	settingsRepo repository.OrganizationSettingsRepository,
	audit syslog.Logger,
) (*Adapter, error) {
	if cfg.GoogleAds.DeveloperToken == "" {
		return nil, &domain.ConfigurationError{Provider: domain.ProviderGoogleAds, Field: "google_ads_developer_token"}
	}
	if cfg.GoogleOAuth.ClientID == "" || cfg.GoogleOAuth.ClientSecret == "" {
		return nil, &domain.ConfigurationError{Provider: domain.ProviderGoogleAds, Field: "google_oauth_client_id/google_oauth_client_secret"}
	}

	return &Adapter{
		cfg:          cfg,
		client:       client,
		settingsRepo: settingsRepo,
		audit:        audit,
	}, nil
}

func (a *Adapter) Provider() domain.Provider {
	return domain.ProviderGoogleAds
}

func (a *Adapter) FetchMetrics(integration *domain.Integration, window domain.DateRange) ([]domain.MetricRow, error) {
	settings, err := a.settingsRepo.GetProviderSettings(integration.OrganizationID, domain.ProviderGoogleAds)
	if err != nil {
		return nil, err
	}
	if settings == nil || settings.AccountID == "" {
		return nil, &domain.ConfigurationError{Provider: domain.ProviderGoogleAds, Field: "account_id"}
	}

	a.audit.Log(integration.OrganizationID, domain.ComponentAdapter, domain.LogLevelInfo,
		"Buscando métricas de campanhas do Google Ads",
		map[string]any{
			"customer_id": settings.AccountID,
			"since":       window.Since.Format(time.DateOnly),
			"until":       window.Until.Format(time.DateOnly),
		},
	)

	raw, err := a.client.SearchCampaignMetrics(settings.AccountID, integration.AccessToken, window)
	if err != nil {
		a.audit.Log(integration.OrganizationID, domain.ComponentAdapter, domain.LogLevelError,
			"Falha ao buscar métricas do Google Ads",
			map[string]any{"customer_id": settings.AccountID, "error": err},
		)
		return nil, err
	}

	details := integrator.RowSample(raw)
	details["customer_id"] = settings.AccountID
	a.audit.Log(integration.OrganizationID, domain.ComponentAdapter, domain.LogLevelInfo,
		"Métricas do Google Ads recebidas", details)

	rows := make([]domain.MetricRow, 0, len(raw))
	for _, r := range raw {
		row, err := normalize.FromGoogleAds(r)
		if err != nil {
			return nil, &integrator.ProviderError{
				Provider: domain.ProviderGoogleAds,
				Type:     "malformed_row",
				Message:  err.Error(),
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
