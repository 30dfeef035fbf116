package metaads

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-sync-api/infrastructure/integrator"
	"github.com/vfg2006/ad-sync-api/infrastructure/repository"
	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/internal/normalize"
	"github.com/vfg2006/ad-sync-api/internal/syslog"
	"github.com/vfg2006/ad-sync-api/pkg/utils"
)

// Ação padrão considerada "conversão primária" quando a organização não
// configura outra
const defaultConversionAction = "offsite_conversion.fb_pixel_purchase"

type Adapter struct {
	cfg          *config.Config
	client       Client
	settingsRepo repository.OrganizationSettingsRepository
	audit        syslog.Logger
}

// NewAdapter valida as credenciais de aplicativo obrigatórias e monta o
// adaptador do Meta Ads
func NewAdapter(
	cfg *config.Config,
	client Client,
	settingsRepo repository.OrganizationSettingsRepository,
	audit syslog.Logger,
) (*Adapter, error) {
	if cfg.Meta.AppID == "" || cfg.Meta.AppSecret == "" {
		return nil, &domain.ConfigurationError{Provider: domain.ProviderMeta, Field: "meta_app_id/meta_app_secret"}
	}

	return &Adapter{
		cfg:          cfg,
		client:       client,
		settingsRepo: settingsRepo,
		audit:        audit,
	}, nil
}

func (a *Adapter) Provider() domain.Provider {
	return domain.ProviderMeta
}

func (a *Adapter) FetchMetrics(integration *domain.Integration, window domain.DateRange) ([]domain.MetricRow, error) {
	settings, err := a.settingsRepo.GetProviderSettings(integration.OrganizationID, domain.ProviderMeta)
	if err != nil {
		return nil, err
	}
	if settings == nil || settings.AccountID == "" {
		return nil, &domain.ConfigurationError{Provider: domain.ProviderMeta, Field: "account_id"}
	}

	conversionAction := settings.ConversionAction
	if conversionAction == "" {
		conversionAction = defaultConversionAction
	}

	a.audit.Log(integration.OrganizationID, domain.ComponentAdapter, domain.LogLevelInfo,
		"Buscando insights de campanhas do Meta",
		map[string]any{
			"account_id": settings.AccountID,
			"since":      window.Since.Format(time.DateOnly),
			"until":      window.Until.Format(time.DateOnly),
		},
	)

	raw, err := a.client.CampaignInsights(settings.AccountID, integration.AccessToken, window)
	if err != nil {
		a.audit.Log(integration.OrganizationID, domain.ComponentAdapter, domain.LogLevelError,
			"Falha ao buscar insights do Meta",
			map[string]any{"account_id": settings.AccountID, "error": err},
		)
		return nil, err
	}

	details := integrator.RowSample(raw)
	details["account_id"] = settings.AccountID
	a.audit.Log(integration.OrganizationID, domain.ComponentAdapter, domain.LogLevelInfo,
		"Insights do Meta recebidos", details)

	if len(raw) > 0 {
		logrus.WithField("account_id", settings.AccountID).
			Debugf("Amostra da primeira linha do Meta: %s", utils.PrettyJson(raw[0]))
	}

	rows := make([]domain.MetricRow, 0, len(raw))
	for _, r := range raw {
		row, err := normalize.FromMeta(r, conversionAction)
		if err != nil {
			return nil, &integrator.ProviderError{
				Provider: domain.ProviderMeta,
				Type:     "malformed_row",
				Message:  err.Error(),
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
