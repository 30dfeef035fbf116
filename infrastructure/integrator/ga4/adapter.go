package ga4

import (
	"sort"
	"time"

	"github.com/vfg2006/ad-sync-api/infrastructure/integrator"
	ga4domain "github.com/vfg2006/ad-sync-api/infrastructure/integrator/ga4/domain"
	"github.com/vfg2006/ad-sync-api/infrastructure/repository"
	"github.com/vfg2006/ad-sync-api/internal/classify"
	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/internal/normalize"
	"github.com/vfg2006/ad-sync-api/internal/syslog"
	"github.com/vfg2006/ad-sync-api/pkg/utils"
)

type Adapter struct {
	cfg          *config.Config
	client       Client
	settingsRepo repository.OrganizationSettingsRepository
	audit        syslog.Logger
	classifier   classify.Classifier
}

// NewAdapter monta o adaptador do GA4. O classificador de temperatura vem
// das listas de palavras-chave configuradas.
func NewAdapter(
	cfg *config.Config,
	client Client,
	settingsRepo repository.OrganizationSettingsRepository,
	audit syslog.Logger,
) (*Adapter, error) {
	if cfg.GoogleOAuth.ClientID == "" || cfg.GoogleOAuth.ClientSecret == "" {
		return nil, &domain.ConfigurationError{Provider: domain.ProviderGA4, Field: "google_oauth_client_id/google_oauth_client_secret"}
	}

	return &Adapter{
		cfg:          cfg,
		client:       client,
		settingsRepo: settingsRepo,
		audit:        audit,
		classifier:   classify.NewKeywordClassifier(cfg.Classifier.P1Keywords, cfg.Classifier.P2Keywords),
	}, nil
}

func (a *Adapter) Provider() domain.Provider {
	return domain.ProviderGA4
}

func (a *Adapter) FetchMetrics(integration *domain.Integration, window domain.DateRange) ([]domain.MetricRow, error) {
	settings, err := a.settingsRepo.GetProviderSettings(integration.OrganizationID, domain.ProviderGA4)
	if err != nil {
		return nil, err
	}
	if settings == nil || settings.AccountID == "" {
		return nil, &domain.ConfigurationError{Provider: domain.ProviderGA4, Field: "account_id"}
	}

	a.audit.Log(integration.OrganizationID, domain.ComponentAdapter, domain.LogLevelInfo,
		"Buscando relatório diário do GA4",
		map[string]any{
			"property_id": settings.AccountID,
			"since":       window.Since.Format(time.DateOnly),
			"until":       window.Until.Format(time.DateOnly),
		},
	)

	raw, err := a.client.RunDailyReport(settings.AccountID, integration.AccessToken, window)
	if err != nil {
		a.audit.Log(integration.OrganizationID, domain.ComponentAdapter, domain.LogLevelError,
			"Falha ao buscar relatório do GA4",
			map[string]any{"property_id": settings.AccountID, "error": err},
		)
		return nil, err
	}

	details := integrator.RowSample(raw)
	details["property_id"] = settings.AccountID
	a.audit.Log(integration.OrganizationID, domain.ComponentAdapter, domain.LogLevelInfo,
		"Relatório do GA4 recebido", details)

	return a.reduceRows(raw)
}

// reduceRows agrega as linhas brutas (uma por combinação de dia, campanha e
// conteúdo de UTM) em uma linha canônica por (dia, campanha). O redutor é
// local à chamada; nenhum estado compartilhado sobrevive à requisição.
func (a *Adapter) reduceRows(raw []ga4domain.RawRow) ([]domain.MetricRow, error) {
	type group struct {
		row      domain.MetricRow
		contents []string
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, r := range raw {
		normalized, err := normalize.FromGA4(r)
		if err != nil {
			return nil, &integrator.ProviderError{
				Provider: domain.ProviderGA4,
				Type:     "malformed_row",
				Message:  err.Error(),
			}
		}

		key := r.Date + "|" + r.CampaignID
		g, ok := groups[key]
		if !ok {
			normalized.Extras = map[string]float64{}
			g = &group{row: normalized}
			groups[key] = g
			order = append(order, key)
			g.contents = append(g.contents, r.AdContent)
			a.countTemperature(g.row.Extras, r.AdContent)
			continue
		}

		g.row.Spend = normalize.AddCurrency(g.row.Spend, normalized.Spend)
		g.row.Impressions += normalized.Impressions
		g.row.Clicks += normalized.Clicks
		g.row.Conversions += normalized.Conversions
		g.contents = append(g.contents, r.AdContent)
		a.countTemperature(g.row.Extras, r.AdContent)
	}

	sort.Strings(order)

	rows := make([]domain.MetricRow, 0, len(groups))
	for _, key := range order {
		g := groups[key]
		g.row.Extras["tracking_rate"] = utils.RoundWithTwoDecimalPlace(
			classify.TrackingRate(g.contents, a.classifier),
		)
		rows = append(rows, g.row)
	}

	return rows, nil
}

func (a *Adapter) countTemperature(extras map[string]float64, adContent string) {
	switch a.classifier(adContent) {
	case classify.TemperatureP1:
		extras["rows_p1"]++
	case classify.TemperatureP2:
		extras["rows_p2"]++
	}
}
