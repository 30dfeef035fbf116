// Package normalize converte unidades nativas dos provedores (micros,
// decimais em string) para os campos canônicos do pipeline. Todas as funções
// são puras e idempotentes: a mesma entrada bruta produz sempre a mesma
// saída, o que torna re-execuções de sincronização seguras.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	ga4domain "github.com/vfg2006/ad-sync-api/infrastructure/integrator/ga4/domain"
	googledomain "github.com/vfg2006/ad-sync-api/infrastructure/integrator/googleads/domain"
	metadomain "github.com/vfg2006/ad-sync-api/infrastructure/integrator/metaads/domain"
	"github.com/vfg2006/ad-sync-api/internal/domain"
)

var micros = decimal.NewFromInt(1_000_000)

// MicrosToCurrency converte um valor monetário em micros para uma string
// decimal com exatamente 2 casas (1_500_000 -> "1.50"). Valores negativos
// são saturados em "0.00"; gasto nunca é negativo.
func MicrosToCurrency(v int64) string {
	d := decimal.NewFromInt(v).DivRound(micros, 6)
	if d.IsNegative() {
		return "0.00"
	}
	return d.StringFixed(2)
}

// CurrencyString reescreve um decimal em string arbitrário do provedor com
// exatamente 2 casas. Entradas ilegíveis ou negativas viram "0.00".
func CurrencyString(s string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return "0.00"
	}
	return d.StringFixed(2)
}

// CurrencyFloat converte um float monetário do provedor para 2 casas
func CurrencyFloat(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsNegative() {
		return "0.00"
	}
	return d.StringFixed(2)
}

// AddCurrency soma duas strings monetárias já normalizadas
func AddCurrency(a, b string) string {
	da, err := decimal.NewFromString(a)
	if err != nil {
		da = decimal.Zero
	}
	db, err := decimal.NewFromString(b)
	if err != nil {
		db = decimal.Zero
	}
	return da.Add(db).StringFixed(2)
}

// ParseInt interpreta inteiros codificados como string pelo provedor
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Alguns provedores devolvem contagens como decimais ("12.0")
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f + 0.5)
	}
	return 0
}

// ParseFloat interpreta floats codificados como string pelo provedor
func ParseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// FromMeta traduz uma linha bruta de insights da Graph API para a forma
// canônica. A conversão primária é extraída do array heterogêneo de ações
// pelo tipo configurado; ausência da ação significa zero conversões.
func FromMeta(row metadomain.InsightRow, conversionAction string) (domain.MetricRow, error) {
	date, err := time.Parse(time.DateOnly, row.DateStart)
	if err != nil {
		return domain.MetricRow{}, err
	}

	conversions := 0
	conversionValue := "0.00"
	if v, ok := metadomain.ActionValue(row.Actions, conversionAction); ok {
		conversions = ParseInt(v)
	}
	if v, ok := metadomain.ActionValue(row.ActionValues, conversionAction); ok {
		conversionValue = CurrencyString(v)
	}

	extras := map[string]float64{
		"ctr": ParseFloat(row.CTR),
		"cpc": ParseFloat(row.CPC),
	}
	for _, vp := range row.VideoPlays {
		extras["video_plays"] += ParseFloat(vp.Value)
	}

	return domain.MetricRow{
		CampaignID:      row.CampaignID,
		CampaignName:    row.CampaignName,
		Date:            date,
		Spend:           CurrencyString(row.Spend),
		Impressions:     ParseInt(row.Impressions),
		Clicks:          ParseInt(row.Clicks),
		Conversions:     conversions,
		ConversionValue: conversionValue,
		Extras:          extras,
	}, nil
}

// FromGoogleAds traduz uma linha do searchStream. Custos chegam em micros.
func FromGoogleAds(row googledomain.SearchRow) (domain.MetricRow, error) {
	date, err := time.Parse(time.DateOnly, row.Segments.Date)
	if err != nil {
		return domain.MetricRow{}, err
	}

	costMicros, err := strconv.ParseInt(strings.TrimSpace(row.Metrics.CostMicros), 10, 64)
	if err != nil && row.Metrics.CostMicros != "" {
		return domain.MetricRow{}, err
	}

	return domain.MetricRow{
		CampaignID:      row.Campaign.ID,
		CampaignName:    row.Campaign.Name,
		Date:            date,
		Spend:           MicrosToCurrency(costMicros),
		Impressions:     ParseInt(row.Metrics.Impressions),
		Clicks:          ParseInt(row.Metrics.Clicks),
		Conversions:     int(row.Metrics.Conversions + 0.5),
		ConversionValue: CurrencyFloat(row.Metrics.ConversionsValue),
		Extras: map[string]float64{
			"video_views": float64(ParseInt(row.Metrics.VideoViews)),
		},
	}, nil
}

// FromGA4 traduz uma linha posicional do runReport. O GA4 usa datas no
// formato compacto e métricas monetárias como decimais em string.
func FromGA4(row ga4domain.RawRow) (domain.MetricRow, error) {
	date, err := time.Parse("20060102", row.Date)
	if err != nil {
		return domain.MetricRow{}, err
	}

	return domain.MetricRow{
		CampaignID:      row.CampaignID,
		CampaignName:    row.CampaignName,
		Date:            date,
		Spend:           CurrencyString(row.AdCost),
		Impressions:     ParseInt(row.Impressions),
		Clicks:          ParseInt(row.Clicks),
		Conversions:     ParseInt(row.KeyEvents),
		ConversionValue: "0.00",
		Extras:          map[string]float64{},
	}, nil
}
