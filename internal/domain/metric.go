package domain

import "time"

// MetricRow é a forma canônica de uma linha diária de métricas produzida
// pelos adaptadores. Nenhum formato proprietário de provedor passa desta
// fronteira.
type MetricRow struct {
	CampaignID      string
	CampaignName    string
	Date            time.Time
	Spend           string // decimal com 2 casas, ex: "1.50"
	Impressions     int
	Clicks          int
	Conversions     int
	ConversionValue string
	Extras          map[string]float64
}

// CampaignMetric é a linha persistida de métricas por (integração, data,
// campanha). As linhas de uma janela são sempre substituídas em conjunto
// pelo orquestrador; nenhum outro escritor as altera.
type CampaignMetric struct {
	ID              string
	IntegrationID   string
	Date            time.Time
	CampaignID      string
	CampaignName    string
	Spend           string
	Impressions     int
	Clicks          int
	Conversions     int
	ConversionValue string
	Extras          map[string]float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DateRange representa uma janela fechada de datas em granularidade diária
type DateRange struct {
	Since time.Time
	Until time.Time
}

// NewLookbackRange cria a janela [hoje - lookbackDays, hoje], truncada para
// o início do dia. É sempre ancorada em "agora menos lookback" para que
// execuções repetidas sobre janelas sobrepostas sejam seguras.
func NewLookbackRange(now time.Time, lookbackDays int) DateRange {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return DateRange{
		Since: day.AddDate(0, 0, -lookbackDays),
		Until: day,
	}
}
