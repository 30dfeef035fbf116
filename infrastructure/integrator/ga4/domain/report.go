package ga4domain

// ReportResponse é a resposta do runReport da Data API do GA4
type ReportResponse struct {
	DimensionHeaders []Header    `json:"dimensionHeaders"`
	MetricHeaders    []Header    `json:"metricHeaders"`
	Rows             []ReportRow `json:"rows"`
	RowCount         int         `json:"rowCount"`
}

type Header struct {
	Name string `json:"name"`
}

type ReportRow struct {
	DimensionValues []Value `json:"dimensionValues"`
	MetricValues    []Value `json:"metricValues"`
}

type Value struct {
	Value string `json:"value"`
}

// RawRow é a linha posicional do relatório já resolvida pelos headers.
// Date vem no formato compacto do GA4 ("20240115"); métricas continuam
// como strings decimais.
type RawRow struct {
	Date         string
	CampaignID   string
	CampaignName string
	AdContent    string
	AdCost       string
	Impressions  string
	Clicks       string
	KeyEvents    string
}

// ErrorResponse é o envelope de erro padrão das APIs Google
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
