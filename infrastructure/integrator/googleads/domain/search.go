package googledomain

// SearchRow é uma linha do relatório GAQL via googleAds:searchStream,
// segmentada por dia no nível de campanha. Inteiros de 64 bits chegam como
// strings no JSON REST.
type SearchRow struct {
	Campaign Campaign `json:"campaign"`
	Metrics  Metrics  `json:"metrics"`
	Segments Segments `json:"segments"`
}

type Campaign struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Metrics struct {
	CostMicros       string  `json:"costMicros"`
	Impressions      string  `json:"impressions"`
	Clicks           string  `json:"clicks"`
	Conversions      float64 `json:"conversions"`
	ConversionsValue float64 `json:"conversionsValue"`
	VideoViews       string  `json:"videoViews"`
}

type Segments struct {
	Date string `json:"date"`
}

// StreamChunk é um bloco da resposta do searchStream
type StreamChunk struct {
	Results []SearchRow `json:"results"`
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
