package ga4

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-sync-api/infrastructure/integrator"
	ga4domain "github.com/vfg2006/ad-sync-api/infrastructure/integrator/ga4/domain"
	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
)

// Dimensões e métricas pedidas ao runReport, na ordem em que são resolvidas
var (
	reportDimensions = []string{"date", "sessionCampaignId", "sessionCampaignName", "sessionManualAdContent"}
	reportMetrics    = []string{"advertiserAdCost", "advertiserAdImpressions", "advertiserAdClicks", "keyEvents"}
)

type Client interface {
	RunDailyReport(propertyID, accessToken string, window domain.DateRange) ([]ga4domain.RawRow, error)
}

type dataClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &dataClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// RunDailyReport executa o runReport da Data API e resolve as linhas
// posicionais pelos headers devolvidos
func (c *dataClient) RunDailyReport(propertyID, accessToken string, window domain.DateRange) ([]ga4domain.RawRow, error) {
	request := map[string]any{
		"dateRanges": []map[string]string{{
			"startDate": window.Since.Format(time.DateOnly),
			"endDate":   window.Until.Format(time.DateOnly),
		}},
		"dimensions": nameList(reportDimensions),
		"metrics":    nameList(reportMetrics),
		"limit":      "100000",
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar o runReport: %w", err)
	}

	endpoint := fmt.Sprintf("%s/properties/%s:runReport", c.cfg.GA4.URL, propertyID)

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição para a Data API do GA4")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do GA4: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.providerError(resp.StatusCode, body)
	}

	var report ga4domain.ReportResponse
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, &integrator.ProviderError{
			Provider:   domain.ProviderGA4,
			StatusCode: resp.StatusCode,
			Type:       "malformed_response",
			Message:    err.Error(),
		}
	}

	return resolveRows(&report), nil
}

func (c *dataClient) providerError(statusCode int, body []byte) error {
	var errorResp ga4domain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
		return &integrator.ProviderError{
			Provider:   domain.ProviderGA4,
			StatusCode: statusCode,
			Type:       errorResp.Error.Status,
			Message:    errorResp.Error.Message,
		}
	}

	return &integrator.ProviderError{
		Provider:   domain.ProviderGA4,
		StatusCode: statusCode,
		Type:       "http_error",
		Message:    string(body),
	}
}

func nameList(names []string) []map[string]string {
	out := make([]map[string]string, 0, len(names))
	for _, n := range names {
		out = append(out, map[string]string{"name": n})
	}
	return out
}

// resolveRows converte as linhas posicionais do relatório usando os headers
// como índice; o GA4 não garante a ordem pedida
func resolveRows(report *ga4domain.ReportResponse) []ga4domain.RawRow {
	dimIndex := make(map[string]int, len(report.DimensionHeaders))
	for i, h := range report.DimensionHeaders {
		dimIndex[h.Name] = i
	}
	metIndex := make(map[string]int, len(report.MetricHeaders))
	for i, h := range report.MetricHeaders {
		metIndex[h.Name] = i
	}

	dimValue := func(row ga4domain.ReportRow, name string) string {
		if i, ok := dimIndex[name]; ok && i < len(row.DimensionValues) {
			return row.DimensionValues[i].Value
		}
		return ""
	}
	metValue := func(row ga4domain.ReportRow, name string) string {
		if i, ok := metIndex[name]; ok && i < len(row.MetricValues) {
			return row.MetricValues[i].Value
		}
		return ""
	}

	rows := make([]ga4domain.RawRow, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, ga4domain.RawRow{
			Date:         dimValue(r, "date"),
			CampaignID:   dimValue(r, "sessionCampaignId"),
			CampaignName: dimValue(r, "sessionCampaignName"),
			AdContent:    dimValue(r, "sessionManualAdContent"),
			AdCost:       metValue(r, "advertiserAdCost"),
			Impressions:  metValue(r, "advertiserAdImpressions"),
			Clicks:       metValue(r, "advertiserAdClicks"),
			KeyEvents:    metValue(r, "keyEvents"),
		})
	}

	return rows
}
