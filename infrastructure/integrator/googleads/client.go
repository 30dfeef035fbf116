package googleads

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-sync-api/infrastructure/integrator"
	googledomain "github.com/vfg2006/ad-sync-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
)

type Client interface {
	SearchCampaignMetrics(customerID, accessToken string, window domain.DateRange) ([]googledomain.SearchRow, error)
}

type adsClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &adsClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SearchCampaignMetrics executa a consulta GAQL diária de campanhas via
// googleAds:searchStream
func (c *adsClient) SearchCampaignMetrics(customerID, accessToken string, window domain.DateRange) ([]googledomain.SearchRow, error) {
	query := fmt.Sprintf(
		`SELECT campaign.id, campaign.name, segments.date, metrics.cost_micros, metrics.impressions, metrics.clicks, metrics.conversions, metrics.conversions_value, metrics.video_views `+
			`FROM campaign WHERE segments.date BETWEEN '%s' AND '%s' ORDER BY segments.date`,
		window.Since.Format(time.DateOnly),
		window.Until.Format(time.DateOnly),
	)

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar a consulta GAQL: %w", err)
	}

	endpoint := fmt.Sprintf("%s/customers/%s/googleAds:searchStream", c.cfg.GoogleAds.URL, customerID)

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("developer-token", c.cfg.GoogleAds.DeveloperToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição para a API do Google Ads")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do Google Ads: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.providerError(resp.StatusCode, body)
	}

	// O searchStream devolve um array de blocos, cada um com seu results
	var chunks []googledomain.StreamChunk
	if err := json.Unmarshal(body, &chunks); err != nil {
		return nil, &integrator.ProviderError{
			Provider:   domain.ProviderGoogleAds,
			StatusCode: resp.StatusCode,
			Type:       "malformed_response",
			Message:    err.Error(),
		}
	}

	rows := make([]googledomain.SearchRow, 0)
	for _, chunk := range chunks {
		rows = append(rows, chunk.Results...)
	}

	return rows, nil
}

func (c *adsClient) providerError(statusCode int, body []byte) error {
	var errorResp googledomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
		return &integrator.ProviderError{
			Provider:   domain.ProviderGoogleAds,
			StatusCode: statusCode,
			Type:       errorResp.Error.Status,
			Message:    errorResp.Error.Message,
		}
	}

	return &integrator.ProviderError{
		Provider:   domain.ProviderGoogleAds,
		StatusCode: statusCode,
		Type:       "http_error",
		Message:    string(body),
	}
}
