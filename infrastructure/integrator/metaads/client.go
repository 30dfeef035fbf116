package metaads

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-sync-api/infrastructure/integrator"
	metadomain "github.com/vfg2006/ad-sync-api/infrastructure/integrator/metaads/domain"
	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
)

type Client interface {
	CampaignInsights(accountID, accessToken string, window domain.DateRange) ([]metadomain.InsightRow, error)
}

type graphClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &graphClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CampaignInsights busca os insights diários no nível de campanha via Graph
// API, seguindo a paginação até o fim
func (c *graphClient) CampaignInsights(accountID, accessToken string, window domain.DateRange) ([]metadomain.InsightRow, error) {
	params := url.Values{}
	params.Add("level", "campaign")
	params.Add("time_increment", "1") // uma linha por dia
	params.Add("fields", "campaign_id,campaign_name,spend,impressions,clicks,ctr,cpc,actions,action_values,video_play_actions")
	params.Add("limit", "500")
	params.Add("time_range", fmt.Sprintf(
		`{"since":"%s","until":"%s"}`,
		window.Since.Format(time.DateOnly),
		window.Until.Format(time.DateOnly),
	))
	params.Add("access_token", accessToken)

	endpoint := fmt.Sprintf("%s/act_%s/insights?%s", c.cfg.Meta.URL, accountID, params.Encode())

	rows := make([]metadomain.InsightRow, 0)
	for endpoint != "" {
		page, next, err := c.fetchPage(endpoint)
		if err != nil {
			return nil, err
		}

		rows = append(rows, page...)
		endpoint = next
	}

	return rows, nil
}

func (c *graphClient) fetchPage(endpoint string) ([]metadomain.InsightRow, string, error) {
	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição para a Graph API")
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("erro ao ler resposta da Graph API: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", c.providerError(resp.StatusCode, body)
	}

	var response metadomain.InsightsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, "", &integrator.ProviderError{
			Provider:   domain.ProviderMeta,
			StatusCode: resp.StatusCode,
			Type:       "malformed_response",
			Message:    err.Error(),
		}
	}

	return response.Data, response.Paging.Next, nil
}

func (c *graphClient) providerError(statusCode int, body []byte) error {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
		return &integrator.ProviderError{
			Provider:   domain.ProviderMeta,
			StatusCode: statusCode,
			Type:       errorResp.Error.Type,
			Message:    fmt.Sprintf("%s (código %d, subcódigo %d)", errorResp.Error.Message, errorResp.Error.Code, errorResp.Error.ErrorSubcode),
		}
	}

	return &integrator.ProviderError{
		Provider:   domain.ProviderMeta,
		StatusCode: statusCode,
		Type:       "http_error",
		Message:    string(body),
	}
}
