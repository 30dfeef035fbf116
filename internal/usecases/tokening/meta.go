package tokening

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	metadomain "github.com/vfg2006/ad-sync-api/infrastructure/integrator/metaads/domain"
	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
)

type metaTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// metaRefresher troca o token atual por um token de longa duração via
// fb_exchange_token. O Meta não usa refresh token; a troca parte do próprio
// access token ainda aceito pela Graph API.
type metaRefresher struct {
	cfg        *config.Config
	httpClient *http.Client
	now        func() time.Time
}

func NewMetaRefresher(cfg *config.Config) Refresher {
	return &metaRefresher{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

func (r *metaRefresher) Provider() domain.Provider {
	return domain.ProviderMeta
}

func (r *metaRefresher) Refresh(integration *domain.Integration) (*Credentials, error) {
	if integration.AccessToken == "" {
		return nil, &domain.AuthError{
			IntegrationID: integration.ID,
			Reason:        "integração sem access token para trocar",
		}
	}

	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", r.cfg.Meta.AppID)
	params.Set("client_secret", r.cfg.Meta.AppSecret)
	params.Set("fb_exchange_token", integration.AccessToken)

	endpoint := fmt.Sprintf("%s/oauth/access_token?%s", r.cfg.Meta.URL, params.Encode())

	resp, err := r.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("erro ao chamar o endpoint de troca de token do Meta: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta da troca de token do Meta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp metadomain.ErrorResponse
		if json.Unmarshal(body, &errorResp) == nil && errorResp.IsTokenExpired() {
			// O token atual já não serve nem para a troca
			return nil, &domain.AuthError{
				IntegrationID: integration.ID,
				Reason:        fmt.Sprintf("token rejeitado pelo Meta: %s", errorResp.Error.Message),
			}
		}
		return nil, fmt.Errorf("troca de token do Meta respondeu %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp metaTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("resposta inválida da troca de token do Meta: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("troca de token do Meta não devolveu access_token")
	}

	expiresIn := tokenResp.ExpiresIn
	if expiresIn == 0 {
		// Tokens de longa duração costumam valer ~60 dias mesmo quando a
		// resposta omite expires_in
		expiresIn = int((60 * 24 * time.Hour).Seconds())
	}

	return &Credentials{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: integration.RefreshToken,
		ExpiresAt:    r.now().Add(time.Duration(expiresIn) * time.Second),
	}, nil
}
