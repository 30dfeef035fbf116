package tokening

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
)

type googleTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type googleErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// googleRefresher renova tokens via fluxo refresh_token do OAuth do Google.
// A mesma credencial de cliente atende Google Ads e GA4; só muda o provedor
// que cada instância representa.
type googleRefresher struct {
	cfg        *config.Config
	provider   domain.Provider
	httpClient *http.Client
	now        func() time.Time
}

func NewGoogleRefresher(cfg *config.Config, provider domain.Provider) Refresher {
	return &googleRefresher{
		cfg:        cfg,
		provider:   provider,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

func (r *googleRefresher) Provider() domain.Provider {
	return r.provider
}

func (r *googleRefresher) Refresh(integration *domain.Integration) (*Credentials, error) {
	if !integration.HasRefreshToken() {
		return nil, &domain.AuthError{
			IntegrationID: integration.ID,
			Reason:        "integração sem refresh token",
		}
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", r.cfg.GoogleOAuth.ClientID)
	form.Set("client_secret", r.cfg.GoogleOAuth.ClientSecret)
	form.Set("refresh_token", *integration.RefreshToken)

	resp, err := r.httpClient.Post(
		r.cfg.GoogleOAuth.TokenURL,
		"application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao chamar o endpoint de token do Google: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do endpoint de token do Google: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp googleErrorResponse
		if json.Unmarshal(body, &errorResp) == nil && errorResp.Error == "invalid_grant" {
			// Refresh token revogado ou expirado: precisa de nova autorização
			return nil, &domain.AuthError{
				IntegrationID: integration.ID,
				Reason:        fmt.Sprintf("refresh token rejeitado pelo Google: %s", errorResp.ErrorDescription),
			}
		}
		return nil, fmt.Errorf("endpoint de token do Google respondeu %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp googleTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("resposta inválida do endpoint de token do Google: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("endpoint de token do Google não devolveu access_token")
	}

	return &Credentials{
		AccessToken: tokenResp.AccessToken,
		// O Google não rotaciona o refresh token nesse fluxo
		RefreshToken: integration.RefreshToken,
		ExpiresAt:    r.now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}, nil
}
