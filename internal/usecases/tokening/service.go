package tokening

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-sync-api/infrastructure/repository"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/internal/syslog"
)

// ExpiryBuffer é a margem de segurança antes da expiração real do token.
// Tokens que expiram dentro dessa janela já são tratados como expirados,
// evitando falhas no meio de uma sincronização longa.
const ExpiryBuffer = 5 * time.Minute

// TokenSource entrega um access token válido para a integração, renovando
// quando necessário
type TokenSource interface {
	GetValidAccessToken(integration *domain.Integration) (string, error)
}

// Credentials é o resultado de uma renovação bem-sucedida
type Credentials struct {
	AccessToken  string
	RefreshToken *string
	ExpiresAt    time.Time
}

// Refresher renova credenciais junto ao provedor correspondente
type Refresher interface {
	Provider() domain.Provider
	Refresh(integration *domain.Integration) (*Credentials, error)
}

type Service struct {
	integrationRepo repository.IntegrationRepository
	refreshers      map[domain.Provider]Refresher
	audit           syslog.Logger
	now             func() time.Time
}

func NewService(
	integrationRepo repository.IntegrationRepository,
	audit syslog.Logger,
	refreshers ...Refresher,
) *Service {
	byProvider := make(map[domain.Provider]Refresher, len(refreshers))
	for _, r := range refreshers {
		byProvider[r.Provider()] = r
	}

	return &Service{
		integrationRepo: integrationRepo,
		refreshers:      byProvider,
		audit:           audit,
		now:             time.Now,
	}
}

// GetValidAccessToken devolve o token atual quando ainda válido; caso
// contrário renova e persiste as novas credenciais antes de devolver.
// Expiração desconhecida (token_expires_at nulo) é tratada como expirada.
func (s *Service) GetValidAccessToken(integration *domain.Integration) (string, error) {
	if integration.TokenExpiresAt != nil && integration.TokenExpiresAt.After(s.now().Add(ExpiryBuffer)) {
		return integration.AccessToken, nil
	}

	refresher, ok := s.refreshers[integration.Provider]
	if !ok {
		return "", &domain.AuthError{
			IntegrationID: integration.ID,
			Reason:        "nenhum renovador de token disponível para o provedor " + string(integration.Provider),
		}
	}

	logrus.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"provider":       integration.Provider,
	}).Info("Token expirado ou prestes a expirar, renovando")

	creds, err := refresher.Refresh(integration)
	if err != nil {
		s.audit.Log(integration.OrganizationID, domain.ComponentTokens, domain.LogLevelError,
			"Falha ao renovar o token de acesso",
			map[string]any{"integration_id": integration.ID, "provider": integration.Provider, "error": err},
		)
		return "", err
	}

	if err := s.integrationRepo.UpdateTokens(integration.ID, creds.AccessToken, creds.RefreshToken, creds.ExpiresAt); err != nil {
		return "", err
	}

	integration.AccessToken = creds.AccessToken
	if creds.RefreshToken != nil {
		integration.RefreshToken = creds.RefreshToken
	}
	expiresAt := creds.ExpiresAt
	integration.TokenExpiresAt = &expiresAt

	s.audit.Log(integration.OrganizationID, domain.ComponentTokens, domain.LogLevelInfo,
		"Token de acesso renovado",
		map[string]any{
			"integration_id": integration.ID,
			"provider":       integration.Provider,
			"expires_at":     creds.ExpiresAt.Format(time.RFC3339),
		},
	)

	return creds.AccessToken, nil
}
