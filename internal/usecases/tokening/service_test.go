package tokening

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/internal/syslog"
	"go.uber.org/mock/gomock"
)

type stubRefresher struct {
	provider domain.Provider
	creds    *Credentials
	err      error
	calls    int
}

func (s *stubRefresher) Provider() domain.Provider { return s.provider }

func (s *stubRefresher) Refresh(_ *domain.Integration) (*Credentials, error) {
	s.calls++
	return s.creds, s.err
}

func timePtr(t time.Time) *time.Time { return &t }

func stringPtr(s string) *string { return &s }

func TestGetValidAccessToken_TokenAindaValido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIntegrationRepository(ctrl)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	refresher := &stubRefresher{provider: domain.ProviderMeta}
	service := NewService(mockRepo, syslog.Nop(), refresher)
	service.now = func() time.Time { return now }

	integration := &domain.Integration{
		ID:             "int-1",
		Provider:       domain.ProviderMeta,
		AccessToken:    "token-atual",
		TokenExpiresAt: timePtr(now.Add(1 * time.Hour)),
	}

	token, err := service.GetValidAccessToken(integration)
	require.NoError(t, err)
	assert.Equal(t, "token-atual", token)
	assert.Zero(t, refresher.calls, "não deve renovar token ainda válido")
}

func TestGetValidAccessToken_DentroDaMargemRenova(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIntegrationRepository(ctrl)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	newExpiry := now.Add(60 * 24 * time.Hour)

	refresher := &stubRefresher{
		provider: domain.ProviderMeta,
		creds: &Credentials{
			AccessToken: "token-novo",
			ExpiresAt:   newExpiry,
		},
	}

	mockRepo.EXPECT().
		UpdateTokens("int-1", "token-novo", nil, newExpiry).
		Return(nil)

	service := NewService(mockRepo, syslog.Nop(), refresher)
	service.now = func() time.Time { return now }

	// Expira em 4 minutos, dentro da margem de 5
	integration := &domain.Integration{
		ID:             "int-1",
		Provider:       domain.ProviderMeta,
		AccessToken:    "token-velho",
		TokenExpiresAt: timePtr(now.Add(4 * time.Minute)),
	}

	token, err := service.GetValidAccessToken(integration)
	require.NoError(t, err)
	assert.Equal(t, "token-novo", token)
	assert.Equal(t, 1, refresher.calls)

	// O registro em memória acompanha o que foi persistido
	assert.Equal(t, "token-novo", integration.AccessToken)
	require.NotNil(t, integration.TokenExpiresAt)
	assert.Equal(t, newExpiry, *integration.TokenExpiresAt)
}

func TestGetValidAccessToken_ExpiracaoDesconhecidaRenova(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIntegrationRepository(ctrl)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	refresher := &stubRefresher{
		provider: domain.ProviderGoogleAds,
		creds: &Credentials{
			AccessToken:  "token-novo",
			RefreshToken: stringPtr("refresh-1"),
			ExpiresAt:    now.Add(1 * time.Hour),
		},
	}

	mockRepo.EXPECT().
		UpdateTokens("int-2", "token-novo", gomock.Any(), gomock.Any()).
		Return(nil)

	service := NewService(mockRepo, syslog.Nop(), refresher)
	service.now = func() time.Time { return now }

	integration := &domain.Integration{
		ID:             "int-2",
		Provider:       domain.ProviderGoogleAds,
		AccessToken:    "token-velho",
		TokenExpiresAt: nil, // expiração nunca registrada
	}

	token, err := service.GetValidAccessToken(integration)
	require.NoError(t, err)
	assert.Equal(t, "token-novo", token)
	assert.Equal(t, 1, refresher.calls)
}

func TestGetValidAccessToken_FalhaDeRenovacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIntegrationRepository(ctrl)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	authErr := &domain.AuthError{IntegrationID: "int-3", Reason: "integração sem refresh token"}
	refresher := &stubRefresher{provider: domain.ProviderGA4, err: authErr}

	service := NewService(mockRepo, syslog.Nop(), refresher)
	service.now = func() time.Time { return now }

	integration := &domain.Integration{
		ID:             "int-3",
		Provider:       domain.ProviderGA4,
		AccessToken:    "token-velho",
		TokenExpiresAt: timePtr(now.Add(-1 * time.Hour)),
	}

	_, err := service.GetValidAccessToken(integration)
	require.Error(t, err)

	var target *domain.AuthError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "int-3", target.IntegrationID)
}

func TestGetValidAccessToken_SemRenovadorParaOProvedor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIntegrationRepository(ctrl)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	service := NewService(mockRepo, syslog.Nop())
	service.now = func() time.Time { return now }

	integration := &domain.Integration{
		ID:             "int-4",
		Provider:       domain.ProviderMeta,
		TokenExpiresAt: nil,
	}

	_, err := service.GetValidAccessToken(integration)

	var target *domain.AuthError
	require.ErrorAs(t, err, &target)
}

func TestGetValidAccessToken_FalhaAoPersistirNaoDevolveTokenNovo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIntegrationRepository(ctrl)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	refresher := &stubRefresher{
		provider: domain.ProviderMeta,
		creds: &Credentials{
			AccessToken: "token-novo",
			ExpiresAt:   now.Add(1 * time.Hour),
		},
	}

	mockRepo.EXPECT().
		UpdateTokens(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("banco indisponível"))

	service := NewService(mockRepo, syslog.Nop(), refresher)
	service.now = func() time.Time { return now }

	integration := &domain.Integration{
		ID:             "int-5",
		Provider:       domain.ProviderMeta,
		AccessToken:    "token-velho",
		TokenExpiresAt: timePtr(now.Add(-1 * time.Minute)),
	}

	_, err := service.GetValidAccessToken(integration)
	require.Error(t, err)

	// O registro em memória não pode ficar à frente do banco
	assert.Equal(t, "token-velho", integration.AccessToken)
}
