package domain

import "time"

// Provider identifica a origem externa de métricas de anúncios
type Provider string

const (
	ProviderMeta      Provider = "meta"
	ProviderGoogleAds Provider = "google_ads"
	ProviderGA4       Provider = "ga4"
)

// Providers lista todos os provedores suportados pelo pipeline
func Providers() []Provider {
	return []Provider{ProviderMeta, ProviderGoogleAds, ProviderGA4}
}

func (p Provider) Valid() bool {
	switch p {
	case ProviderMeta, ProviderGoogleAds, ProviderGA4:
		return true
	}
	return false
}

type IntegrationStatus string

const (
	IntegrationStatusActive   IntegrationStatus = "ACTIVE"
	IntegrationStatusDisabled IntegrationStatus = "DISABLED"
)

// Integration representa o vínculo (organização, provedor, conta externa).
// É a unidade de sincronização e a única dona das credenciais OAuth.
type Integration struct {
	ID                string
	OrganizationID    string
	Provider          Provider
	ExternalAccountID string
	AccessToken       string
	RefreshToken      *string
	TokenExpiresAt    *time.Time
	Status            IntegrationStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasRefreshToken indica se a integração possui refresh token utilizável
func (i *Integration) HasRefreshToken() bool {
	return i.RefreshToken != nil && *i.RefreshToken != ""
}

// ProviderSettings são os identificadores de conta configurados por organização.
// Ficam fora do registro de integração para permitir trocas de configuração
// sem tocar nas credenciais.
type ProviderSettings struct {
	OrganizationID   string
	Provider         Provider
	AccountID        string
	ConversionAction string
}
