package googleads

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	googledomain "github.com/vfg2006/ad-sync-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/ad-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/internal/syslog"
	"go.uber.org/mock/gomock"
)

func adsTestConfig(adsURL string) *config.Config {
	return &config.Config{
		GoogleAds: config.GoogleAds{
			URL:            adsURL,
			DeveloperToken: "dev-token",
		},
		GoogleOAuth: config.GoogleOAuth{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
		},
	}
}

func adsTestWindow() domain.DateRange {
	return domain.DateRange{
		Since: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewAdapter_DeveloperTokenAusente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{
		GoogleOAuth: config.GoogleOAuth{ClientID: "id", ClientSecret: "secret"},
	}

	_, err := NewAdapter(cfg, NewClient(cfg), mocks.NewMockOrganizationSettingsRepository(ctrl), syslog.Nop())

	var configErr *domain.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, domain.ProviderGoogleAds, configErr.Provider)
	assert.Equal(t, "google_ads_developer_token", configErr.Field)
}

func TestFetchMetrics_NormalizaLinhasDoSearchStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/111-222-3333/googleAds:searchStream", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "dev-token", r.Header.Get("developer-token"))

		var payload map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Contains(t, payload["query"], "BETWEEN '2024-01-01' AND '2024-01-31'")

		// O searchStream devolve os resultados em blocos
		chunks := []googledomain.StreamChunk{
			{Results: []googledomain.SearchRow{
				{
					Campaign: googledomain.Campaign{ID: "c1", Name: "Campanha A"},
					Metrics: googledomain.Metrics{
						CostMicros:  "2500000",
						Impressions: "1000",
						Clicks:      "50",
						Conversions: 7.4,
					},
					Segments: googledomain.Segments{Date: "2024-01-15"},
				},
			}},
			{Results: []googledomain.SearchRow{
				{
					Campaign: googledomain.Campaign{ID: "c2", Name: "Campanha B"},
					Metrics: googledomain.Metrics{
						CostMicros:  "1500000",
						Impressions: "200",
						Clicks:      "10",
						Conversions: 1,
					},
					Segments: googledomain.Segments{Date: "2024-01-16"},
				},
			}},
		}
		json.NewEncoder(w).Encode(chunks)
	}))
	defer server.Close()

	cfg := adsTestConfig(server.URL)

	mockSettings := mocks.NewMockOrganizationSettingsRepository(ctrl)
	mockSettings.EXPECT().
		GetProviderSettings("org-1", domain.ProviderGoogleAds).
		Return(&domain.ProviderSettings{
			OrganizationID: "org-1",
			Provider:       domain.ProviderGoogleAds,
			AccountID:      "111-222-3333",
		}, nil)

	adapter, err := NewAdapter(cfg, NewClient(cfg), mockSettings, syslog.Nop())
	require.NoError(t, err)

	rows, err := adapter.FetchMetrics(&domain.Integration{
		ID:             "int-1",
		OrganizationID: "org-1",
		Provider:       domain.ProviderGoogleAds,
		AccessToken:    "token-abc",
	}, adsTestWindow())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "c1", rows[0].CampaignID)
	assert.Equal(t, "2.50", rows[0].Spend)
	assert.Equal(t, 1000, rows[0].Impressions)
	assert.Equal(t, 7, rows[0].Conversions)
	assert.Equal(t, "c2", rows[1].CampaignID)
	assert.Equal(t, "1.50", rows[1].Spend)
}

func TestFetchMetrics_SemCustomerIDConfigurado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := adsTestConfig("http://localhost")

	mockSettings := mocks.NewMockOrganizationSettingsRepository(ctrl)
	mockSettings.EXPECT().
		GetProviderSettings("org-1", domain.ProviderGoogleAds).
		Return(nil, nil)

	adapter, err := NewAdapter(cfg, NewClient(cfg), mockSettings, syslog.Nop())
	require.NoError(t, err)

	_, err = adapter.FetchMetrics(&domain.Integration{OrganizationID: "org-1"}, adsTestWindow())

	var configErr *domain.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "account_id", configErr.Field)
}

func TestFetchMetrics_ErroDaAPIGoogle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(googledomain.ErrorResponse{
			Error: googledomain.ErrorDetails{
				Code:    401,
				Message: "Request had invalid authentication credentials",
				Status:  "UNAUTHENTICATED",
			},
		})
	}))
	defer server.Close()

	cfg := adsTestConfig(server.URL)

	mockSettings := mocks.NewMockOrganizationSettingsRepository(ctrl)
	mockSettings.EXPECT().
		GetProviderSettings("org-1", domain.ProviderGoogleAds).
		Return(&domain.ProviderSettings{AccountID: "111-222-3333"}, nil)

	adapter, err := NewAdapter(cfg, NewClient(cfg), mockSettings, syslog.Nop())
	require.NoError(t, err)

	_, err = adapter.FetchMetrics(&domain.Integration{OrganizationID: "org-1", AccessToken: "expirado"}, adsTestWindow())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNAUTHENTICATED")
}
