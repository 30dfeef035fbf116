package metaads

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/ad-sync-api/infrastructure/integrator/metaads/domain"
	"github.com/vfg2006/ad-sync-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/internal/syslog"
	"go.uber.org/mock/gomock"
)

func testConfig(metaURL string) *config.Config {
	return &config.Config{
		Meta: config.Meta{
			URL:       metaURL,
			AppID:     "app-id",
			AppSecret: "app-secret",
		},
	}
}

func testWindow() domain.DateRange {
	return domain.DateRange{
		Since: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewAdapter_CredenciaisAusentes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{} // sem app_id/app_secret

	_, err := NewAdapter(cfg, NewClient(cfg), mocks.NewMockOrganizationSettingsRepository(ctrl), syslog.Nop())

	var configErr *domain.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, domain.ProviderMeta, configErr.Provider)
}

func TestFetchMetrics_NormalizaLinhasDaGraphAPI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/act_12345/insights", r.URL.Path)
		assert.Equal(t, "campaign", r.URL.Query().Get("level"))
		assert.Equal(t, "token-abc", r.URL.Query().Get("access_token"))

		response := metadomain.InsightsResponse{
			Data: []metadomain.InsightRow{
				{
					DateStart:    "2024-01-15",
					CampaignID:   "c1",
					CampaignName: "Campanha A",
					Spend:        "150.756",
					Impressions:  "1000",
					Clicks:       "50",
					Actions: []metadomain.Action{
						{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "3"},
					},
				},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)

	mockSettings := mocks.NewMockOrganizationSettingsRepository(ctrl)
	mockSettings.EXPECT().
		GetProviderSettings("org-1", domain.ProviderMeta).
		Return(&domain.ProviderSettings{
			OrganizationID: "org-1",
			Provider:       domain.ProviderMeta,
			AccountID:      "12345",
		}, nil)

	adapter, err := NewAdapter(cfg, NewClient(cfg), mockSettings, syslog.Nop())
	require.NoError(t, err)

	rows, err := adapter.FetchMetrics(&domain.Integration{
		ID:             "int-1",
		OrganizationID: "org-1",
		Provider:       domain.ProviderMeta,
		AccessToken:    "token-abc",
	}, testWindow())
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "c1", rows[0].CampaignID)
	assert.Equal(t, "150.76", rows[0].Spend)
	assert.Equal(t, 1000, rows[0].Impressions)
	assert.Equal(t, 3, rows[0].Conversions)
}

func TestFetchMetrics_SeguePaginacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := metadomain.InsightsResponse{}
		if r.URL.Query().Get("after") == "" {
			response.Data = []metadomain.InsightRow{{DateStart: "2024-01-14", CampaignID: "c1", Spend: "1"}}
			response.Paging.Next = server.URL + "/act_12345/insights?after=pagina2"
		} else {
			response.Data = []metadomain.InsightRow{{DateStart: "2024-01-15", CampaignID: "c2", Spend: "2"}}
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)

	mockSettings := mocks.NewMockOrganizationSettingsRepository(ctrl)
	mockSettings.EXPECT().
		GetProviderSettings("org-1", domain.ProviderMeta).
		Return(&domain.ProviderSettings{AccountID: "12345"}, nil)

	adapter, err := NewAdapter(cfg, NewClient(cfg), mockSettings, syslog.Nop())
	require.NoError(t, err)

	rows, err := adapter.FetchMetrics(&domain.Integration{OrganizationID: "org-1", AccessToken: "tok"}, testWindow())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "c1", rows[0].CampaignID)
	assert.Equal(t, "c2", rows[1].CampaignID)
}

func TestFetchMetrics_SemAccountIDConfigurado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig("http://localhost")

	mockSettings := mocks.NewMockOrganizationSettingsRepository(ctrl)
	mockSettings.EXPECT().
		GetProviderSettings("org-1", domain.ProviderMeta).
		Return(nil, nil)

	adapter, err := NewAdapter(cfg, NewClient(cfg), mockSettings, syslog.Nop())
	require.NoError(t, err)

	_, err = adapter.FetchMetrics(&domain.Integration{OrganizationID: "org-1"}, testWindow())

	var configErr *domain.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "account_id", configErr.Field)
}

func TestFetchMetrics_ErroDoProvedor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message":       "Error validating access token",
				"type":          "OAuthException",
				"code":          190,
				"error_subcode": 463,
			},
		})
	}))
	defer server.Close()

	cfg := testConfig(server.URL)

	mockSettings := mocks.NewMockOrganizationSettingsRepository(ctrl)
	mockSettings.EXPECT().
		GetProviderSettings("org-1", domain.ProviderMeta).
		Return(&domain.ProviderSettings{AccountID: "12345"}, nil)

	adapter, err := NewAdapter(cfg, NewClient(cfg), mockSettings, syslog.Nop())
	require.NoError(t, err)

	_, err = adapter.FetchMetrics(&domain.Integration{OrganizationID: "org-1", AccessToken: "expirado"}, testWindow())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OAuthException")
}
