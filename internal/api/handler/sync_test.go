package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-sync-api/internal/api/handler/router"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	syncingmocks "github.com/vfg2006/ad-sync-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

const testSecret = "segredo-de-teste"

func newTestRouter(syncer *syncingmocks.MockSyncer) http.Handler {
	services := SyncServices{Syncer: syncer}
	return router.New(
		router.WithRoutes(Sync(services, testSecret)...),
	)
}

func authorizedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+testSecret)
	return req
}

func TestTriggerSync_LoteComSucessoEFalhasIndividuais(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncer := syncingmocks.NewMockSyncer(ctrl)
	mockSyncer.EXPECT().
		SyncProvider(domain.ProviderMeta, 0).
		Return([]domain.SyncResult{
			{OrganizationID: "org-1", Status: domain.SyncStatusSuccess, Count: 10},
			{OrganizationID: "org-2", Status: domain.SyncStatusSkipped, Reason: domain.SkipReasonNoData},
			{OrganizationID: "org-3", Status: domain.SyncStatusError, Error: "provedor fora do ar"},
		}, nil)

	rec := httptest.NewRecorder()
	newTestRouter(mockSyncer).ServeHTTP(rec, authorizedRequest(http.MethodGet, "/v1/sync/meta"))

	// Falhas individuais não mudam o status HTTP do lote
	require.Equal(t, http.StatusOK, rec.Code)

	var response SyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.NotEmpty(t, response.Timestamp)
	require.Len(t, response.Results, 3)
	assert.Equal(t, domain.SyncStatusSuccess, response.Results[0].Status)
	assert.Equal(t, domain.SkipReasonNoData, response.Results[1].Reason)
	assert.Equal(t, "provedor fora do ar", response.Results[2].Error)
}

func TestTriggerSync_LookbackDaysDaQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncer := syncingmocks.NewMockSyncer(ctrl)
	mockSyncer.EXPECT().
		SyncProvider(domain.ProviderGoogleAds, 7).
		Return([]domain.SyncResult{}, nil)

	rec := httptest.NewRecorder()
	newTestRouter(mockSyncer).ServeHTTP(rec, authorizedRequest(http.MethodGet, "/v1/sync/google_ads?lookback_days=7"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTriggerSync_LookbackDaysInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncer := syncingmocks.NewMockSyncer(ctrl)

	rec := httptest.NewRecorder()
	newTestRouter(mockSyncer).ServeHTTP(rec, authorizedRequest(http.MethodGet, "/v1/sync/meta?lookback_days=abc"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTriggerSync_FalhaDoLoteInteiro(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncer := syncingmocks.NewMockSyncer(ctrl)
	mockSyncer.EXPECT().
		SyncProvider(domain.ProviderMeta, 0).
		Return(nil, errors.New("banco indisponível"))

	rec := httptest.NewRecorder()
	newTestRouter(mockSyncer).ServeHTTP(rec, authorizedRequest(http.MethodGet, "/v1/sync/meta"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var response SyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Contains(t, response.Error, "banco indisponível")
}

func TestTriggerSync_SemSegredo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncer := syncingmocks.NewMockSyncer(ctrl)

	rec := httptest.NewRecorder()
	newTestRouter(mockSyncer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sync/meta", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTriggerSync_SegredoInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncer := syncingmocks.NewMockSyncer(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/v1/sync/meta", nil)
	req.Header.Set("Authorization", "Bearer segredo-errado")

	rec := httptest.NewRecorder()
	newTestRouter(mockSyncer).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetSyncStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncer := syncingmocks.NewMockSyncer(ctrl)

	rec := httptest.NewRecorder()
	newTestRouter(mockSyncer).ServeHTTP(rec, authorizedRequest(http.MethodGet, "/v1/sync/status"))

	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
}
