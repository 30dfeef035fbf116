package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/internal/syslog"
	syncingmocks "github.com/vfg2006/ad-sync-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func schedulerTestConfig() *config.Config {
	return &config.Config{
		MetaSync: config.MetaSync{
			CronSchedule: "0 3 * * *",
			LookbackDays: 30,
			Enabled:      true,
		},
		GoogleAdsSync: config.GoogleAdsSync{
			CronSchedule: "30 3 * * *",
			LookbackDays: 14,
			Enabled:      false,
		},
		GA4Sync: config.GA4Sync{
			CronSchedule: "0 4 * * *",
			LookbackDays: 7,
			Enabled:      true,
		},
	}
}

func TestProviderSyncConfig(t *testing.T) {
	appConfig := schedulerTestConfig()

	tests := []struct {
		name     string
		provider domain.Provider
		expected ProviderSyncConfig
	}{
		{
			name:     "Meta usa a seção meta_sync",
			provider: domain.ProviderMeta,
			expected: ProviderSyncConfig{CronSchedule: "0 3 * * *", LookbackDays: 30, SyncEnabled: true},
		},
		{
			name:     "Google Ads usa a seção google_ads_sync",
			provider: domain.ProviderGoogleAds,
			expected: ProviderSyncConfig{CronSchedule: "30 3 * * *", LookbackDays: 14, SyncEnabled: false},
		},
		{
			name:     "GA4 usa a seção ga4_sync",
			provider: domain.ProviderGA4,
			expected: ProviderSyncConfig{CronSchedule: "0 4 * * *", LookbackDays: 7, SyncEnabled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, providerSyncConfig(tt.provider, appConfig))
		})
	}
}

func TestRunSync_AtualizaStatusAposExecucao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncer := syncingmocks.NewMockSyncer(ctrl)
	mockSyncer.EXPECT().
		SyncProvider(domain.ProviderMeta, 30).
		Return([]domain.SyncResult{
			{OrganizationID: "org-1", Status: domain.SyncStatusSuccess, Count: 5},
			{OrganizationID: "org-2", Status: domain.SyncStatusError, Error: "token expirado"},
		}, nil)

	service := NewProviderSyncService(domain.ProviderMeta, mockSyncer, syslog.Nop(), schedulerTestConfig())
	service.runSync()

	status := service.GetStatus()
	assert.Equal(t, domain.ProviderMeta, status["provider"])
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, 2, status["last_sync_results"])
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestRunSync_ErroDoLoteNaoAtualizaConclusao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncer := syncingmocks.NewMockSyncer(ctrl)
	mockSyncer.EXPECT().
		SyncProvider(domain.ProviderGA4, 7).
		Return(nil, assert.AnError)

	service := NewProviderSyncService(domain.ProviderGA4, mockSyncer, syslog.Nop(), schedulerTestConfig())
	service.runSync()

	status := service.GetStatus()
	assert.Equal(t, 0, status["last_sync_results"])
	assert.True(t, status["last_sync_completed_at"].(time.Time).IsZero())
	assert.False(t, status["last_sync_started_at"].(time.Time).IsZero())
}

func TestRunSync_ExecucaoConcorrenteIgnorada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	started := make(chan struct{})
	release := make(chan struct{})

	// Apenas uma chamada deve chegar ao orquestrador
	mockSyncer := syncingmocks.NewMockSyncer(ctrl)
	mockSyncer.EXPECT().
		SyncProvider(domain.ProviderMeta, 30).
		DoAndReturn(func(domain.Provider, int) ([]domain.SyncResult, error) {
			close(started)
			<-release
			return []domain.SyncResult{}, nil
		}).
		Times(1)

	service := NewProviderSyncService(domain.ProviderMeta, mockSyncer, syslog.Nop(), schedulerTestConfig())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		service.runSync()
	}()

	<-started
	// Segunda execução enquanto a primeira está em andamento: descartada
	service.runSync()
	close(release)
	wg.Wait()
}

func TestTriggerManualSync_ExecutaEmSegundoPlano(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	done := make(chan struct{})

	mockSyncer := syncingmocks.NewMockSyncer(ctrl)
	mockSyncer.EXPECT().
		SyncProvider(domain.ProviderMeta, 30).
		DoAndReturn(func(domain.Provider, int) ([]domain.SyncResult, error) {
			close(done)
			return []domain.SyncResult{}, nil
		})

	service := NewProviderSyncService(domain.ProviderMeta, mockSyncer, syslog.Nop(), schedulerTestConfig())
	service.TriggerManualSync()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sincronização manual não foi disparada")
	}
}

func TestGetStatus_RefleteConfiguracao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncer := syncingmocks.NewMockSyncer(ctrl)
	service := NewProviderSyncService(domain.ProviderGoogleAds, mockSyncer, syslog.Nop(), schedulerTestConfig())

	status := service.GetStatus()
	assert.Equal(t, domain.ProviderGoogleAds, status["provider"])
	assert.Equal(t, false, status["sync_enabled"])
	assert.Equal(t, "30 3 * * *", status["sync_cron"])
	assert.Equal(t, 14, status["sync_lookback_days"])
}
