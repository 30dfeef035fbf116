package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/internal/syslog"
	"github.com/vfg2006/ad-sync-api/internal/usecases/syncing"
)

// ProviderSyncConfig representa a configuração do agendador de um provedor
type ProviderSyncConfig struct {
	CronSchedule string
	LookbackDays int
	SyncEnabled  bool
}

// ProviderSyncService agenda e dispara a sincronização de métricas de um
// provedor. Uma instância por provedor; execuções concorrentes do mesmo
// provedor são descartadas pelo mutex de single-flight.
type ProviderSyncService struct {
	provider            domain.Provider
	scheduler           *gocron.Scheduler
	config              ProviderSyncConfig
	syncer              syncing.Syncer
	audit               syslog.Logger
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResults         []domain.SyncResult
}

// NewProviderSyncService cria o agendador de sincronização do provedor
// informado, lendo a seção correspondente da config global
func NewProviderSyncService(
	provider domain.Provider,
	syncer syncing.Syncer,
	audit syslog.Logger,
	appConfig *config.Config,
) *ProviderSyncService {
	syncConfig := providerSyncConfig(provider, appConfig)

	logrus.WithFields(logrus.Fields{
		"provider":      provider,
		"cron_schedule": syncConfig.CronSchedule,
		"lookback_days": syncConfig.LookbackDays,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização carregada")

	return &ProviderSyncService{
		provider:    provider,
		scheduler:   gocron.NewScheduler(time.Local),
		config:      syncConfig,
		syncer:      syncer,
		audit:       audit,
		syncRunning: false,
	}
}

func providerSyncConfig(provider domain.Provider, appConfig *config.Config) ProviderSyncConfig {
	switch provider {
	case domain.ProviderMeta:
		return ProviderSyncConfig{
			CronSchedule: appConfig.MetaSync.CronSchedule,
			LookbackDays: appConfig.MetaSync.LookbackDays,
			SyncEnabled:  appConfig.MetaSync.Enabled,
		}
	case domain.ProviderGoogleAds:
		return ProviderSyncConfig{
			CronSchedule: appConfig.GoogleAdsSync.CronSchedule,
			LookbackDays: appConfig.GoogleAdsSync.LookbackDays,
			SyncEnabled:  appConfig.GoogleAdsSync.Enabled,
		}
	case domain.ProviderGA4:
		return ProviderSyncConfig{
			CronSchedule: appConfig.GA4Sync.CronSchedule,
			LookbackDays: appConfig.GA4Sync.LookbackDays,
			SyncEnabled:  appConfig.GA4Sync.Enabled,
		}
	}
	return ProviderSyncConfig{}
}

// Start inicia o agendador
func (s *ProviderSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.WithField("provider", s.provider).Info("Sincronização agendada desabilitada por configuração")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"provider": s.provider,
		"cron":     s.config.CronSchedule,
	}).Info("Iniciando agendador de sincronização de métricas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do provedor %s: %w", s.provider, err)
	}

	s.scheduler.StartAsync()

	// Parar o agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.WithField("provider", s.provider).Info("Parando agendador de sincronização de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

// runSync executa uma rodada completa de sincronização do provedor
func (s *ProviderSyncService) runSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.WithField("provider", s.provider).Info("Sincronização já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	results, err := s.syncer.SyncProvider(s.provider, s.config.LookbackDays)
	if err != nil {
		logrus.WithError(err).WithField("provider", s.provider).Error("Erro ao executar a sincronização agendada")
		s.audit.Log("", domain.ComponentScheduler, domain.LogLevelError,
			"Erro ao executar a sincronização agendada",
			map[string]any{"provider": s.provider, "error": err},
		)
		return
	}

	s.lastResults = results
	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"provider": s.provider,
		"duration": time.Since(startTime).String(),
		"results":  len(results),
	}).Info("Sincronização agendada concluída")
}

// TriggerManualSync inicia manualmente uma sincronização do provedor
func (s *ProviderSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.WithField("provider", s.provider).Info("Sincronização já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.WithField("provider", s.provider).Info("Iniciando sincronização manual")
	go s.runSync()
}

// GetStatus retorna o status atual do agendador
func (s *ProviderSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"provider":               s.provider,
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_results":      len(s.lastResults),
	}
}
