package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-api/infrastructure/integrator"
	"github.com/vfg2006/ad-sync-api/infrastructure/integrator/ga4"
	"github.com/vfg2006/ad-sync-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/ad-sync-api/infrastructure/integrator/metaads"
	"github.com/vfg2006/ad-sync-api/infrastructure/repository"
	"github.com/vfg2006/ad-sync-api/internal/api"
	"github.com/vfg2006/ad-sync-api/internal/api/handler"
	"github.com/vfg2006/ad-sync-api/internal/config"
	"github.com/vfg2006/ad-sync-api/internal/domain"
	"github.com/vfg2006/ad-sync-api/internal/scheduler"
	"github.com/vfg2006/ad-sync-api/internal/syslog"
	"github.com/vfg2006/ad-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/ad-sync-api/internal/usecases/tokening"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	integrationRepo := repository.NewIntegrationRepository(pgConn)
	metricRepo := repository.NewCampaignMetricRepository(pgConn)
	settingsRepo := repository.NewOrganizationSettingsRepository(pgConn)
	systemLogRepo := repository.NewSystemLogRepository(pgConn)

	audit := syslog.New(systemLogRepo)

	tokenService := tokening.NewService(
		integrationRepo,
		audit,
		tokening.NewMetaRefresher(cfg),
		tokening.NewGoogleRefresher(cfg, domain.ProviderGoogleAds),
		tokening.NewGoogleRefresher(cfg, domain.ProviderGA4),
	)

	adapters := buildAdapters(cfg, settingsRepo, audit)

	syncService := syncing.NewService(
		cfg,
		tokenService,
		integrationRepo,
		metricRepo,
		audit,
		adapters...,
	)

	// Um agendador por provedor, cada um com seu próprio cron
	schedulers := make(map[domain.Provider]*scheduler.ProviderSyncService, len(adapters))
	for _, adapter := range adapters {
		provider := adapter.Provider()
		svc := scheduler.NewProviderSyncService(provider, syncService, audit, cfg)
		schedulers[provider] = svc

		if err := svc.Start(ctx); err != nil {
			logrus.WithError(err).WithField("provider", provider).Error("Erro ao iniciar o agendador de sincronização")
		} else {
			logrus.WithField("provider", provider).Info("Agendador de sincronização iniciado com sucesso")
		}
	}

	server, err := api.New(cfg, handler.SyncServices{
		Syncer:     syncService,
		Schedulers: schedulers,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// buildAdapters monta os adaptadores dos provedores configurados. Um provedor
// sem credenciais fica de fora; os demais seguem funcionando normalmente.
func buildAdapters(
	cfg *config.Config,
	settingsRepo repository.OrganizationSettingsRepository,
	audit syslog.Logger,
) []integrator.Adapter {
	adapters := make([]integrator.Adapter, 0, 3)

	metaAdapter, err := metaads.NewAdapter(cfg, metaads.NewClient(cfg), settingsRepo, audit)
	if err != nil {
		logrus.WithError(err).Warn("Adaptador do Meta não configurado")
	} else {
		adapters = append(adapters, metaAdapter)
	}

	googleAdsAdapter, err := googleads.NewAdapter(cfg, googleads.NewClient(cfg), settingsRepo, audit)
	if err != nil {
		logrus.WithError(err).Warn("Adaptador do Google Ads não configurado")
	} else {
		adapters = append(adapters, googleAdsAdapter)
	}

	ga4Adapter, err := ga4.NewAdapter(cfg, ga4.NewClient(cfg), settingsRepo, audit)
	if err != nil {
		logrus.WithError(err).Warn("Adaptador do GA4 não configurado")
	} else {
		adapters = append(adapters, ga4Adapter)
	}

	return adapters
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
