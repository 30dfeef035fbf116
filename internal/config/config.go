package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Meta          Meta          `mapstructure:",squash"`
	GoogleAds     GoogleAds     `mapstructure:",squash"`
	GA4           GA4           `mapstructure:",squash"`
	GoogleOAuth   GoogleOAuth   `mapstructure:",squash"`
	Sync          Sync          `mapstructure:",squash"`
	MetaSync      MetaSync      `mapstructure:",squash"`
	GoogleAdsSync GoogleAdsSync `mapstructure:",squash"`
	GA4Sync       GA4Sync       `mapstructure:",squash"`
	Classifier    Classifier    `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL   string `mapstructure:"meta_base_url"`
	URL       string `mapstructure:"-"`
	Version   string `mapstructure:"meta_version"`
	AppID     string `mapstructure:"meta_app_id"`
	AppSecret string `mapstructure:"meta_app_secret"`
}

type GoogleAds struct {
	BaseURL        string `mapstructure:"google_ads_base_url"`
	URL            string `mapstructure:"-"`
	Version        string `mapstructure:"google_ads_version"`
	DeveloperToken string `mapstructure:"google_ads_developer_token"`
}

type GA4 struct {
	BaseURL string `mapstructure:"ga4_base_url"`
	URL     string `mapstructure:"-"`
	Version string `mapstructure:"ga4_version"`
}

// GoogleOAuth são as credenciais de cliente OAuth compartilhadas entre
// Google Ads e GA4
type GoogleOAuth struct {
	ClientID     string `mapstructure:"google_oauth_client_id"`
	ClientSecret string `mapstructure:"google_oauth_client_secret"`
	TokenURL     string `mapstructure:"google_oauth_token_url"`
}

// Sync agrupa as configurações comuns aos gatilhos de sincronização
type Sync struct {
	TriggerSecret       string `mapstructure:"sync_trigger_secret"`
	RequestDelaySeconds int    `mapstructure:"sync_request_delay_seconds"`
}

type MetaSync struct {
	CronSchedule string `mapstructure:"meta_sync_cron"`
	LookbackDays int    `mapstructure:"meta_sync_lookback_days"`
	Enabled      bool   `mapstructure:"meta_sync_enabled"`
}

type GoogleAdsSync struct {
	CronSchedule string `mapstructure:"google_ads_sync_cron"`
	LookbackDays int    `mapstructure:"google_ads_sync_lookback_days"`
	Enabled      bool   `mapstructure:"google_ads_sync_enabled"`
}

type GA4Sync struct {
	CronSchedule string `mapstructure:"ga4_sync_cron"`
	LookbackDays int    `mapstructure:"ga4_sync_lookback_days"`
	Enabled      bool   `mapstructure:"ga4_sync_enabled"`
}

// Classifier configura as listas de palavras-chave do classificador de
// temperatura de UTM (P1/P2)
type Classifier struct {
	P1Keywords []string `mapstructure:"classifier_p1_keywords"`
	P2Keywords []string `mapstructure:"classifier_p2_keywords"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adsync")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v17")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "")

	viper.SetDefault("GA4_BASE_URL", "https://analyticsdata.googleapis.com")
	viper.SetDefault("GA4_VERSION", "v1beta")

	viper.SetDefault("GOOGLE_OAUTH_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_OAUTH_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_OAUTH_TOKEN_URL", "https://oauth2.googleapis.com/token")

	// Segredo compartilhado do gatilho HTTP de sincronização
	viper.SetDefault("SYNC_TRIGGER_SECRET", "your_sync_secret")
	viper.SetDefault("SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre integrações

	// Defaults para sincronização por provedor
	viper.SetDefault("META_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("META_SYNC_LOOKBACK_DAYS", 30)
	viper.SetDefault("META_SYNC_ENABLED", false)

	viper.SetDefault("GOOGLE_ADS_SYNC_CRON", "0 4 * * *") // Todos os dias às 4h da manhã
	viper.SetDefault("GOOGLE_ADS_SYNC_LOOKBACK_DAYS", 30)
	viper.SetDefault("GOOGLE_ADS_SYNC_ENABLED", false)

	viper.SetDefault("GA4_SYNC_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("GA4_SYNC_LOOKBACK_DAYS", 30)
	viper.SetDefault("GA4_SYNC_ENABLED", false)

	// Palavras-chave herdadas do campo livre de UTM; ajustáveis por ambiente
	viper.SetDefault("CLASSIFIER_P1_KEYWORDS", "p1,quente,fundo")
	viper.SetDefault("CLASSIFIER_P2_KEYWORDS", "p2,frio,topo")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)
	config.GoogleAds.URL = fmt.Sprintf("%s/%s", config.GoogleAds.BaseURL, config.GoogleAds.Version)
	config.GA4.URL = fmt.Sprintf("%s/%s", config.GA4.BaseURL, config.GA4.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// RequestDelay devolve o intervalo entre chamadas a provedores externos
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.Sync.RequestDelaySeconds) * time.Second
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
