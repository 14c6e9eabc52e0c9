package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Meta       Meta       `mapstructure:",squash"`
	Normalizer Normalizer `mapstructure:",squash"`
	Sync       Sync       `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL           string        `mapstructure:"meta_base_url"`
	URL               string        `mapstructure:"meta_url"`
	Version           string        `mapstructure:"meta_version"`
	AccessToken       string        `mapstructure:"meta_access_token"`
	MaxPages          int           `mapstructure:"meta_max_pages"`
	PageSize          int           `mapstructure:"meta_page_size"`
	RetryAttempts     int           `mapstructure:"meta_retry_attempts"`
	RetryBackoff      time.Duration `mapstructure:"meta_retry_backoff"`
	RequestsPerSecond float64       `mapstructure:"meta_requests_per_second"`
	Timeout           time.Duration `mapstructure:"meta_timeout"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Normalizer struct {
	DefaultCurrency string `mapstructure:"normalizer_default_currency"`
}

// SyncAccount liga uma conta de anúncios a um projeto para a sincronização agendada
type SyncAccount struct {
	ProjectID string
	AccountID string
	Currency  string
}

type Sync struct {
	CronSchedule string        `mapstructure:"sync_cron"`
	Enabled      bool          `mapstructure:"sync_enabled"`
	LookbackDays int           `mapstructure:"sync_lookback_days"`
	RawAccounts  []string      `mapstructure:"sync_accounts"`
	Accounts     []SyncAccount `mapstructure:"-"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adreport")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("META_MAX_PAGES", 20)                     // limite de páginas por coleção
	viper.SetDefault("META_PAGE_SIZE", 500)
	viper.SetDefault("META_RETRY_ATTEMPTS", 3)
	viper.SetDefault("META_RETRY_BACKOFF", "2s")
	viper.SetDefault("META_REQUESTS_PER_SECOND", 5)
	viper.SetDefault("META_TIMEOUT", "30s")

	viper.SetDefault("NORMALIZER_DEFAULT_CURRENCY", "TWD")

	// Defaults para sincronização das contas
	viper.SetDefault("SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("SYNC_ENABLED", false)
	viper.SetDefault("SYNC_LOOKBACK_DAYS", 30)
	viper.SetDefault("SYNC_ACCOUNTS", "")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	config.Sync.Accounts, err = ParseSyncAccounts(config.Sync.RawAccounts, config.Normalizer.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// ParseSyncAccounts lê entradas no formato projeto:conta[:moeda]
func ParseSyncAccounts(raw []string, defaultCurrency string) ([]SyncAccount, error) {
	accounts := make([]SyncAccount, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid sync account entry %q", entry)
		}

		account := SyncAccount{
			ProjectID: parts[0],
			AccountID: parts[1],
			Currency:  defaultCurrency,
		}
		if len(parts) == 3 && parts[2] != "" {
			account.Currency = strings.ToUpper(parts[2])
		}

		accounts = append(accounts, account)
	}

	return accounts, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
