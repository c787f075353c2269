package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	PipelineSync PipelineSync `mapstructure:",squash"`
	Forecast     Forecast     `mapstructure:",squash"`
	Cors         Cors         `mapstructure:",squash"`
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

type Auth struct {
	SecretKey string `mapstructure:"secret_key"`
}

type PipelineSync struct {
	CronSchedule string `mapstructure:"pipeline_sync_cron"`
	Enabled      bool   `mapstructure:"pipeline_sync_enabled"`
}

// Forecast guarda os valores usados quando a requisição não informa horizonte ou premissas
type Forecast struct {
	DefaultHorizon    int     `mapstructure:"forecast_default_horizon"`
	DefaultGrowthRate float64 `mapstructure:"forecast_default_growth_rate"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/cre_deals?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "postgres")

	viper.SetDefault("SECRET_KEY", "")

	viper.SetDefault("PIPELINE_SYNC_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("PIPELINE_SYNC_ENABLED", true)

	viper.SetDefault("FORECAST_DEFAULT_HORIZON", 5)
	viper.SetDefault("FORECAST_DEFAULT_GROWTH_RATE", 0.02) // 2% ao ano

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
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

	if config.Auth.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY não configurada")
	}

	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

// BuildDSN monta a URL de conexão a partir das partes configuradas
func BuildDSN(db Database) string {
	return fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
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
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
