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
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Session        Session        `mapstructure:",squash"`
	SessionCleanup SessionCleanup `mapstructure:",squash"`
	Upload         Upload         `mapstructure:",squash"`
	SecretKey      string         `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Session struct {
	TTL        time.Duration `mapstructure:"session_ttl"`
	CookieName string        `mapstructure:"session_cookie_name"`
}

type SessionCleanup struct {
	CronSchedule string `mapstructure:"session_cleanup_cron"`
	Enabled      bool   `mapstructure:"session_cleanup_enabled"`
}

type Upload struct {
	MaxSizeMB int64 `mapstructure:"max_upload_mb"`
}

// MaxBytes retorna o limite de upload em bytes
func (u Upload) MaxBytes() int64 {
	return u.MaxSizeMB << 20
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("SESSION_TTL", "2h")
	viper.SetDefault("SESSION_COOKIE_NAME", "sales_session")

	viper.SetDefault("SESSION_CLEANUP_CRON", "*/10 * * * *") // A cada 10 minutos
	viper.SetDefault("SESSION_CLEANUP_ENABLED", true)

	viper.SetDefault("MAX_UPLOAD_MB", 32)

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
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
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

	if config.Session.TTL <= 0 {
		return nil, fmt.Errorf("config: SESSION_TTL deve ser positivo, recebido %s", config.Session.TTL)
	}

	if config.Upload.MaxSizeMB <= 0 {
		return nil, fmt.Errorf("config: MAX_UPLOAD_MB deve ser positivo, recebido %d", config.Upload.MaxSizeMB)
	}

	return config, nil
}

// Address retorna o endereço host:porta do servidor HTTP
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// loadEnvFile tenta carregar o .env a partir do diretório atual e dos diretórios acima
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
