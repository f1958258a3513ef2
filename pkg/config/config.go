package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

type Config struct {
	AppEnv  string `mapstructure:"APP_ENV"`
	AppName string `mapstructure:"APP_NAME"`
	TLS     struct {
		Enable   bool   `mapstructure:"ENABLE"`
		CertPath string `mapstructure:"CERT_PATH"`
		KeyPath  string `mapstructure:"KEY_PATH"`
	} `mapstructure:"TLS"`
	Server struct {
		Addr         string        `mapstructure:"ADDR"`
		ReadTimeout  time.Duration `mapstructure:"READ_TIMEOUT"`
		WriteTimeout time.Duration `mapstructure:"WRITE_TIMEOUT"`
		IdleTimeout  time.Duration `mapstructure:"IDLE_TIMEOUT"`
	} `mapstructure:"SERVER"`
	Model struct {
		Provider string        `mapstructure:"PROVIDER"`
		Name     string        `mapstructure:"NAME"`
		Endpoint string        `mapstructure:"ENDPOINT"`
		APIKey   string        `mapstructure:"API_KEY"`
		Timeout  time.Duration `mapstructure:"TIMEOUT"`
	} `mapstructure:"MODEL"`
	Storage struct {
		UploadDir string `mapstructure:"UPLOAD_DIR"`
		OutputDir string `mapstructure:"OUTPUT_DIR"`
	} `mapstructure:"STORAGE"`
	Worker struct {
		Count     int `mapstructure:"COUNT"`
		QueueSize int `mapstructure:"QUEUE_SIZE"`
	} `mapstructure:"WORKER"`
}

var Module = fx.Module("config", fx.Provide(LoadConfig))

// LoadConfig reads an optional config.yaml and overlays environment
// variables. Every key carries a default so the service boots with no
// configuration present at all.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "datasetforge")

	v.SetDefault("TLS.ENABLE", false)
	v.SetDefault("TLS.CERT_PATH", "")
	v.SetDefault("TLS.KEY_PATH", "")

	v.SetDefault("SERVER.ADDR", ":8080")
	v.SetDefault("SERVER.READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER.WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER.IDLE_TIMEOUT", 60*time.Second)

	v.SetDefault("MODEL.PROVIDER", "ollama")
	v.SetDefault("MODEL.NAME", "gemma3:4b-it-fp16")
	v.SetDefault("MODEL.ENDPOINT", "")
	v.SetDefault("MODEL.API_KEY", "")
	v.SetDefault("MODEL.TIMEOUT", 2*time.Minute)

	v.SetDefault("STORAGE.UPLOAD_DIR", "uploads")
	v.SetDefault("STORAGE.OUTPUT_DIR", "output")

	v.SetDefault("WORKER.COUNT", 4)
	v.SetDefault("WORKER.QUEUE_SIZE", 64)
}
