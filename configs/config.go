package configs

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/williamsgomess/seubarriga-api/internal/logger"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Addr            string        `mapstructure:"addr"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"server"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	JWT struct {
		SECRET string        `mapstructure:"secret"`
		TTL    time.Duration `mapstructure:"ttl"`
	} `mapstructure:"jwt"`
	Seed struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"seed"`
	Telemetry struct {
		ServiceName  string `mapstructure:"service_name"`
		Environment  string `mapstructure:"environment"`
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"telemetry"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("seed.enabled", false)
	v.SetDefault("telemetry.service_name", "seubarriga-api")
	v.SetDefault("telemetry.environment", "development")
	v.SetDefault("telemetry.otlp_endpoint", "")
}

// Load reads config.yaml from path, letting environment variables such as
// DB_DSN and JWT_SECRET override file values. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	var fileLookupError viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &fileLookupError) {
			return Config{}, err
		}
		logger.Log.Warn("config file not found, using defaults and environment", zap.String("path", path))
	}

	// Keys absent from the file are only seen by Unmarshal once bound.
	for _, key := range []string{"db.dsn", "jwt.secret"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig() {
	cfg, err := Load("./configs")
	if err != nil {
		logger.Log.Fatal("failed to read config", zap.Error(err))
	}
	if cfg.JWT.SECRET == "" {
		logger.Log.Fatal("jwt.secret is required")
	}
	AppConfig = cfg
}
