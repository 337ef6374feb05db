package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Cron         CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BILLWISE_APP_ENV" required:"true"`
	Port         string `envconfig:"BILLWISE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BILLWISE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BILLWISE_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"BILLWISE_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BILLWISE_DB_DSN"`
	Driver string `envconfig:"BILLWISE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BILLWISE_DB_HOST"`
	LegacyPort     int    `envconfig:"BILLWISE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BILLWISE_DB_USER"`
	LegacyPassword string `envconfig:"BILLWISE_DB_PASSWORD"`
	LegacyName     string `envconfig:"BILLWISE_DB_NAME"`
	LegacySSLMode  string `envconfig:"BILLWISE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BILLWISE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BILLWISE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BILLWISE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BILLWISE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BILLWISE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BILLWISE_REDIS_ADDR"`
	Password     string        `envconfig:"BILLWISE_REDIS_PASSWORD"`
	DB           int           `envconfig:"BILLWISE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BILLWISE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BILLWISE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BILLWISE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BILLWISE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BILLWISE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BILLWISE_AUTO_MIGRATE" default:"false"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"BILLWISE_CRON_INTERVAL" default:"24h"`
	LockTTL  time.Duration `envconfig:"BILLWISE_CRON_LOCK_TTL" default:"25h"`
	Lookback time.Duration `envconfig:"BILLWISE_CRON_SALES_LOOKBACK" default:"720h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
