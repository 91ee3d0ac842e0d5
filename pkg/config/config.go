package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Report       ReportConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"BALANCESHEET_APP_ENV" required:"true"`
	Port         string `envconfig:"BALANCESHEET_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BALANCESHEET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BALANCESHEET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"BALANCESHEET_DB_DSN"`

	LegacyHost     string `envconfig:"BALANCESHEET_DB_HOST"`
	LegacyPort     int    `envconfig:"BALANCESHEET_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BALANCESHEET_DB_USER"`
	LegacyPassword string `envconfig:"BALANCESHEET_DB_PASSWORD"`
	LegacyName     string `envconfig:"BALANCESHEET_DB_NAME"`
	LegacySSLMode  string `envconfig:"BALANCESHEET_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BALANCESHEET_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"BALANCESHEET_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"BALANCESHEET_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BALANCESHEET_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ReportConfig carries the household budget baselines the summary
// endpoints and report headers rely on.
type ReportConfig struct {
	FoodMonthlyBase    decimal.Decimal `envconfig:"BALANCESHEET_FOOD_MONTHLY_BASE" default:"600"`
	FoodReserveDefault decimal.Decimal `envconfig:"BALANCESHEET_FOOD_RESERVE_DEFAULT" default:"350"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BALANCESHEET_AUTO_MIGRATE" default:"false"`
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
