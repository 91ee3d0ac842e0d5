package config

// EnvPrefix is empty because every variable already carries the
// BALANCESHEET_ prefix in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "BALANCESHEET_APP_ENV"
	EnvPort   = "BALANCESHEET_APP_PORT"

	EnvDBDSN  = "BALANCESHEET_DB_DSN"
	EnvDBHost = "BALANCESHEET_DB_HOST"
	EnvDBUser = "BALANCESHEET_DB_USER"
	EnvDBName = "BALANCESHEET_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
