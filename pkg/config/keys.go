package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for fields without a tag.
const EnvPrefix = "BILLWISE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "BILLWISE_APP_ENV"
	EnvPort     = "BILLWISE_APP_PORT"
	EnvDBDSN    = "BILLWISE_DB_DSN"
	EnvDBHost   = "BILLWISE_DB_HOST"
	EnvDBUser   = "BILLWISE_DB_USER"
	EnvDBName   = "BILLWISE_DB_NAME"
	EnvRedisURL = "BILLWISE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
