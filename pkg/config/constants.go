package config

const (
	// EnvPrefix scopes every environment variable read by envconfig.
	EnvPrefix = "amma"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "AMMA_DB_DSN"
	EnvDBHost = "AMMA_DB_HOST"
	EnvDBUser = "AMMA_DB_USER"
	EnvDBName = "AMMA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
