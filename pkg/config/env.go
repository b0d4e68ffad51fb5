package config

// Environment variable names recognized by the service.
const (
	EnvPrefix = "donations"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "DONATIONS_DB_DSN"
	EnvDBHost = "DONATIONS_DB_HOST"
	EnvDBUser = "DONATIONS_DB_USER"
	EnvDBName = "DONATIONS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
