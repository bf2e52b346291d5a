package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the catalog SQLite database
	DefaultDatabasePath = "./catalog.db"

	// DefaultEnvFile is loaded into the environment at startup when present
	DefaultEnvFile = ".env"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
