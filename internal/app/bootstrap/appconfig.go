// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, log level, CORS, body limits).
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// PageSize is the number of records per page on POST /records/page/{page}.
	PageSize int

	// Audit logging: "all" (db+log), "db", "log", or "off"
	AuditLogAdmin  string
	AuditLogRecord string

	// WriteRateLimit caps write requests per client IP per minute. 0 disables it.
	WriteRateLimit int

	// TrustProxyHeaders takes the client IP from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that sets them.
	TrustProxyHeaders bool

	// SeedFile is an optional YAML file of departments, sections and users
	// loaded at startup.
	SeedFile string
}
