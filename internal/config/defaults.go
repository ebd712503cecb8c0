package config

import "time"

// Environment names recognised by [App.Env].
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage drivers recognised by [DB.Driver].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Mail providers recognised by [Mail.Provider].
const (
	MailProviderLog  = "log"
	MailProviderSMTP = "smtp"
	MailProviderHTTP = "http"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env:           EnvDevelopment,
			LogLevel:      "info",
			TokenIssuer:   "go-todo-list",
			TokenDuration: 7 * 24 * time.Hour,
			ResetTokenTTL: 10 * time.Minute,
			FrontendURL:   "http://localhost:5173",
		},
		Storage: Storage{
			DB: DB{
				Driver:       DriverPostgres,
				MaxOpenConns: 10,
			},
		},
		Server: Server{
			HTTPAddress:     "0.0.0.0:5000",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Mail: Mail{
			Provider: MailProviderLog,
			From:     "noreply@todo.local",
			SMTP:     SMTP{Port: 587},
			Timeout:  10 * time.Second,
		},
		RateLimit: RateLimit{
			Requests: 20,
			Window:   time.Minute,
		},
		Workers: Workers{
			ResetSweepSchedule: "@every 15m",
		},
	}
}
