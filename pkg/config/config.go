package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LedgerAccountsConfig maps the posting roles to chart-of-accounts codes.
// Defaults follow the standard chart; deployments with a custom chart
// override them via environment.
type LedgerAccountsConfig struct {
	Receivable string // LEDGER_ACCOUNT_RECEIVABLE, debited with invoice totals
	Revenue    string // LEDGER_ACCOUNT_REVENUE, credited with subtotals
	TaxPayable string // LEDGER_ACCOUNT_TAX_PAYABLE, credited with tax amounts
}

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	LedgerAccounts LedgerAccountsConfig
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "practice-backend")
	viper.SetDefault("LEDGER_ACCOUNT_RECEIVABLE", "1200")
	viper.SetDefault("LEDGER_ACCOUNT_REVENUE", "4000")
	viper.SetDefault("LEDGER_ACCOUNT_TAX_PAYABLE", "2100")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.LedgerAccounts = LedgerAccountsConfig{
		Receivable: viper.GetString("LEDGER_ACCOUNT_RECEIVABLE"),
		Revenue:    viper.GetString("LEDGER_ACCOUNT_REVENUE"),
		TaxPayable: viper.GetString("LEDGER_ACCOUNT_TAX_PAYABLE"),
	}

	return cfg, nil
}
