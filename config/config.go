package config

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Ledger  LedgerConfig
	Consult ConsultConfig
}

type AppConfig struct {
	Port          string
	Env           string
	AllowedOrigin string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// LedgerConfig configures the Hedera integration.
// Mode "mirror" talks to the token service and mirror node over HTTP;
// mode "local" uses the deterministic in-process client (dev and tests only).
type LedgerConfig struct {
	Mode            string
	MirrorNodeURL   string
	TokenServiceURL string
	Timeout         time.Duration
}

type ConsultConfig struct {
	// FeeHBAR is the flat consultation fee charged for every booking,
	// regardless of doctor.
	FeeHBAR decimal.Decimal
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	ledgerTimeout, err := time.ParseDuration(viper.GetString("LEDGER_TIMEOUT"))
	if err != nil {
		ledgerTimeout = 10 * time.Second
	}

	ledgerMode := viper.GetString("LEDGER_MODE")
	if ledgerMode == "" {
		ledgerMode = "local"
	}

	fee, err := decimal.NewFromString(viper.GetString("CONSULT_FEE_HBAR"))
	if err != nil {
		fee = decimal.NewFromInt(150)
	}

	config := &Config{
		App: AppConfig{
			Port:          viper.GetString("APP_PORT"),
			Env:           viper.GetString("APP_ENV"),
			AllowedOrigin: viper.GetString("APP_ALLOWED_ORIGIN"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Ledger: LedgerConfig{
			Mode:            ledgerMode,
			MirrorNodeURL:   viper.GetString("LEDGER_MIRROR_NODE_URL"),
			TokenServiceURL: viper.GetString("LEDGER_TOKEN_SERVICE_URL"),
			Timeout:         ledgerTimeout,
		},
		Consult: ConsultConfig{
			FeeHBAR: fee,
		},
	}

	return config, nil
}
