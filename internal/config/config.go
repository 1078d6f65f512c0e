package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains client configuration parameters.
type Config struct {
	LogLevel int      `env:"LOG_LEVEL" envDefault:"0"`
	API      API      `envPrefix:"API_"`
	Session  Session  `envPrefix:"SESSION_"`
	Proof    Proof    `envPrefix:"PROOF_"`
	Cashback Cashback `envPrefix:"CASHBACK_"`
	Admin    Admin    `envPrefix:"ADMIN_"`
	Bank     Bank     `envPrefix:"BANK_"`

	// RegistrationFee is the base fee in PKR before referral discounts.
	RegistrationFee int `env:"REGISTRATION_FEE" envDefault:"1500"`
	// PublicOrigin is used to build shareable referral links.
	PublicOrigin string `env:"PUBLIC_ORIGIN" envDefault:"http://localhost:3000"`
}

// API contains backend connection parameters.
type API struct {
	BaseURL        string        `env:"BASE_URL" envDefault:"http://localhost:5000/api"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	// CAFile, CertFile and KeyFile switch the client to a custom TLS setup.
	CAFile   string `env:"CA_FILE"`
	CertFile string `env:"CERT_FILE"`
	KeyFile  string `env:"KEY_FILE"`
}

// CustomTLS reports whether any TLS file is configured.
func (a API) CustomTLS() bool {
	return a.CAFile != "" || a.CertFile != ""
}

// Session contains client-side session storage parameters.
type Session struct {
	Dir string `env:"DIR" envDefault:".ttportal"`
}

// Proof contains payment proof acceptance parameters.
type Proof struct {
	MaxBytes     int64    `env:"MAX_BYTES" envDefault:"5242880"`
	AllowedTypes []string `env:"ALLOWED_TYPES" envDefault:"image/jpeg,image/png,image/gif,image/webp" envSeparator:","`
}

// Cashback contains referral cashback tier bounds.
type Cashback struct {
	MinCount    int `env:"MIN_COUNT" envDefault:"3"`
	MaxCount    int `env:"MAX_COUNT" envDefault:"30"`
	MinCashback int `env:"MIN_AMOUNT" envDefault:"150"`
	MaxCashback int `env:"MAX_AMOUNT" envDefault:"1500"`
}

// Admin contains admin portal parameters.
type Admin struct {
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"30s"`
	FlashDuration   time.Duration `env:"FLASH_DURATION" envDefault:"3s"`
}

// Bank contains the transfer details shown during registration.
type Bank struct {
	AccountHolder string   `env:"ACCOUNT_HOLDER" envDefault:"MUHAMMAD OSAMA QASEEM"`
	AccountNumber string   `env:"ACCOUNT_NUMBER" envDefault:"04230981000218015"`
	Name          string   `env:"NAME" envDefault:"Bank Al Habib"`
	IBAN          string   `env:"IBAN" envDefault:"PK32BAHL0423098100021801"`
	ContactPhone  string   `env:"CONTACT_PHONE" envDefault:"+92 301 0405529"`
	WhatsApp      string   `env:"WHATSAPP" envDefault:"+92 301 0405529"`
	Instructions  []string `env:"INSTRUCTIONS" envSeparator:"|" envDefault:"Transfer the exact amount shown in the registration form|Include your full name in the transfer description/reference|Take a screenshot of the successful transfer confirmation|Upload the screenshot to complete your registration"`
}

// NewConfig loads configuration from environment variables.
// A .env file in the working directory is applied first when present.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.API.CertFile != "" && cfg.API.KeyFile == "" {
		return nil, errors.New("API_KEY_FILE is required with API_CERT_FILE")
	}
	if cfg.Proof.MaxBytes <= 0 {
		return nil, fmt.Errorf("invalid proof size limit: %d", cfg.Proof.MaxBytes)
	}

	return &cfg, nil
}
