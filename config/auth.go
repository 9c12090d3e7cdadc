package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthConfig contains session and password hashing configuration.
type AuthConfig struct {
	// SessionTTL is the sliding session expiry window, renewed on each login.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"1h"`

	// BcryptCost is the bcrypt cost factor for password hashing. Kept
	// configurable so test environments can use a cheap cost.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = time.Hour
	}
	if a.BcryptCost < bcrypt.MinCost || a.BcryptCost > bcrypt.MaxCost {
		a.BcryptCost = bcrypt.DefaultCost
	}
}
