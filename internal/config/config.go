package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort         int    `json:"server_port"`
	JWTSecretKey       string `json:"jwt_secret_key"`
	JWTExpirationHours int    `json:"jwt_expiration_hours"`

	// GlobalRateLimit is the per-IP middleware budget (requests/minute). The
	// per-endpoint fixed-window limits live in the database and are checked by
	// the rate limit service, not here.
	GlobalRateLimit int `json:"global_rate_limit"`

	// Replay guard tuning.
	SignatureSkewSeconds int `json:"signature_skew_seconds"`
	NonceTTLMinutes      int `json:"nonce_ttl_minutes"`

	// Default fixed-window budgets for the abuse-prone entry points.
	JoinRateLimit       int `json:"join_rate_limit"`
	OrderRateLimit      int `json:"order_rate_limit"`
	RateLimitWindowMins int `json:"rate_limit_window_mins"`
}

func Load() (*Config, error) {
	serverPort, _ := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if serverPort == 0 {
		serverPort = 10000
	}

	jwtExpirationHours, _ := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS"))
	if jwtExpirationHours == 0 {
		jwtExpirationHours = 24
	}

	globalRateLimit, _ := strconv.Atoi(os.Getenv("GLOBAL_RATE_LIMIT"))
	if globalRateLimit == 0 {
		globalRateLimit = 10000 // requests per minute per IP
	}

	return &Config{
		ServerPort:           serverPort,
		JWTSecretKey:         os.Getenv("JWT_SECRET_KEY"),
		JWTExpirationHours:   jwtExpirationHours,
		GlobalRateLimit:      globalRateLimit,
		SignatureSkewSeconds: getEnvIntWithDefault("SIGNATURE_SKEW_SECONDS", 300),
		NonceTTLMinutes:      getEnvIntWithDefault("NONCE_TTL_MINUTES", 10),
		JoinRateLimit:        getEnvIntWithDefault("JOIN_RATE_LIMIT", 5),
		OrderRateLimit:       getEnvIntWithDefault("ORDER_RATE_LIMIT", 30),
		RateLimitWindowMins:  getEnvIntWithDefault("RATE_LIMIT_WINDOW_MINUTES", 60),
	}, nil
}
