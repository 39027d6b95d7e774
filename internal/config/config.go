package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env  string `env:"ENV" env-required:"true"`
	HTTP HTTPConfig
	JWT  JWTConfig
	Auth AuthConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:""`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type JWTConfig struct {
	Issuer         string        `env:"JWT_ISSUER" env-default:"go-taskboard"`
	SigningKey     string        `env:"JWT_SIGNING_KEY" env-required:"true"`
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"1h"`
}

type AuthConfig struct {
	// SimulatedDelay is how long a login pretends to talk to a backend.
	SimulatedDelay time.Duration `env:"AUTH_SIMULATED_DELAY" env-default:"500ms"`
	DemoPassword   string        `env:"AUTH_DEMO_PASSWORD" env-required:"true"`
}
