package common

import (
	"fmt"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Db       DbConfig
	Server   ServerConfig
	Auth     AuthConfig
	Pipeline PipelineConfig
	Bus      BusConfig
	Push     PushConfig
	Status   StatusConfig
	Limiter  LimiterConfig
	Log      LogConfig
}

type DbConfig struct {
	Type string `env:"GUARDIAN_DB_TYPE" env-default:"file"`
	Path string `env:"GUARDIAN_DB_PATH" env-default:"guardian.db"`
	DSN  string `env:"GUARDIAN_DB_DSN"`
}

type ServerConfig struct {
	HttpHostPort string `env:"GUARDIAN_HTTP_HOST_PORT" env-default:":1080"`
	GrpcHostPort string `env:"GUARDIAN_GRPC_HOST_PORT"`
	CorsOrigins  string `env:"GUARDIAN_CORS_ORIGINS" env-default:"*"`
}

type AuthConfig struct {
	JWTSecret    string `env:"GUARDIAN_JWT_SECRET" env-required:"true"`
	JWTAlgorithm string `env:"GUARDIAN_JWT_ALGORITHM" env-default:"HS256"`
}

type PipelineConfig struct {
	TimeZone            string        `env:"GUARDIAN_TIMEZONE" env-default:"Asia/Singapore"`
	FallbackPushToken   string        `env:"GUARDIAN_FALLBACK_PUSH_TOKEN"`
	DispatchConcurrency int           `env:"GUARDIAN_DISPATCH_CONCURRENCY" env-default:"8"`
	IngestTimeout       time.Duration `env:"GUARDIAN_INGEST_TIMEOUT" env-default:"30s"`
}

type BusConfig struct {
	Type               string `env:"GUARDIAN_BUS_TYPE" env-default:"mqtt"`
	Namespace          string `env:"GUARDIAN_BUS_NAMESPACE" env-default:"guardiancare"`
	MQTTBrokerURL      string `env:"MQTT_BROKER_URL" env-default:"tcp://localhost:1883"`
	MQTTUsername       string `env:"MQTT_USERNAME"`
	MQTTPassword       string `env:"MQTT_PASSWORD"`
	MQTTClientID       string `env:"MQTT_CLIENT_ID"`
	PubSubProjectID    string `env:"PUBSUB_PROJECT_ID"`
	PubSubSubscription string `env:"PUBSUB_SUBSCRIPTION"`
}

type PushConfig struct {
	Provider        string `env:"GUARDIAN_PUSH_PROVIDER" env-default:"fcm"`
	CredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE"`
}

type StatusConfig struct {
	Store         string        `env:"GUARDIAN_STATUS_STORE" env-default:"db"`
	RedisAddr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" env-default:"0"`
	TTL           time.Duration `env:"GUARDIAN_STATUS_TTL" env-default:"24h"`
}

type LimiterConfig struct {
	DefaultRate  float64 `env:"GUARDIAN_DEFAULT_RATE" env-default:"5"`
	DefaultBurst int     `env:"GUARDIAN_DEFAULT_BURST" env-default:"10"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
	Dir   string `env:"LOG_DIR"`
}

// LoadConfig reads the configuration from the process environment. Callers
// load .env files beforehand.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains([]string{DbTypeFile, DbTypeMemory, DbTypePostgres}, c.Db.Type) {
		return fmt.Errorf("unknown GUARDIAN_DB_TYPE %q", c.Db.Type)
	}
	if c.Db.Type == DbTypePostgres && c.Db.DSN == "" {
		return fmt.Errorf("GUARDIAN_DB_DSN is required for postgres")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("GUARDIAN_JWT_SECRET must not be empty")
	}
	if !slices.Contains([]string{"HS256", "HS384", "HS512"}, c.Auth.JWTAlgorithm) {
		return fmt.Errorf("unsupported GUARDIAN_JWT_ALGORITHM %q", c.Auth.JWTAlgorithm)
	}
	if _, err := time.LoadLocation(c.Pipeline.TimeZone); err != nil {
		return fmt.Errorf("invalid GUARDIAN_TIMEZONE %q: %w", c.Pipeline.TimeZone, err)
	}
	if c.Pipeline.DispatchConcurrency < 1 {
		return fmt.Errorf("GUARDIAN_DISPATCH_CONCURRENCY must be positive")
	}
	if c.Pipeline.IngestTimeout <= 0 {
		return fmt.Errorf("GUARDIAN_INGEST_TIMEOUT must be positive")
	}
	switch c.Bus.Type {
	case BusTypeMQTT, BusTypeNone:
	case BusTypePubSub:
		if c.Bus.PubSubProjectID == "" || c.Bus.PubSubSubscription == "" {
			return fmt.Errorf("PUBSUB_PROJECT_ID and PUBSUB_SUBSCRIPTION are required for pubsub")
		}
	default:
		return fmt.Errorf("unknown GUARDIAN_BUS_TYPE %q", c.Bus.Type)
	}
	if !slices.Contains([]string{PushProviderFCM, PushProviderLog}, c.Push.Provider) {
		return fmt.Errorf("unknown GUARDIAN_PUSH_PROVIDER %q", c.Push.Provider)
	}
	if !slices.Contains([]string{StatusStoreDb, StatusStoreRedis}, c.Status.Store) {
		return fmt.Errorf("unknown GUARDIAN_STATUS_STORE %q", c.Status.Store)
	}
	if c.Limiter.DefaultRate <= 0 || c.Limiter.DefaultBurst <= 0 {
		return fmt.Errorf("GUARDIAN_DEFAULT_RATE and GUARDIAN_DEFAULT_BURST must be positive")
	}
	return nil
}
