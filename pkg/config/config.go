package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/cbodonnell/tycoon/pkg/auth/providers"
	"github.com/cbodonnell/tycoon/pkg/network"
	"github.com/cbodonnell/tycoon/pkg/session"
)

// EnvPrefix is prepended to the name of every environment variable
const EnvPrefix = "TYCOON_"

const (
	DefaultListenAddr    = ":8080"
	DefaultDatabaseURL   = "memory://"
	DefaultLogLevel      = "info"
	DefaultSaveQueueSize = 1024
)

// Config is the server configuration. Every flag can also be set with an
// environment variable named after it, e.g. --database-url and
// TYCOON_DATABASE_URL. Flags win over the environment.
type Config struct {
	ListenAddr              string
	DatabaseURL             string
	LogLevel                string
	SecretKey               string
	SessionTokenTTL         time.Duration
	AllowedOrigins          []string
	EventLogSize            int
	MailboxSize             int
	SaveQueueSize           int
	RateLimit               float64
	RateBurst               int
	FirebaseProjectID       string
	FirebaseCredentialsFile string
	TLSCertFile             string
	TLSKeyFile              string
}

// LoadEnvFile loads variables from a .env file into the environment without
// overriding variables that are already set. A missing file is ignored.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %v", path, err)
	}
	return nil
}

// Load parses args (without the program name) with environment fallbacks
// looked up through getenv.
func Load(args []string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	env := &envReader{getenv: getenv}

	c := &Config{}
	var origins string
	flags := flag.NewFlagSet("tycoon", flag.ContinueOnError)
	flags.StringVar(&c.ListenAddr, "listen-addr", env.string("listen-addr", DefaultListenAddr), "address to listen on")
	flags.StringVar(&c.DatabaseURL, "database-url", env.string("database-url", DefaultDatabaseURL), "memory://, sqlite://<path>, postgresql://... or redis://...")
	flags.StringVar(&c.LogLevel, "log-level", env.string("log-level", DefaultLogLevel), "Log level")
	flags.StringVar(&c.SecretKey, "secret-key", env.string("secret-key", ""), "key signing reconnect tokens (at least 16 bytes)")
	flags.DurationVar(&c.SessionTokenTTL, "session-token-ttl", env.duration("session-token-ttl", providers.DefaultSessionTokenTTL), "lifetime of reconnect tokens")
	flags.StringVar(&origins, "allowed-origins", env.string("allowed-origins", ""), "comma-separated list of allowed origins, empty allows all")
	flags.IntVar(&c.EventLogSize, "event-log-size", env.int("event-log-size", session.DefaultEventLogSize), "events kept in memory per session for replay")
	flags.IntVar(&c.MailboxSize, "mailbox-size", env.int("mailbox-size", session.DefaultMailboxSize), "requests queued per session")
	flags.IntVar(&c.SaveQueueSize, "save-queue-size", env.int("save-queue-size", DefaultSaveQueueSize), "unsaved events held per session while the store is behind")
	flags.Float64Var(&c.RateLimit, "rate-limit", env.float("rate-limit", network.DefaultRateLimit), "inbound messages per second per client")
	flags.IntVar(&c.RateBurst, "rate-burst", env.int("rate-burst", network.DefaultRateBurst), "inbound message burst per client")
	flags.StringVar(&c.FirebaseProjectID, "firebase-project-id", env.string("firebase-project-id", ""), "verify player identities with this Firebase project")
	flags.StringVar(&c.FirebaseCredentialsFile, "firebase-credentials-file", env.string("firebase-credentials-file", ""), "Firebase service account file")
	flags.StringVar(&c.TLSCertFile, "tls-cert-file", env.string("tls-cert-file", ""), "TLS certificate file")
	flags.StringVar(&c.TLSKeyFile, "tls-key-file", env.string("tls-key-file", ""), "TLS key file")
	if env.err != nil {
		return nil, env.err
	}
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			c.AllowedOrigins = append(c.AllowedOrigins, origin)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the values that have no usable default.
func (c *Config) Validate() error {
	if len(c.SecretKey) < providers.MinSecretLength {
		return fmt.Errorf("secret key must be at least %d bytes, set --secret-key or %sSECRET_KEY", providers.MinSecretLength, EnvPrefix)
	}
	u, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database url: %v", err)
	}
	switch u.Scheme {
	case "memory", "sqlite", "postgres", "postgresql", "redis", "rediss":
	default:
		return fmt.Errorf("unknown database type %q", u.Scheme)
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("tls cert and key files must be set together")
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("rate limit and burst must be positive")
	}
	if c.SaveQueueSize <= 0 {
		return fmt.Errorf("save queue size must be positive")
	}
	return nil
}

// envReader reads flag defaults from the environment and remembers the
// first malformed value.
type envReader struct {
	getenv func(string) string
	err    error
}

// key maps a flag name to its environment variable.
func key(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

func (e *envReader) string(flagName, def string) string {
	if v := e.getenv(key(flagName)); v != "" {
		return v
	}
	return def
}

func (e *envReader) int(flagName string, def int) int {
	v := e.getenv(key(flagName))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(flagName, v, err)
		return def
	}
	return n
}

func (e *envReader) float(flagName string, def float64) float64 {
	v := e.getenv(key(flagName))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(flagName, v, err)
		return def
	}
	return f
}

func (e *envReader) duration(flagName string, def time.Duration) time.Duration {
	v := e.getenv(key(flagName))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(flagName, v, err)
		return def
	}
	return d
}

func (e *envReader) fail(flagName, value string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s=%q: %v", key(flagName), value, err)
	}
}
