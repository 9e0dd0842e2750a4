package configuration

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/deptemp/pkg/logging"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if fs.FileExists(file) {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

type DatabaseOptions struct {
	Opts             string        `env:"-"`
	Driver           string        `env:"STORE_DRIVER" envDefault:"postgres"` // postgres, sqlite or memory
	URL              string        `env:"DATABASE_URL"`
	Name             string        `env:"DB_NAME" envDefault:"deptemp"`
	Host             string        `env:"DB_HOST" envDefault:"localhost"`
	Port             string        `env:"DB_PORT" envDefault:"5432"`
	User             string        `env:"DB_USER" envDefault:"postgres"`
	Password         string        `env:"DB_PASSWORD" envDefault:"postgres"`
	MaxConns         int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	StatementTimeout time.Duration `env:"DB_STATEMENT_TIMEOUT" envDefault:"5s"`
	SQLitePath       string        `env:"SQLITE_PATH" envDefault:"deptemp.db"`
	MigrateOnStart   bool          `env:"MIGRATE_ON_START" envDefault:"true"`
}

// ConnectionString prefers DATABASE_URL and falls back to the DB_* parts.
func (d *DatabaseOptions) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

func (d *DatabaseOptions) Validate() error {
	switch d.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("invalid STORE_DRIVER=%q (expected postgres|sqlite|memory)", d.Driver)
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive, got %d", d.MaxConns)
	}
	if d.StatementTimeout < 0 {
		return fmt.Errorf("DB_STATEMENT_TIMEOUT must be non-negative, got %s", d.StatementTimeout)
	}
	if d.URL != "" {
		if _, err := url.Parse(d.URL); err != nil {
			return fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
	}
	return nil
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	TempoURL    string `env:"OTEL_TEMPO_URL" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"deptemp"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

type RateLimitOptions struct {
	Enabled   bool   `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	GlobalRPS int    `env:"RATE_LIMIT_GLOBAL_RPS" envDefault:"1000"`
	Storage   string `env:"RATE_LIMIT_STORAGE" envDefault:"memory"` // memory or redis
	RedisURL  string `env:"RATE_LIMIT_REDIS_URL"`
}

// Validate checks the rate limit configuration for errors
func (r *RateLimitOptions) Validate() error {
	if r.GlobalRPS < 0 {
		return fmt.Errorf("rate limit GlobalRPS must be non-negative, got %d", r.GlobalRPS)
	}
	if r.GlobalRPS > 1000000 {
		return fmt.Errorf("rate limit GlobalRPS too high, maximum is 1,000,000, got %d", r.GlobalRPS)
	}
	if r.Storage != "memory" && r.Storage != "redis" {
		return fmt.Errorf("rate limit Storage must be 'memory' or 'redis', got '%s'", r.Storage)
	}
	if r.Storage == "redis" && r.RedisURL == "" {
		return fmt.Errorf("rate limit RedisURL is required when Storage is 'redis'")
	}
	return nil
}

type Configuration struct {
	Database      DatabaseOptions
	OpenTelemetry OpenTelemetryOptions
	Prometheus    PrometheusOptions
	RateLimit     RateLimitOptions

	Host            string        `env:"HOST" envDefault:"127.0.0.1"`
	ServerPort      int           `env:"PORT" envDefault:"8080"`
	Workers         int           `env:"WORKER" envDefault:"10"`
	SocketAddress   string        `env:"-"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogPath         string        `env:"LOG_PATH"`
	SQLLogLevel     string        `env:"SQL_LOG_LEVEL" envDefault:"debug"`
	GzipEnabled     bool          `env:"GZIP_ENABLED" envDefault:"true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// The access log looks for this header in the request, if it's not present, it will generate a random uuidv4
	RequestIDHeader    string   `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	logFile *os.File
	logger  *logrus.Logger
}

// Logger falls back to the standard logger for configurations built by hand.
func (c *Configuration) Logger() *logrus.Logger {
	if c.logger == nil {
		return logrus.StandardLogger()
	}
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	return parseLogrusLevel(c.LogLevel)
}

// PgxLogLevel maps SQL_LOG_LEVEL onto the pgx tracer levels.
func (c *Configuration) PgxLogLevel() tracelog.LogLevel {
	switch strings.ToLower(c.SQLLogLevel) {
	case "silent":
		return tracelog.LogLevelNone
	case "error":
		return tracelog.LogLevelError
	case "warn":
		return tracelog.LogLevelWarn
	case "info":
		return tracelog.LogLevelInfo
	case "debug":
		return tracelog.LogLevelDebug
	case "trace":
		return tracelog.LogLevelTrace
	default:
		return tracelog.LogLevelDebug
	}
}

func parseLogrusLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	return c.parse()
}

func (c *Configuration) parse() error {
	if err := env.Parse(c); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database configuration error: %w", err)
	}
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit configuration error: %w", err)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("WORKER must be positive, got %d", c.Workers)
	}

	if c.LogPath != "" {
		f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
		if err != nil {
			return err
		}
		c.logFile = f
		c.logger = logger
	} else {
		c.logger = logging.ConsoleLogger(c.LogrusLogLevel())
	}
	c.Database.Opts = c.Database.ConnectionString()
	c.SocketAddress = net.JoinHostPort(c.Host, strconv.Itoa(c.ServerPort))
	return nil
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
