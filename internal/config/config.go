package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	CORS     CORSConfig
	Calendar CalendarConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
	SSEExpiration    string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string
	Version  string
	Port     int
	Env      string
	LogLevel string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// CalendarConfig holds layout engine and holiday feed settings.
type CalendarConfig struct {
	Timezone        string
	Location        *time.Location
	WeekStart       time.Weekday
	MaxVisible      int
	MalformedPolicy string
	MemoSize        int

	CatalogPath string
	Catalog     Catalog

	HolidayFeedURL  string
	HolidayCountry  string
	HolidaySyncSpec string
	CachePurgeSpec  string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, reading process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 2)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "porest"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: maxConns,
		MinConns: minConns,
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Name:     getEnv("APP_NAME", "porest-calendar"),
		Version:  getEnv("APP_VERSION", "v1.0.0"),
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
		SSEExpiration:    getEnv("JWT_SSE_EXPIRATION_TIME", "5m"),
	}

	origins := getEnvSlice("CORS_ALLOWED_ORIGINS")
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	config.CORS = CORSConfig{AllowedOrigins: origins}

	// Calendar configuration
	cal, err := loadCalendar()
	if err != nil {
		return nil, err
	}
	config.Calendar = cal

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadCalendar() (CalendarConfig, error) {
	cal := CalendarConfig{
		Timezone:        getEnv("CALENDAR_TIMEZONE", "Asia/Seoul"),
		MalformedPolicy: getEnv("CALENDAR_MALFORMED_POLICY", "coerce"),
		CatalogPath:     getEnv("CALENDAR_CATALOG_PATH", ""),
		HolidayFeedURL:  getEnv("HOLIDAY_FEED_URL", ""),
		HolidayCountry:  getEnv("HOLIDAY_COUNTRY", "KR"),
		HolidaySyncSpec: getEnv("HOLIDAY_SYNC_SCHEDULE", "0 3 * * *"),
		CachePurgeSpec:  getEnv("LAYOUT_CACHE_PURGE_SCHEDULE", "@hourly"),
	}

	loc, err := time.LoadLocation(cal.Timezone)
	if err != nil {
		return cal, fmt.Errorf("invalid CALENDAR_TIMEZONE: %w", err)
	}
	cal.Location = loc

	ws, err := ParseWeekday(getEnv("CALENDAR_WEEK_START", "sunday"))
	if err != nil {
		return cal, fmt.Errorf("invalid CALENDAR_WEEK_START: %w", err)
	}
	cal.WeekStart = ws

	if cal.MaxVisible, err = getEnvInt("CALENDAR_MAX_VISIBLE", 3); err != nil {
		return cal, err
	}
	if cal.MemoSize, err = getEnvInt("LAYOUT_CACHE_SIZE", 256); err != nil {
		return cal, err
	}

	cal.Catalog = DefaultCatalog()
	if cal.CatalogPath != "" {
		if cal.Catalog, err = LoadCatalog(cal.CatalogPath); err != nil {
			return cal, err
		}
	}
	return cal, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.ParseDuration(c.JWT.SSEExpiration); err != nil {
		return fmt.Errorf("invalid JWT_SSE_EXPIRATION_TIME: %w", err)
	}
	if c.Calendar.MaxVisible < 1 {
		return fmt.Errorf("CALENDAR_MAX_VISIBLE must be at least 1")
	}
	switch c.Calendar.MalformedPolicy {
	case "coerce", "drop":
	default:
		return fmt.Errorf("CALENDAR_MALFORMED_POLICY must be coerce or drop")
	}
	return c.Calendar.Catalog.Validate()
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ParseWeekday accepts an English day name or its 0-6 number.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 6 {
		return time.Weekday(n), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	result := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
