package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	CORS        CORSConfig
	Log         LogConfig
	Cohort      CohortConfig
	Leaderboard LeaderboardConfig
	Exports     ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CohortConfig tunes week-roster seeding when a week is opened for the
// first time: attendees split into discussion groups, absentees parked in
// a catch-up group handled by a dedicated TA.
type CohortConfig struct {
	Name          string
	TotalWeeks    int
	GroupSize     int
	GroupCount    int
	CatchUpGroup  string
	CatchUpTA     string
	DiscussionTAs []string
}

// LeaderboardConfig governs cross-week score aggregation exposure.
type LeaderboardConfig struct {
	Enabled  bool
	CacheTTL time.Duration
}

// ExportsConfig controls roster export rendering.
type ExportsConfig struct {
	PDFEnabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cohort = CohortConfig{
		Name:          v.GetString("COHORT_NAME"),
		TotalWeeks:    v.GetInt("COHORT_TOTAL_WEEKS"),
		GroupSize:     v.GetInt("COHORT_GROUP_SIZE"),
		GroupCount:    v.GetInt("COHORT_GROUP_COUNT"),
		CatchUpGroup:  v.GetString("COHORT_CATCH_UP_GROUP"),
		CatchUpTA:     v.GetString("COHORT_CATCH_UP_TA"),
		DiscussionTAs: splitAndTrim(v.GetString("COHORT_DISCUSSION_TAS")),
	}

	cfg.Leaderboard = LeaderboardConfig{
		Enabled:  v.GetBool("ENABLE_LEADERBOARD"),
		CacheTTL: parseDuration(v.GetString("LEADERBOARD_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Exports = ExportsConfig{
		PDFEnabled: v.GetBool("ENABLE_PDF_EXPORT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "cohort_admin")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("COHORT_NAME", "cohort")
	v.SetDefault("COHORT_TOTAL_WEEKS", 6)
	v.SetDefault("COHORT_GROUP_SIZE", 6)
	v.SetDefault("COHORT_GROUP_COUNT", 5)
	v.SetDefault("COHORT_CATCH_UP_GROUP", "Group 6")
	v.SetDefault("COHORT_CATCH_UP_TA", "Setu")
	v.SetDefault("COHORT_DISCUSSION_TAS", "Anmol,Bala,Raj,Delcin,Beulah")

	v.SetDefault("ENABLE_LEADERBOARD", true)
	v.SetDefault("LEADERBOARD_CACHE_TTL", "5m")

	v.SetDefault("ENABLE_PDF_EXPORT", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
