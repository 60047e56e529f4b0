package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           int      `yaml:"port"`
	DatabaseURL    string   `yaml:"database_url"`
	DatabaseType   string   `yaml:"database_type"`
	AdminKeySalt   string   `yaml:"admin_key_salt"`
	SurveySlugSalt string   `yaml:"survey_slug_salt"`
	BaseURL        string   `yaml:"base_url"`
	LogLevel       string   `yaml:"log_level"`
	CORSOrigins    []string `yaml:"cors_origins"`
}

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

// ParseFlags builds the configuration. Precedence, highest first:
// CLI flags, environment (including the dotenv file), YAML config file,
// defaults.
func ParseFlags(args []string) (Config, error) {
	var cli Config
	var configPath, envPath, origins string

	fset := flag.NewFlagSet("quickly-survey", flag.ContinueOnError)

	fset.StringVar(&configPath, "c", "", "YAML config file")
	fset.StringVar(&envPath, "env", ".env", "dotenv file")

	// Network config (can be CLI args or env)
	fset.IntVar(&cli.Port, "p", 0, "Server port")
	fset.StringVar(&cli.DatabaseURL, "d", "", "Database URL")
	fset.StringVar(&cli.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fset.StringVar(&cli.BaseURL, "base-url", "", "Public base URL for share links")
	fset.StringVar(&cli.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fset.StringVar(&origins, "cors-origins", "", "Comma separated allowed CORS origins")

	// Secrets (prefer env variables, but allow CLI for dev)
	fset.StringVar(&cli.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fset.StringVar(&cli.SurveySlugSalt, "slug-salt", "", "Survey slug salt (prefer env)")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}
	cli.CORSOrigins = splitList(origins)

	// godotenv never overrides variables that are already set
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envPath, err)
	}

	var cfg Config
	if configPath != "" {
		fileCfg, err := loadFile(configPath)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}

	env, err := fromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg = merge(cfg, env)
	cfg = merge(cfg, cli)

	// Defaults
	if cfg.Port == 0 {
		cfg.Port = 3318
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = DatabaseSQLite
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://quickly-survey.com"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, validate(cfg)
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func fromEnv() (Config, error) {
	cfg := Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabaseType:   os.Getenv("DATABASE_TYPE"),
		AdminKeySalt:   os.Getenv("ADMIN_KEY_SALT"),
		SurveySlugSalt: os.Getenv("SURVEY_SLUG_SALT"),
		BaseURL:        os.Getenv("BASE_URL"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		CORSOrigins:    splitList(os.Getenv("CORS_ORIGINS")),
	}
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}
	return cfg, nil
}

// merge overlays the non-zero fields of top onto base.
func merge(base, top Config) Config {
	if top.Port != 0 {
		base.Port = top.Port
	}
	if top.DatabaseURL != "" {
		base.DatabaseURL = top.DatabaseURL
	}
	if top.DatabaseType != "" {
		base.DatabaseType = top.DatabaseType
	}
	if top.AdminKeySalt != "" {
		base.AdminKeySalt = top.AdminKeySalt
	}
	if top.SurveySlugSalt != "" {
		base.SurveySlugSalt = top.SurveySlugSalt
	}
	if top.BaseURL != "" {
		base.BaseURL = top.BaseURL
	}
	if top.LogLevel != "" {
		base.LogLevel = top.LogLevel
	}
	if len(top.CORSOrigins) > 0 {
		base.CORSOrigins = top.CORSOrigins
	}
	return base
}

func validate(cfg Config) error {
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
	if cfg.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		return errors.New("ADMIN_KEY_SALT required")
	}
	if cfg.SurveySlugSalt == "" {
		return errors.New("SURVEY_SLUG_SALT required")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
