package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

const SupportedVersion = "1"

// Config represents the complete configuration structure
type Config struct {
	Version string        `yaml:"version" default:"1"`
	Site    SiteConfig    `yaml:"site"`
	Server  ServerConfig  `yaml:"server"`
	Theme   ThemeConfig   `yaml:"theme"`
	Blog    BlogConfig    `yaml:"blog"`
	Storage StorageConfig `yaml:"storage"`
	Contact ContactConfig `yaml:"contact"`
	Notify  NotifyConfig  `yaml:"notifications"`
	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"console"`
}

type SiteConfig struct {
	Name    string `yaml:"name" default:"Folio"`
	Owner   string `yaml:"owner" default:"Jane Doe"`
	Tagline string `yaml:"tagline" default:"Designer, developer and writer"`
}

type ServerConfig struct {
	Host string `yaml:"host" default:"0.0.0.0"`
	Port string `yaml:"port" default:"12600"`
}

type ThemeConfig struct {
	Default            string       `yaml:"default" default:"light"`
	SyntaxHighlighting SyntaxConfig `yaml:"syntax_highlighting"`
}

type SyntaxConfig struct {
	DefaultDark  string `yaml:"default_dark" default:"gruvbox"`
	DefaultLight string `yaml:"default_light" default:"catppuccin-latte"`
}

type BlogConfig struct {
	Key         string   `yaml:"key" default:"blogPosts"`
	RecentCount int      `yaml:"recent_count" default:"3"`
	Categories  []string `yaml:"categories" default:"Web Design,CSS,JavaScript,Tutorial,Personal"`
}

type StorageConfig struct {
	Backend     string       `yaml:"backend" default:"file"`
	Compression string       `yaml:"compression" default:"none"`
	File        FileConfig   `yaml:"file"`
	SQLite      SQLiteConfig `yaml:"sqlite"`
	S3          S3Config     `yaml:"s3"`
	Redis       RedisConfig  `yaml:"redis"`
}

type FileConfig struct {
	Dir string `yaml:"dir" default:"data"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" default:"./folio.db"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket" default:"folio"`
	Endpoint        string `yaml:"endpoint" default:""`
	Region          string `yaml:"region" default:"auto"`
	Prefix          string `yaml:"prefix" default:""`
	AccessKeyID     string `yaml:"access_key_id" default:""`
	SecretAccessKey string `yaml:"secret_access_key" default:""`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" default:"localhost:6379"`
	Password string `yaml:"password" default:""`
	DB       int    `yaml:"db" default:"0"`
	Prefix   string `yaml:"prefix" default:"folio:"`
}

type ContactConfig struct {
	SubmitDelayMs int `yaml:"submit_delay_ms" default:"2000"`
}

type NotifyConfig struct {
	DismissAfterMs int `yaml:"dismiss_after_ms" default:"3000"`
}

// Environment variables that take precedence over the file. Secrets are
// expected to come from the environment (or a .env file) rather than YAML.
const (
	EnvLogLevel          = "FOLIO_LOG_LEVEL"
	EnvStorageBackend    = "FOLIO_STORAGE_BACKEND"
	EnvS3AccessKeyID     = "FOLIO_S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "FOLIO_S3_SECRET_ACCESS_KEY"
	EnvRedisPassword     = "FOLIO_REDIS_PASSWORD"
)

// LoadConfig reads the YAML file at path on top of the defaults. A missing
// file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	data, err := os.ReadFile(path)
	if err != nil {
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Version != SupportedVersion {
		return fmt.Errorf("unsupported configuration version %q (want %q)", c.Version, SupportedVersion)
	}

	switch c.Storage.Backend {
	case BackendMemory, BackendFile, BackendSQLite, BackendS3, BackendRedis:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	switch c.Storage.Compression {
	case CompressionNone, CompressionZstd, CompressionGzip:
	default:
		return fmt.Errorf("unknown storage compression %q", c.Storage.Compression)
	}

	if c.Blog.Key == "" {
		return fmt.Errorf("blog key must not be empty")
	}
	if c.Blog.RecentCount < 0 {
		return fmt.Errorf("blog recent_count must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func applyEnv(config *Config) {
	overrides := []struct {
		env    string
		target *string
	}{
		{EnvLogLevel, &config.Logging.Level},
		{EnvStorageBackend, &config.Storage.Backend},
		{EnvS3AccessKeyID, &config.Storage.S3.AccessKeyID},
		{EnvS3SecretAccessKey, &config.Storage.S3.SecretAccessKey},
		{EnvRedisPassword, &config.Storage.Redis.Password},
	}

	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			*o.target = v
		}
	}
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int, reflect.Int64:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
