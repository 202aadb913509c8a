package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
}

type ServerConfig struct {
	Address     string   `mapstructure:"address"`
	Port        string   `mapstructure:"port"` // Overrides the port of Address when set
	PublicDir   string   `mapstructure:"public_dir"`
	ViewsDir    string   `mapstructure:"views_dir"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// ListenAddress is the address the HTTP server binds to.
func (s ServerConfig) ListenAddress() string {
	if s.Port != "" {
		return ":" + s.Port
	}
	return s.Address
}

// Driver names accepted in database.driver.
const (
	DriverMongo = "mongo"
	DriverBolt  = "bolt"
)

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
	Path   string `mapstructure:"path"` // bbolt file, used when Driver is "bolt"
}

// S3Config points /public at a bucket. An empty BucketName serves files from disk.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// Enabled reports whether public assets come from object storage.
func (s S3Config) Enabled() bool {
	return s.BucketName != ""
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, database.uri -> DATABASE_URI
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// Conventional hosting variables.
	_ = v.BindEnv("server.port", "PORT", "SERVER_PORT")
	_ = v.BindEnv("database.uri", "MONGO_URI", "DATABASE_URI")

	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.port", "")
	v.SetDefault("server.public_dir", "public")
	v.SetDefault("server.views_dir", "views")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "exercise_tracker")
	v.SetDefault("database.path", "exercise_tracker.db")
	v.SetDefault("s3.use_ssl", true)

	err = v.ReadInConfig()
	// A missing file is fine; defaults and env vars still apply.
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}

	switch config.Database.Driver {
	case DriverMongo, DriverBolt:
	default:
		return config, fmt.Errorf("unsupported database.driver %q", config.Database.Driver)
	}

	return config, nil
}
