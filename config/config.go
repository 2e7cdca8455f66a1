package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	Storage    Storage
	Database   Database
	Auth       Auth
	Prometheus Prometheus
}

type HTTPServer struct {
	Address string
	Port    int
}

// Storage selects the repository backend. Driver is "badger" or "postgres";
// Path is the badger data directory.
type Storage struct {
	Driver string
	Path   string
}

type Database struct {
	Username       string
	Password       string
	Host           string
	Port           string
	DbName         string
	MigrationsPath string
}

type Auth struct {
	SessionSecret string
	CookieName    string
	SessionTTL    time.Duration
	CertsURL      string
	Audience      string
	Issuer        string
}

type Prometheus struct {
	Address string
	Port    int
}

func MustLoad() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("quillpad")
	viper.AutomaticEnv()

	viper.SetDefault("env", "dev")

	viper.SetDefault("http_server.address", "0.0.0.0")
	viper.SetDefault("http_server.port", 8080)

	viper.SetDefault("storage.driver", "badger")
	viper.SetDefault("storage.path", "data/quillpad")

	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.db_name", "quillpad")
	viper.SetDefault("database.migrations_path", "migrations")

	viper.SetDefault("auth.session_secret", "")
	viper.SetDefault("auth.cookie_name", "session")
	viper.SetDefault("auth.session_ttl", 5*24*time.Hour)
	viper.SetDefault("auth.certs_url", "")
	viper.SetDefault("auth.audience", "")
	viper.SetDefault("auth.issuer", "")

	viper.SetDefault("prometheus.address", "0.0.0.0")
	viper.SetDefault("prometheus.port", 9103)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Error reading config file: %s", err)
			os.Exit(1)
		}
	}

	config := &Config{
		Env: viper.GetString("env"),
		HTTPServer: HTTPServer{
			Address: viper.GetString("http_server.address"),
			Port:    viper.GetInt("http_server.port"),
		},
		Storage: Storage{
			Driver: viper.GetString("storage.driver"),
			Path:   viper.GetString("storage.path"),
		},
		Database: Database{
			Username:       viper.GetString("database.username"),
			Password:       viper.GetString("database.password"),
			Host:           viper.GetString("database.host"),
			Port:           viper.GetString("database.port"),
			DbName:         viper.GetString("database.db_name"),
			MigrationsPath: viper.GetString("database.migrations_path"),
		},
		Auth: Auth{
			SessionSecret: viper.GetString("auth.session_secret"),
			CookieName:    viper.GetString("auth.cookie_name"),
			SessionTTL:    viper.GetDuration("auth.session_ttl"),
			CertsURL:      viper.GetString("auth.certs_url"),
			Audience:      viper.GetString("auth.audience"),
			Issuer:        viper.GetString("auth.issuer"),
		},
		Prometheus: Prometheus{
			Address: viper.GetString("prometheus.address"),
			Port:    viper.GetInt("prometheus.port"),
		},
	}

	return config
}
