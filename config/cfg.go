package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/vaseegrahveda/dashboard-manager/internal/api/http"
	"github.com/vaseegrahveda/dashboard-manager/internal/dashboard"
	"github.com/vaseegrahveda/dashboard-manager/internal/store"
	"github.com/vaseegrahveda/dashboard-manager/internal/woo"
	"github.com/vaseegrahveda/dashboard-manager/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	DB        store.Config     `mapstructure:"mysql"`
	Logger    log.Config       `mapstructure:"logger"`
	HTTP      httpapi.Config   `mapstructure:"http"`
	Woo       woo.Config       `mapstructure:"woocommerce"`
	Dashboard dashboard.Config `mapstructure:"dashboard"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			// Config file is optional, env vars alone can carry the setup.
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/veda-dashboard-manager")
		viper.AddConfigPath("/etc/veda-dashboard-manager")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	// Build the MySQL DSN from individual env vars when it is not set directly.
	if config.DB.DSN == "" {
		host := os.Getenv("MYSQL_HOST")
		port := os.Getenv("MYSQL_PORT")
		user := os.Getenv("MYSQL_USER")
		password := os.Getenv("MYSQL_PASSWORD")
		database := os.Getenv("MYSQL_DATABASE")

		if host != "" {
			if port == "" {
				port = "3306"
			}
			if user != "" && password != "" && database != "" {
				config.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true",
					user, password, host, port, database)
			}
		}
	}

	return &config, nil
}

// bindEnvVars binds environment variables to config keys so flat names like
// MYSQL_DSN work alongside the nested MYSQL__DSN form.
func bindEnvVars() {
	// MySQL
	viper.BindEnv("mysql.dsn", "MYSQL_DSN")
	viper.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	viper.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	viper.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")

	// WooCommerce
	viper.BindEnv("woocommerce.store_url", "WOOCOMMERCE_STORE_URL")
	viper.BindEnv("woocommerce.consumer_key", "WOOCOMMERCE_CONSUMER_KEY")
	viper.BindEnv("woocommerce.consumer_secret", "WOOCOMMERCE_CONSUMER_SECRET")
	viper.BindEnv("woocommerce.page_size", "WOOCOMMERCE_PAGE_SIZE")
	viper.BindEnv("woocommerce.retry_count", "WOOCOMMERCE_RETRY_COUNT")
	viper.BindEnv("woocommerce.retry_wait_time", "WOOCOMMERCE_RETRY_WAIT_TIME")
	viper.BindEnv("woocommerce.timeout", "WOOCOMMERCE_TIMEOUT")

	// Dashboard
	viper.BindEnv("dashboard.refresh_interval", "DASHBOARD_REFRESH_INTERVAL")
	viper.BindEnv("dashboard.default_window", "DASHBOARD_DEFAULT_WINDOW")
}
