package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// BookingConfig holds the commercial knobs. These are policy, not code:
// page sizes, the per-day discount card cap and reservation code shape.
type BookingConfig struct {
	SearchPageSize  int
	CardDailyLimit  int
	CodeLength      int
	CodeMaxAttempts int
	HistoryPageSize int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SEARCH_PAGE_SIZE", 10)
	viper.SetDefault("CARD_DAILY_LIMIT", 2)
	viper.SetDefault("CODE_LENGTH", 8)
	viper.SetDefault("CODE_MAX_ATTEMPTS", 5)
	viper.SetDefault("HISTORY_PAGE_SIZE", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Booking: BookingConfig{
			SearchPageSize:  viper.GetInt("SEARCH_PAGE_SIZE"),
			CardDailyLimit:  viper.GetInt("CARD_DAILY_LIMIT"),
			CodeLength:      viper.GetInt("CODE_LENGTH"),
			CodeMaxAttempts: viper.GetInt("CODE_MAX_ATTEMPTS"),
			HistoryPageSize: viper.GetInt("HISTORY_PAGE_SIZE"),
		},
	}

	return config, nil
}
