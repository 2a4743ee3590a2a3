package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

func setConfigDefaults() {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "120s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")
	viper.SetDefault("GRAPH_FILE", "./data/road.graph")
	viper.SetDefault("SEARCH_RADIUS_KM", 1.0)
	viper.SetDefault("LEAF_BOUNDING_BOX_RADIUS", 0.05)
	viper.SetDefault("ROUTE_CACHE_SIZE", 1024)
	viper.SetDefault("CLOCKWISE_ROUNDABOUT", true)
	viper.SetDefault("LEFT_HAND_TRAFFIC", true)
	viper.SetDefault("RATE_LIMIT_RPS", 50)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
	viper.SetDefault("USE_RATE_LIMIT", false)
	viper.SetDefault("LOG_LEVEL", "info")
}

// ReadConfig loads ./data/config.yaml on top of the defaults. A missing file is not an error,
// environment variables still override every key.
func ReadConfig() error {
	setConfigDefaults()
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
