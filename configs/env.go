package configs

import (
	"github.com/spf13/viper"
)

// EnvConfig holds process-level settings read straight from the environment
type EnvConfig struct {
	ApplicationName string
	LogLevel        string
	PropertiesPath  string
}

var Env *EnvConfig

func init() {
	viper.AutomaticEnv()

	Env = &EnvConfig{
		ApplicationName: getStringOrDefault("APPLICATION_NAME", "city-api"),
		LogLevel:        getStringOrDefault("LOG_LEVEL", "info"),
		PropertiesPath:  viper.GetString("PROPERTIES_FILE_PATH"),
	}
}

func getStringOrDefault(key, defaultValue string) string {
	value := viper.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
