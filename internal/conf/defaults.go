// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "Roamly")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/")
	viper.SetDefault("main.log.maxsize", 100)
	viper.SetDefault("main.log.maxbackups", 3)
	viper.SetDefault("main.log.maxage", 28)

	viper.SetDefault("webserver.host", "0.0.0.0")
	viper.SetDefault("webserver.port", "3000")

	viper.SetDefault("database.type", "sqlite")
	viper.SetDefault("database.path", "roamly.db")
	viper.SetDefault("database.dsn", "")

	viper.SetDefault("session.secret", "")
	viper.SetDefault("session.duration", 7*24*60*60)

	viper.SetDefault("providers.unsplash.accesskey", "")
	viper.SetDefault("providers.pexels.apikey", "")
	viper.SetDefault("providers.pixabay.apikey", "")
	viper.SetDefault("providers.gemini.apikey", "")
	viper.SetDefault("providers.gemini.model", "gemini-1.5-flash")
}
