// Package config loads the dashboard settings from the environment, an optional
// .env file and an optional ~/.sidepools.yaml file.
package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SIDEPOOLS"

const (
	KeyPort        = "port"
	KeyAPIURL      = "api_url"
	KeySleeperURL  = "sleeper_url"
	KeyLeagueID    = "league_id"
	KeyHTTPTimeout = "http_timeout"
	KeyCORSOrigins = "cors_origins"
)

// Viper-based config loader. Values from flags bound with viper.BindPFlag take
// precedence over the environment, which takes precedence over the config file.
func Init() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("error loading .env file: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	viper.SetConfigType("yaml")
	viper.SetConfigName(".sidepools")
	viper.AddConfigPath(home)
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	SetDefaults()

	err = viper.ReadInConfig() // ignore error if config file missing
	if err != nil {
		log.Printf("viper can't read config file: %v", err)
	}
	log.Printf("Using backend API: %s", APIURL())
	log.Printf("Using league: %s", LeagueID())
}

func SetDefaults() {
	viper.SetDefault(KeyPort, 3000)
	viper.SetDefault(KeyAPIURL, "http://localhost:5000")
	viper.SetDefault(KeySleeperURL, "https://api.sleeper.app")
	viper.SetDefault(KeyLeagueID, "978439391255322624")
	viper.SetDefault(KeyHTTPTimeout, time.Minute)
	viper.SetDefault(KeyCORSOrigins, []string{"*"})
}

func Port() int {
	return viper.GetInt(KeyPort)
}

// APIURL is the base URL of the side pools backend, without the /api/v1 prefix.
func APIURL() string {
	return strings.TrimSuffix(viper.GetString(KeyAPIURL), "/")
}

func SleeperURL() string {
	return strings.TrimSuffix(viper.GetString(KeySleeperURL), "/")
}

func LeagueID() string {
	return viper.GetString(KeyLeagueID)
}

func HTTPTimeout() time.Duration {
	return viper.GetDuration(KeyHTTPTimeout)
}

func CORSOrigins() []string {
	return viper.GetStringSlice(KeyCORSOrigins)
}
