package main

import (
	"fmt"
	"log"
	"os"

	"github.com/itbasis/go-clock"
	"github.com/mww/sidepools/api"
	"github.com/mww/sidepools/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var appClock = clock.New()

func main() {
	cobra.OnInitialize(config.Init)

	rootCmd := &cobra.Command{
		Short: "Side pools payout dashboard",
		Use:   "sidepools",
	}
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "", "Base URL of the side pools backend API")
	flags.String("sleeper-url", "", "Base URL of the Sleeper API")
	flags.String("league-id", "", "Sleeper league ID")
	flags.Duration("http-timeout", 0, "Timeout for requests to the backend API")
	bindFlag(config.KeyAPIURL, rootCmd, "api-url")
	bindFlag(config.KeySleeperURL, rootCmd, "sleeper-url")
	bindFlag(config.KeyLeagueID, rootCmd, "league-id")
	bindFlag(config.KeyHTTPTimeout, rootCmd, "http-timeout")

	rootCmd.AddCommand(newServeCmd(), newPayoutsCmd(), newDetailsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func bindFlag(key string, cmd *cobra.Command, name string) {
	f := cmd.PersistentFlags().Lookup(name)
	if f == nil {
		f = cmd.Flags().Lookup(name)
	}
	if err := viper.BindPFlag(key, f); err != nil {
		log.Fatalf("error binding flag %s: %v", name, err)
	}
}

func newAPIClient() (api.Client, error) {
	client, err := api.New(config.APIURL(), config.HTTPTimeout())
	if err != nil {
		return nil, fmt.Errorf("error creating backend client: %w", err)
	}
	return client, nil
}
