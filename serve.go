package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/mww/sidepools/config"
	"github.com/mww/sidepools/controller"
	"github.com/mww/sidepools/sleeper"
	"github.com/mww/sidepools/web"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard web server",
		RunE:  serve,
	}
	cmd.Flags().Int("port", 0, "Port to listen on")
	bindFlag(config.KeyPort, cmd, "port")
	return cmd
}

func serve(cmd *cobra.Command, args []string) error {
	apiClient, err := newAPIClient()
	if err != nil {
		return err
	}

	sleeperClient, err := sleeper.New(config.SleeperURL())
	if err != nil {
		log.Fatalf("error creating sleeper client: %v", err)
	}

	ctrl, err := controller.New(appClock, apiClient, sleeperClient, config.LeagueID())
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(config.Port(), ctrl, config.CORSOrigins())
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
	return nil
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
