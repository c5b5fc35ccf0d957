// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shimson94/multithreaded-firewall-server/pkg/api"
	"github.com/shimson94/multithreaded-firewall-server/pkg/engine"
	"github.com/shimson94/multithreaded-firewall-server/pkg/rule"
	"github.com/shimson94/multithreaded-firewall-server/pkg/server"
)

var (
	interactive   bool
	logLevel      string
	statsInterval int
	enableAPI     bool
	apiHost       string
	apiPort       int
)

var rootCmd = &cobra.Command{
	Use:   "firewall-server [port]",
	Short: "Multithreaded TCP firewall rule server",
	Long: `A concurrent TCP server maintaining a dynamic set of firewall rules
(IP-range x port-range pairs) with a plain-text request protocol:
add a rule, check a connection, delete a rule, list rules and requests.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runServer,
}

func init() {
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Process requests line by line on stdin/stdout")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().IntVarP(&statsInterval, "stats-interval", "s", 0, "Statistics print interval in seconds (0 disables)")
	rootCmd.Flags().BoolVarP(&enableAPI, "enable-api", "a", false, "Enable REST admin API server")
	rootCmd.Flags().StringVar(&apiHost, "api-host", "127.0.0.1", "API server host")
	rootCmd.Flags().IntVar(&apiPort, "api-port", 8081, "API server port")
}

func runServer(cmd *cobra.Command, args []string) {
	// Setup logging
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	eng := engine.New(rule.NewStore())

	// Interactive mode reads requests from stdin, one per line, with
	// no concurrency and no network listener.
	if interactive {
		if err := server.RunInteractive(eng, os.Stdin, os.Stdout); err != nil {
			log.Fatalf("Interactive mode failed: %v", err)
		}
		return
	}

	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s -i | %s <port>\n", os.Args[0], os.Args[0])
		os.Exit(1)
	}

	port, err := strconv.Atoi(args[0])
	if err != nil || port <= 0 || port > 65535 {
		fmt.Fprintln(os.Stderr, "Invalid port number.")
		os.Exit(1)
	}

	cfg := server.DefaultConfig()
	cfg.Port = port

	srv := server.New(cfg, eng)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	// Start API server if enabled
	var apiServer *api.Server
	if enableAPI {
		apiConfig := api.DefaultConfig()
		apiConfig.Host = apiHost
		apiConfig.Port = apiPort
		apiConfig.LogLevel = logLevel

		apiServer, err = api.NewAPIServer(apiConfig, eng)
		if err != nil {
			log.Fatalf("Failed to create API server: %v", err)
		}

		if err := apiServer.Start(); err != nil {
			log.Fatalf("Failed to start API server: %v", err)
		}

		log.Infof("API server started on http://%s:%d", apiHost, apiPort)
	}

	// Print statistics periodically
	if statsInterval > 0 {
		ticker := time.NewTicker(time.Duration(statsInterval) * time.Second)
		defer ticker.Stop()

		go func() {
			for range ticker.C {
				stats := eng.Stats()
				log.Info("=== Statistics ===")
				log.Infof("  Total Requests:       %d", stats.TotalRequests)
				log.Infof("  Rules Added:          %d", stats.RulesAdded)
				log.Infof("  Rules Deleted:        %d", stats.RulesDeleted)
				log.Infof("  Connections Accepted: %d", stats.ConnectionsAccepted)
				log.Infof("  Connections Rejected: %d", stats.ConnectionsRejected)
				log.Infof("  Illegal Requests:     %d", stats.IllegalRequests)
			}
		}()
	}

	// Wait for interrupt signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Server running. Press Ctrl+C to exit")

	<-sig
	log.Info("Shutting down...")

	if apiServer != nil {
		if err := apiServer.Stop(); err != nil {
			log.Errorf("Error stopping API server: %v", err)
		}
	}
	if err := srv.Stop(); err != nil {
		log.Errorf("Error stopping server: %v", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
