package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/penpal-ai/database-service/pkg/logger"
)

// Command returns the service CLI. Without a subcommand it serves HTTP.
func Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "database-service",
		Short: "Subscription and payment records for Penpal AI",
		RunE:  runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "indexes",
			Short: "Create the MongoDB indexes and exit",
			RunE:  runIndexes,
		},
		&cobra.Command{
			Use:   "healthcheck",
			Short: "Probe the readiness endpoint of a running instance",
			RunE:  runHealthcheck,
		},
	)
	return root
}

func bootstrap(cmd *cobra.Command) (*App, error) {
	cmd.SilenceUsage = true

	cfgs, err := LoadConfigs()
	if err != nil {
		return nil, err
	}
	log := NewLogger(cfgs.App)
	slog.SetDefault(log)

	a, err := New(cmd.Context(), cfgs, log)
	if err != nil {
		log.Error("failed to start", logger.Error(err))
		return nil, err
	}
	return a, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer a.Close(context.WithoutCancel(cmd.Context()))

	if err := a.EnsureIndexes(cmd.Context()); err != nil {
		return err
	}
	return a.Serve(cmd.Context())
}

func runIndexes(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer a.Close(context.WithoutCancel(cmd.Context()))

	return a.EnsureIndexes(cmd.Context())
}

func runHealthcheck(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cfgs, err := LoadConfigs()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, readinessURL(cfgs.HTTP.Addr), nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("readiness probe answered %s", resp.Status)
	}
	return nil
}

// readinessURL turns a listen address such as ":3001" into a local probe URL.
func readinessURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + "/health/ready"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/health/ready"
}
