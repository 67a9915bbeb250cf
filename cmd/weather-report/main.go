package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"weather-report/config"
	"weather-report/internal/bootstrap"
	"weather-report/internal/models"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var city string

	cmd := &cobra.Command{
		Use:           "weather-report --city <name>",
		Short:         "Analyze the last seven days of weather for a city",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), city, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "name of the city")
	_ = cmd.MarkFlagRequired("city")

	return cmd
}

func run(ctx context.Context, city string, stdout, stderr io.Writer) error {
	cnf, err := config.NewConfig()
	if err != nil {
		return err
	}

	// stdout only carries the report
	l, hook := bootstrap.InitLogger(cnf, stderr)
	defer hook.Flush()
	defer func() { _ = l.Stop() }()

	service := bootstrap.InitReportService(cnf, l)

	fmt.Fprintf(stdout, "--- Weather Analysis for %s ---\n", city)

	artifacts, err := service.Generate(ctx, city, stdout)
	if err != nil {
		l.Error(err, map[string]any{"city": city})
		return err
	}

	loc := artifacts.Analysis.Location
	fmt.Fprintf(stdout, "\nLocation: %s (Lat: %g, Lon: %g)\n", loc.Name, loc.Latitude, loc.Longitude)
	fmt.Fprintf(stdout, "CSV saved to: %s\n", artifacts.CSVPath)
	fmt.Fprintf(stdout, "Chart saved to: %s\n", artifacts.ChartPath)

	switch artifacts.Delivery {
	case models.DeliveryDelivered:
		fmt.Fprintln(stdout, "Report sent to Telegram")
	case models.DeliveryFailed:
		fmt.Fprintln(stdout, "Telegram delivery failed, see log for details")
	default:
		fmt.Fprintln(stdout, "Telegram keys not found, skipping notification")
	}

	return nil
}
