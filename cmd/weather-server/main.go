package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"weather-report/config"
	"weather-report/internal/bootstrap"
	v1 "weather-report/internal/controllers/http/v1"
	"weather-report/pkg/httpserver"
)

// @title Weather Report API
// @version 1.0.0
// @description Daily weather statistics with a day-over-day temperature trend, built from Open-Meteo hourly archive data.

// @contact.name Weather Report Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Daily weather reports
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	l, hook := bootstrap.InitLogger(cnf, os.Stdout)

	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  time.Duration(cnf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cnf.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cnf.Server.IdleTimeout) * time.Second,
	}, l)

	service := bootstrap.InitReportService(cnf, l)

	v1.NewRouter(
		app,
		service,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":       cnf.Server.Port,
		"version":    cnf.App.Version,
		"gap_policy": cnf.Report.GapPolicy,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		hook.Flush()
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
