package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"go.bug.st/serial"

	"github.com/espkit/espgw/wifi"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML configuration file")
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port to connect to the WiFi module")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("log-format", "json", "Log format (json, text)")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithFile(*configPath), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var handler slog.Handler
	if config.LogFormat == "text" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{Level: logLevel})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}
	logger := slog.New(handler)

	wifiConfig, err := wifi.NewConfigBuilder().
		WithLogger(logger.With("component", "wifi")).
		WithDialer(wifi.SerialDialer{
			PortName: config.SerialPort,
			Mode: &serial.Mode{
				BaudRate: config.BaudRate,
				DataBits: 8,
				Parity:   serial.NoParity,
				StopBits: serial.OneStopBit,
			},
			ReadTimeout: 30 * time.Second,
		}).
		Build()
	if err != nil {
		logger.Error("Failed to create wifi config", "error", err)
		os.Exit(1)
	}

	session, err := wifi.New(context.Background(), wifiConfig)
	if err != nil {
		logger.Error("Failed to connect to WiFi module", "error", err, "port", config.SerialPort)
		os.Exit(1)
	}

	if err := probe(session, logger); err != nil {
		logger.Error("Module probe failed", "error", err)
		session.Close()
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr: config.BindAddress,
		Handler: &Server{
			Logger:  logger.With("component", "server"),
			Session: session,
		},
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sig := <-sigChan
	logger.Info("Received shutdown signal", "signal", sig)

	logger.Info("Closing module session")
	if err := session.Close(); err != nil {
		logger.Error("Failed to close session", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to gracefully shutdown server", "error", err)
		os.Exit(1)
	}
}

// probe verifies the module is alive and logs its identity before the
// gateway starts serving.
func probe(session *wifi.Session, logger *slog.Logger) error {
	ok, err := wifi.Send(session, wifi.Test{})
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("module did not echo self-test")
	}

	version, err := wifi.Send(session, wifi.GetVersion{})
	if err != nil {
		return err
	}

	mode, err := wifi.Send(session, wifi.GetMode{})
	if err != nil {
		return err
	}

	ssid, err := wifi.Send(session, wifi.CurrentAP{})
	if err != nil {
		return err
	}

	if ssid != nil {
		logger.Info("WiFi module ready", "version", version, "mode", mode.String(), "ssid", *ssid)
	} else {
		logger.Info("WiFi module ready", "version", version, "mode", mode.String(), "ssid", nil)
	}
	return nil
}
