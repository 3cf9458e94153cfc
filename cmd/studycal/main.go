package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studycal/internal/auth"
	"studycal/internal/config"
	"studycal/internal/digest"
	appLog "studycal/internal/log"
	"studycal/internal/store"
	"studycal/internal/web"
)

type flagConfig struct {
	configPath string
	listen     string
	fixture    string
	once       bool
	verbose    bool
}

func main() {
	appLog.Info("studycal starting", "version", "0.1.0-dev")

	flags := parseFlags()
	if flags.verbose {
		appLog.SetLevel(appLog.LevelDebug)
	}

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI overrides win over the config file.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	if flags.fixture != "" {
		conf.FixturePath = flags.fixture
	}

	appLog.Info("effective config",
		"listen", conf.Listen,
		"fixture", conf.FixturePath,
		"database", conf.DatabasePath,
		"digest", conf.DigestCron,
		"digest_days", conf.DigestDays,
		"auth", conf.GoogleClientID != "",
		"once", flags.once,
	)

	courses, err := store.LoadFixture(conf.FixturePath)
	if err != nil {
		appLog.Error("failed to load course fixture", err, "path", conf.FixturePath)
		os.Exit(1)
	}
	appLog.Info("courses loaded", "count", len(courses))

	// Auth wiring is optional: with no Google client id the API runs open.
	var (
		users    *store.Users
		verifier auth.Verifier
		sessions *auth.Sessions
	)
	if conf.GoogleClientID != "" {
		users, err = store.OpenUsers(conf.DatabasePath)
		if err != nil {
			appLog.Error("failed to open user database", err, "path", conf.DatabasePath)
			os.Exit(1)
		}
		defer users.Close()

		sessions, err = auth.NewSessions(conf.SessionSecret)
		if err != nil {
			appLog.Error("session setup failed", err)
			os.Exit(1)
		}
		verifier = &auth.GoogleVerifier{ClientID: conf.GoogleClientID}
	}

	server := web.NewServer(conf, courses, users, verifier, sessions)

	job := digest.New(server.Snapshot, conf.DigestDays)
	if flags.once {
		job.Run()
		appLog.Info("studycal exiting")
		return
	}
	if err := job.Start(conf.DigestCron); err != nil {
		appLog.Error("failed to schedule digest", err, "spec", conf.DigestCron)
		os.Exit(1)
	}
	defer job.Stop()

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	if err := web.StartServer(ctx, server); err != nil {
		appLog.Error("HTTP server stopped", err)
		os.Exit(1)
	}

	// Give in-flight log writes a moment before exit.
	time.Sleep(100 * time.Millisecond)
	appLog.Info("studycal exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/studycal/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.fixture, "fixture", "", "Course fixture path (overrides config if set)")
	flag.BoolVar(&cfg.once, "once", false, "Run one digest pass and exit")
	flag.BoolVar(&cfg.verbose, "verbose", false, "Enable debug logging")

	flag.Parse()

	return cfg
}
