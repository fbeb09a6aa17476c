package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/workoutlog/internal"
	"github.com/2beens/workoutlog/internal/config"
	"github.com/2beens/workoutlog/internal/logging"
	"github.com/2beens/workoutlog/pkg"

	log "github.com/sirupsen/logrus"
)

// set with -ldflags "-X main.version=..."; falls back to the git head
var version = ""

type secrets struct {
	dbPassword       string
	redisPassword    string
	sentryDSN        string
	honeycombEnabled bool
}

func secretsFromEnv() secrets {
	s := secrets{
		dbPassword:       os.Getenv("WORKOUTS_DB_PASS"),
		redisPassword:    os.Getenv("WORKOUTS_REDIS_PASS"),
		sentryDSN:        os.Getenv("SENTRY_DSN"),
		honeycombEnabled: os.Getenv("HONEYCOMB_ENABLED") == "true",
	}

	if s.dbPassword == "" {
		log.Warnln("db password not set, use WORKOUTS_DB_PASS")
	}
	if s.redisPassword == "" {
		log.Warnln("redis password not set, use WORKOUTS_REDIS_PASS")
	}
	if s.honeycombEnabled {
		if os.Getenv("HONEYCOMB_API_KEY") == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
		if os.Getenv("OTEL_SERVICE_NAME") == "" {
			log.Warnln("OTEL_SERVICE_NAME env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	return s
}

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	if err := run(*env, *configPath); err != nil {
		log.Errorf("workouts service: %s", err)
		os.Exit(1)
	}
}

func run(env, configPath string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.LogsPath != "" {
		if err := pkg.EnsureFileDir(cfg.LogsPath); err != nil {
			return fmt.Errorf("logs dir: %w", err)
		}
	}

	s := secretsFromEnv()
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        s.sentryDSN,
		SentryServerName: "workouts-service",
	})
	ver := versionInfo()
	log.Infof("starting workouts service [%s], version [%s]", cfg.Environment, ver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := internal.NewServer(ctx, internal.NewServerParams{
		Config:                  cfg,
		VersionInfo:             ver,
		DBPassword:              s.dbPassword,
		RedisPassword:           s.redisPassword,
		HoneycombTracingEnabled: s.honeycombEnabled,
	})
	if err != nil {
		return fmt.Errorf("new server: %w", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnln("shutdown signal received")
	server.GracefulShutdown()

	return nil
}

func versionInfo() string {
	if version != "" {
		return version
	}
	// works when the binary runs from within the repo checkout
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		log.Tracef("no version info: %s", err)
		return "dev"
	}
	return strings.TrimSpace(string(out))
}
