// Package main serves the workouts MCP tools over stdio for local editor use.
// The backend mounts the same server at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/workoutlog/internal/config"
	"github.com/2beens/workoutlog/internal/db"
	"github.com/2beens/workoutlog/internal/logging"
	workoutsmcp "github.com/2beens/workoutlog/internal/workouts/mcp"
	"github.com/2beens/workoutlog/internal/workouts/repo"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	logLevel := flag.String("log-level", "warn", "log level, logs go to stderr")
	flag.Parse()

	// stdout carries the protocol
	logging.Setup(logging.LoggerSetupParams{
		LogLevel: *logLevel,
		Output:   os.Stderr,
	})

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBPassword: os.Getenv("WORKOUTS_DB_PASS"),
	})
	if err != nil {
		log.Fatalf("db pool: %s", err)
	}
	defer dbPool.Close()

	server := workoutsmcp.NewServer(dbPool, repo.NewRepo(dbPool, nil), cfg.ListLimit)
	log.Debugf("serving workouts mcp tools over stdio, db [%s]", cfg.PostgresDBName)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		log.Errorf("mcp server: %s", err)
	}
}
