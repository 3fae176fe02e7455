// Package main runs the krank stats MCP server over stdio (for local editor use).
// The same tools are mounted on the main backend at /mcp over HTTP, bound to
// the logged-in user; over stdio every tool takes user_id.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/2beens/krank/internal/cache"
	"github.com/2beens/krank/internal/config"
	"github.com/2beens/krank/internal/db"
	"github.com/2beens/krank/internal/logs"
	"github.com/2beens/krank/internal/stats"
	statsmcp "github.com/2beens/krank/internal/stats/mcp"
	"github.com/2beens/krank/internal/strength"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         os.Getenv("KRANK_POSTGRES_USER"),
		DBPassword:     os.Getenv("KRANK_POSTGRES_PASS"),
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	statsService := stats.NewService(
		logs.NewPsqlRepo(dbPool),
		cache.NewLocal(cfg.CacheSizeMB, cfg.CacheTTL.Duration),
		strength.NewRecommender(cfg.LoadIncrement),
		nil,
	)
	toolsService := statsmcp.NewToolsService(statsmcp.NewPoolSchemaRepo(dbPool), statsService)
	server := statsmcp.NewServer(toolsService, "", "stdio")

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
