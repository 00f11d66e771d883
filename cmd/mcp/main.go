// Command mcp serves the support tools to MCP clients over stdio.
package main

import (
	"log"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/spec-kit/support-agent/internal/app"
	"github.com/spec-kit/support-agent/internal/config"
	"github.com/spec-kit/support-agent/internal/llm"
	"github.com/spec-kit/support-agent/internal/mcpserver"
	"github.com/spec-kit/support-agent/internal/observability"
	"github.com/spec-kit/support-agent/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// stdout carries the protocol.
	cfg.Logger.Output = "stderr"
	// The tools do not call a model, so no credentials are needed.
	cfg.LLM.SetProvider(llm.ProviderOffline)

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	components, err := app.Build(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build application", zap.Error(err))
	}
	service.NewNotificationService(components.Dispatcher, logger.Named("notify"), cfg.Notification).RegisterHandlers()

	handlers := mcpserver.NewHandlers(components.Toolbox, logger.Named("mcp"))
	s := mcpserver.NewServer(cfg.App.Name, cfg.App.Version, handlers)

	logger.Info("serving MCP over stdio")
	if err := server.ServeStdio(s); err != nil {
		logger.Fatal("mcp server stopped", zap.Error(err))
	}
}
