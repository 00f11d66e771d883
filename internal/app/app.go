// Package app assembles the collaborators shared by the binaries.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/support-agent/internal/agent"
	"github.com/spec-kit/support-agent/internal/catalog"
	"github.com/spec-kit/support-agent/internal/config"
	"github.com/spec-kit/support-agent/internal/events"
	"github.com/spec-kit/support-agent/internal/llm"
	"github.com/spec-kit/support-agent/internal/observability"
	"github.com/spec-kit/support-agent/internal/repository"
	"github.com/spec-kit/support-agent/internal/service"
)

// Components holds the wired support stack.
type Components struct {
	Catalog    *catalog.Catalog
	Metrics    *observability.Metrics
	Dispatcher events.Dispatcher
	Docs       repository.DocumentRepository
	Users      repository.UserRepository
	Tickets    *service.TicketService
	Toolbox    *agent.Toolbox
	Agent      *agent.Agent
}

// Build loads the catalog and wires repositories, services and the agent.
func Build(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	cat, err := loadCatalog(cfg.Fixtures)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded",
		zap.Int("documents", len(cat.Documents)),
		zap.Int("users", len(cat.Users)),
	)

	client, err := llm.NewAgentClient(llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
	}, logger.Named("llm"))
	if err != nil {
		return nil, fmt.Errorf("init llm client: %w", err)
	}

	latency := cfg.Fixtures.MockLatency()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	docs := repository.NewDocumentRepository(cat.Documents, latency, logger.Named("docs"))
	users := repository.NewUserRepository(cat.Users, latency, logger.Named("users"))
	tickets := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repository.NewTicketRepository(),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger.Named("tickets"),
		Latency:    latency,
	})
	toolbox := &agent.Toolbox{Docs: docs, Users: users, Tickets: tickets}

	temperature := cfg.LLM.Temperature
	assistant := agent.New(client, toolbox, metrics, logger.Named("agent"), agent.Options{
		MaxSteps:    cfg.Agent.MaxSteps,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: &temperature,
	})

	return &Components{
		Catalog:    cat,
		Metrics:    metrics,
		Dispatcher: dispatcher,
		Docs:       docs,
		Users:      users,
		Tickets:    tickets,
		Toolbox:    toolbox,
		Agent:      assistant,
	}, nil
}

func loadCatalog(cfg config.FixturesConfig) (*catalog.Catalog, error) {
	if cfg.Path == "" {
		return catalog.Default()
	}
	cat, err := catalog.Load(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("load fixtures %s: %w", cfg.Path, err)
	}
	return cat, nil
}
