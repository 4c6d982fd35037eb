package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetgarden/budgetgarden/internal/amqp"
	"github.com/budgetgarden/budgetgarden/internal/config"
	"github.com/budgetgarden/budgetgarden/internal/database"
	"github.com/budgetgarden/budgetgarden/internal/event_bus"
	"github.com/budgetgarden/budgetgarden/internal/utils"
	"github.com/budgetgarden/budgetgarden/pkg/budget"
	"github.com/budgetgarden/budgetgarden/pkg/storage"
	"github.com/budgetgarden/budgetgarden/pkg/suggestion"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all ports, services and handlers for the application.
type Dependencies struct {
	Storage   storage.Storage
	Suggester suggestion.Suggester
	EventBus  *event_bus.EventBus
	Clock     utils.Clock

	BudgetRepo    budget.BudgetRepo
	BudgetService *budget.BudgetServiceImpl
	BudgetHandler *budget.BudgetHandler

	closers []func()
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	store, closeStore, err := NewStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	deps.Storage = store
	deps.closers = append(deps.closers, closeStore)

	suggester, err := NewSuggester(ctx, cfg.Suggestion)
	if err != nil {
		deps.Close()
		return nil, err
	}

	deps.wire(store, suggester, &utils.SystemClock{})

	if cfg.Amqp.Url != "" {
		client, err := amqp.NewClient(cfg.Amqp.Url, cfg.Amqp.Exchange)
		if err != nil {
			log.Warnf("Change notifications disabled, unable to connect to AMQP broker: %v", err)
		} else {
			unsubscribe := amqp.NewNotifier(client, cfg.Amqp.RoutingKey).Subscribe(deps.EventBus)
			deps.closers = append(deps.closers, func() {
				unsubscribe()
				client.Close()
			})
		}
	}

	return deps, nil
}

// NewTestDependencies wires the application around the given ports, without any external resources.
func NewTestDependencies(store storage.Storage, suggester suggestion.Suggester, clock utils.Clock) *Dependencies {
	deps := &Dependencies{Storage: store}
	deps.wire(store, suggester, clock)
	return deps
}

func (d *Dependencies) wire(store storage.Storage, suggester suggestion.Suggester, clock utils.Clock) {
	d.Suggester = suggester
	d.Clock = clock
	d.EventBus = event_bus.NewEventBus()

	d.BudgetRepo = budget.NewBudgetRepo(store)
	d.BudgetService = budget.NewBudgetServiceImpl(d.BudgetRepo, d.Suggester, d.EventBus, d.Clock)
	d.BudgetHandler = budget.NewBudgetHandler(d.BudgetService)
}

// Close releases every resource opened by BuildDependencies, in reverse order.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

// NewStorage opens the configured storage backend. The returned function closes it.
func NewStorage(ctx context.Context, cfg config.Application) (storage.Storage, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.MemoryBackend, "":
		log.Info("Using in-memory storage, data is lost on restart")
		return storage.NewMemoryStore(), noop, nil
	case config.SqliteBackend:
		db, err := database.OpenSqlite(cfg.Sqlite.Path)
		if err != nil {
			return nil, noop, err
		}
		log.Infof("Using SQLite storage at %s", cfg.Sqlite.Path)
		return storage.NewSqliteStore(db), func() { db.Close() }, nil
	case config.PostgresBackend:
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, noop, err
		}
		pool, err := database.Open(cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		log.Infof("Using Postgres storage at %s:%d", cfg.Database.Host, cfg.Database.Port)
		return storage.NewPostgresStore(pool), pool.Close, nil
	case config.FirestoreBackend:
		store, err := storage.NewFirestoreStore(ctx, storage.FirestoreConfig{
			ProjectId:       cfg.Firestore.ProjectId,
			DatabaseId:      cfg.Firestore.DatabaseId,
			CredentialsFile: cfg.Firestore.CredentialsFile,
			Endpoint:        cfg.Firestore.Endpoint,
		})
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

var errSuggestionNotConfigured = errors.New("suggestion provider API key is not configured")

// NewSuggester creates the client of the configured language model provider. Without an API key the
// server still starts and every suggestion request fails.
func NewSuggester(ctx context.Context, cfg config.Suggestion) (suggestion.Suggester, error) {
	if cfg.ApiKey == "" {
		log.Warnf("No API key for suggestion provider %s, summaries and advice are unavailable", cfg.Provider)
		return suggestion.NewFailingStubSuggester(errSuggestionNotConfigured), nil
	}

	switch cfg.Provider {
	case config.OpenAIProvider, "":
		return suggestion.NewOpenAIClient(suggestion.OpenAIConfig{
			ApiKey:    cfg.ApiKey,
			Model:     cfg.Model,
			BaseUrl:   cfg.BaseUrl,
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.Timeout,
		})
	case config.GeminiProvider:
		return suggestion.NewGeminiClient(ctx, suggestion.GeminiConfig{
			ApiKey:    cfg.ApiKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		})
	default:
		return nil, fmt.Errorf("unknown suggestion provider: %s", cfg.Provider)
	}
}
