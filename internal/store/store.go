package store

import (
	"context"
	"fmt"

	"sharvari-site/internal/shared/database"
	"sharvari-site/internal/shared/logger"
	fsrepo "sharvari-site/internal/store/adapter/persistence/firestore"
	"sharvari-site/internal/store/adapter/persistence/memory"
	"sharvari-site/internal/store/adapter/persistence/mongodb"
	"sharvari-site/internal/store/config"
	"sharvari-site/internal/store/domain/repository"
	"sharvari-site/internal/store/usecase"
)

// StoreModule owns the document repository and the client built on it.
type StoreModule struct {
	Config     *config.Config
	Repository repository.DocumentRepository
	Client     *usecase.Client
}

// NewStoreModule connects the configured backend and builds the client.
func NewStoreModule(ctx context.Context, cfg *config.Config, notifier usecase.Notifier, events usecase.EventPublisher, log logger.Logger) (*StoreModule, error) {
	repo, err := newRepository(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	log.Infof("Document store backend: %s", cfg.Backend)

	return &StoreModule{
		Config:     cfg,
		Repository: repo,
		Client:     usecase.NewClient(repo, notifier, events, log),
	}, nil
}

func newRepository(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.DocumentRepository, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoDBURI)
		if err != nil {
			return nil, err
		}
		return mongodb.NewDocumentRepository(client.Database(cfg.DatabaseName), log), nil
	case config.BackendFirestore:
		client, err := fsrepo.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		return fsrepo.NewDocumentRepository(client), nil
	case config.BackendMemory:
		return memory.NewDocumentRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Backend)
	}
}

// Stop closes the backend connection.
func (m *StoreModule) Stop(ctx context.Context) error {
	return m.Repository.Close(ctx)
}
