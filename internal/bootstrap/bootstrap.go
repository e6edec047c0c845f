package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nmoreyra/docsort/internal/config"
	"github.com/nmoreyra/docsort/internal/core/classify"
	"github.com/nmoreyra/docsort/internal/core/ports"
	"github.com/nmoreyra/docsort/internal/core/usecase"
	"github.com/nmoreyra/docsort/internal/infrastructure/extractor/pdftext"
	"github.com/nmoreyra/docsort/internal/infrastructure/model/bayes"
	"github.com/nmoreyra/docsort/internal/infrastructure/queue/nats"
	"github.com/nmoreyra/docsort/internal/infrastructure/repository/postgres"
	"github.com/nmoreyra/docsort/internal/infrastructure/resilience"
	"github.com/nmoreyra/docsort/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue      ports.MessageQueue
	Repo       ports.DocumentRepository
	Classifier ports.Classifier
	IngestUC   ports.DocumentIngestor
	ProcessUC  ports.DocumentProcessor

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultPolicy()),
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		queue.Close()
		_ = db.Close()
		return nil, fmt.Errorf("build classification engine: %w", err)
	}

	extractor := pdftext.NewExtractor(storage)

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, extractor, engine)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		Classifier: engine,
		IngestUC:   ingestUC,
		ProcessUC:  processUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

// buildEngine assembles the classification methods enabled by configuration.
// Keyword and regex matching are always on; everything else is opt-out, and
// the statistical method additionally degrades to disabled when its model
// file cannot be loaded.
func buildEngine(cfg config.Config) (*classify.Engine, error) {
	weights := classify.DefaultWeightConfig()
	if cfg.ClassifyConfigPath != "" {
		loaded, err := classify.LoadWeightConfig(cfg.ClassifyConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load weight config: %w", err)
		}
		weights = loaded
	}

	strategies := []classify.Strategy{
		classify.NewKeywordClassifier(),
		classify.NewRegexClassifier(),
	}

	if cfg.EnableStatistical && cfg.ModelPath != "" {
		model, err := bayes.Load(cfg.ModelPath)
		if err != nil {
			slog.Warn("statistical_model_unavailable", "path", cfg.ModelPath, "error", err)
		} else {
			strategies = append(strategies, classify.NewStatisticalClassifier(model))
		}
	}
	if cfg.EnableLayoutAnalysis {
		strategies = append(strategies, classify.NewLayoutClassifier())
	}
	if cfg.EnableAgro {
		strategies = append(strategies, classify.NewAgroClassifier())
	}
	if cfg.EnableCommercial {
		strategies = append(strategies, classify.NewCommercialClassifier())
	}

	var detector *classify.SupplierDetector
	if cfg.EnableSupplierDetection {
		registry := classify.DefaultSupplierRegistry()
		if cfg.SupplierRegistryPath != "" {
			loaded, err := classify.LoadSupplierRegistry(cfg.SupplierRegistryPath)
			if err != nil {
				return nil, fmt.Errorf("load supplier registry: %w", err)
			}
			registry = loaded
		}
		detector = classify.NewSupplierDetector(registry)
	}

	return classify.NewEngine(weights, strategies, detector)
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
