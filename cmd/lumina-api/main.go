package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	catalogsrc "github.com/PabloGalante/lumina-store/internal/adapters/catalog"
	httpadapter "github.com/PabloGalante/lumina-store/internal/adapters/http"
	"github.com/PabloGalante/lumina-store/internal/adapters/llm"
	firestorestore "github.com/PabloGalante/lumina-store/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/lumina-store/internal/adapters/storage/memory"
	"github.com/PabloGalante/lumina-store/internal/app/catalog"
	"github.com/PabloGalante/lumina-store/internal/app/concierge"
	"github.com/PabloGalante/lumina-store/internal/app/orders"
	"github.com/PabloGalante/lumina-store/internal/app/storefront"
	"github.com/PabloGalante/lumina-store/internal/config"
	"github.com/PabloGalante/lumina-store/internal/domain"
	"github.com/PabloGalante/lumina-store/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := observability.Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	observability.SetLevel(cfg.SlogLevel())
	log = observability.WithFields("service", "lumina-api", "port", cfg.Port)

	llmClient := newLLMClient(ctx, log, cfg)

	cat, err := loadCatalog(ctx, log, cfg)
	if err != nil {
		log.Error("error loading catalog", "error", err)
		os.Exit(1)
	}

	sessionStore := memstore.NewSessionStore()
	orderStore := memstore.NewOrderStore()

	bridge := concierge.NewBridge(llmClient, concierge.Options{
		Model:          cfg.ModelName,
		ImageModel:     cfg.ImageModelName,
		Temperature:    cfg.Temperature,
		ForwardHistory: cfg.ForwardHistory,
	})

	handler := httpadapter.NewServer(httpadapter.Services{
		Catalog:    cat,
		Storefront: storefront.NewService(sessionStore, orderStore, cat),
		Concierge:  concierge.NewService(bridge, sessionStore, cat),
		Orders:     orders.NewService(orderStore),
		Sessions:   sessionStore,
	}, httpadapter.Options{MaxImageBytes: cfg.MaxImageBytes})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("Lumina API listening",
		"catalog_backend", cfg.CatalogBackend,
		"products", cat.Len())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("Lumina API stopped")
}

// newLLMClient never fails: without credentials the concierge runs in
// always-fallback mode and the rest of the store keeps working.
func newLLMClient(ctx context.Context, log *slog.Logger, cfg *config.Config) domain.LLMClient {
	if cfg.UseMockLLM {
		log.Info("using mock LLM client")
		return llm.NewMockLLM()
	}
	if !cfg.HasCredentials() {
		log.Warn("no model credentials configured, concierge will answer with fallbacks")
		return llm.NewUnavailableLLM()
	}

	client, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
		APIKey:   cfg.APIKey,
		Vertex:   cfg.Backend == config.BackendVertex,
		Project:  cfg.GCPProjectID,
		Location: cfg.GCPLocation,
	})
	if err != nil {
		log.Error("error initializing Gemini client, concierge will answer with fallbacks", "error", err)
		return llm.NewUnavailableLLM()
	}

	log.Info("using Gemini client",
		"backend", cfg.Backend,
		"model", cfg.ModelName)
	return client
}

func loadCatalog(ctx context.Context, log *slog.Logger, cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogBackend != config.CatalogFirestore {
		return catalog.Load(ctx, catalogsrc.NewEmbeddedSource())
	}

	log.Info("loading catalog from Firestore",
		"project", cfg.GCPProjectID,
		"collection", cfg.CatalogCollection)

	src, err := firestorestore.NewCatalogSource(ctx, cfg.GCPProjectID, cfg.CatalogCollection)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return catalog.Load(ctx, src)
}
