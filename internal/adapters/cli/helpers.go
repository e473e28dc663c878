package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/production-planner/internal/adapters/catalogfile"
	"github.com/andrescamacho/production-planner/internal/adapters/persistence"
	"github.com/andrescamacho/production-planner/internal/application/common"
	"github.com/andrescamacho/production-planner/internal/domain/production"
	"github.com/andrescamacho/production-planner/internal/infrastructure/config"
	"github.com/andrescamacho/production-planner/internal/infrastructure/database"
	"github.com/andrescamacho/production-planner/internal/infrastructure/logging"
)

// newUserConfigHandler is replaced in tests to keep user preferences out of $HOME
var newUserConfigHandler = config.NewUserConfigHandler

// session holds what every command needs: configuration, the logger and a
// context carrying it
type session struct {
	cfg    *config.Config
	logger *logging.SlogLogger
	ctx    context.Context
}

// newSession loads configuration and builds the logger
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &session{
		cfg:    cfg,
		logger: logger,
		ctx:    common.WithLogger(cmd.Context(), logger),
	}, nil
}

// Close releases the session's log file
func (s *session) Close() {
	_ = s.logger.Close()
}

// catalogSource picks the catalog source. An explicit file path wins over the
// configured source. The returned cleanup function must always be called.
func (s *session) catalogSource(path string) (production.CatalogSource, func(), error) {
	noop := func() {}
	if path != "" {
		return catalogfile.NewFileSource(path), noop, nil
	}

	switch s.cfg.Catalog.Source {
	case config.CatalogSourceFile:
		return catalogfile.NewFileSource(s.cfg.Catalog.Path), noop, nil
	case config.CatalogSourceDatabase:
		repo, cleanup, err := s.catalogRepository()
		if err != nil {
			return nil, noop, err
		}
		return repo, cleanup, nil
	default:
		return catalogfile.NewEmbeddedSource(), noop, nil
	}
}

// catalogRepository connects to the configured database and migrates the catalog tables
func (s *session) catalogRepository() (*persistence.GormCatalogRepository, func(), error) {
	db, err := database.NewConnection(&s.cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	cleanup := func() { _ = database.Close(db) }

	if err := database.AutoMigrate(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return persistence.NewGormCatalogRepository(db), cleanup, nil
}

// loadCatalog loads and validates a catalog, logging its soft problems
func (s *session) loadCatalog(source production.CatalogSource) (*production.Catalog, error) {
	def, err := source.Load(s.ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	catalog, warnings, err := production.NewCatalog(def)
	for _, warning := range warnings {
		s.logger.Log("WARNING", "Catalog problem", map[string]interface{}{
			"problem": warning,
		})
	}
	if err != nil {
		return nil, err
	}

	s.logger.Log("DEBUG", "Catalog loaded", map[string]interface{}{
		"items":     len(catalog.ItemKeys()),
		"recipes":   len(catalog.Recipes()),
		"resources": len(catalog.Resources()),
	})
	return catalog, nil
}

// parseItemRates parses "item=rate" arguments. Items are resolved by key or
// display name.
func parseItemRates(catalog *production.Catalog, values []string) ([]production.ItemRate, error) {
	rates := make([]production.ItemRate, 0, len(values))
	for _, value := range values {
		ref, rawRate, ok := strings.Cut(value, "=")
		if !ok {
			return nil, fmt.Errorf("invalid item rate %q: expected item=rate", value)
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(rawRate), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rate in %q: %w", value, err)
		}
		item, err := catalog.ResolveItem(strings.TrimSpace(ref))
		if err != nil {
			return nil, err
		}
		rates = append(rates, production.NewItemRate(item, rate))
	}
	return rates, nil
}

// resolveBans maps banned references onto the catalog. References the catalog
// does not know are skipped.
func resolveBans(logger common.Logger, catalog *production.Catalog, inputs, recipes []string) ([]production.Item, []*production.Recipe) {
	var items []production.Item
	for _, ref := range dedupe(inputs) {
		item, err := catalog.ResolveItem(ref)
		if err != nil {
			logger.Log("DEBUG", "Banned input not in catalog, ignored", map[string]interface{}{
				"item": ref,
			})
			continue
		}
		items = append(items, item)
	}

	var banned []*production.Recipe
	for _, name := range dedupe(recipes) {
		recipe, err := catalog.ResolveRecipe(name)
		if err != nil {
			logger.Log("DEBUG", "Banned recipe not in catalog, ignored", map[string]interface{}{
				"recipe": name,
			})
			continue
		}
		banned = append(banned, recipe)
	}
	return items, banned
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var result []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}
