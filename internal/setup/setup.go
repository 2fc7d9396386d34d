package setup

import (
	"github.com/kaiwachat/kaiwa/internal/config"
	"github.com/kaiwachat/kaiwa/internal/handler"
	"github.com/kaiwachat/kaiwa/internal/service"
	"github.com/kaiwachat/kaiwa/internal/storage/fs"
	"github.com/kaiwachat/kaiwa/internal/storage/pg"
)

// Dependencies holds all initialized dependencies of the attachment API.
type Dependencies struct {
	Registry *service.Registry
	Handler  *handler.Handler
	Index    *pg.Storage // nil when the metadata index is disabled
}

// SetupDependencies initializes everything the attachment API needs.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	blob, err := fs.New(cfg.Public.MediaRootPath)
	if err != nil {
		return nil, err
	}

	var index *pg.Storage
	var metaIndex service.MetadataIndex
	var health handler.HealthChecker
	var lister handler.MetadataLister
	if cfg.Public.MetadataIndexEnabled {
		index, err = pg.New(cfg)
		if err != nil {
			return nil, err
		}
		metaIndex = index
		health = index
		lister = index
	}

	registry := service.NewRegistry(blob, metaIndex)
	h := handler.New(registry, cfg, health, lister)

	return &Dependencies{
		Registry: registry,
		Handler:  h,
		Index:    index,
	}, nil
}
