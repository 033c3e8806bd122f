package root

import (
	"context"

	"github.com/getaltair/altair-sub003/internal/config"
	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/storage"
)

func openService(ctx context.Context) (*engine.Service, *config.Config, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return engine.NewService(db, loc), cfg, cleanup, nil
}
