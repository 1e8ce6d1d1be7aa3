package commands

import (
	devenv "catalog-crawler/dev/env"
	"catalog-crawler/internal/components/chrono"
	"catalog-crawler/internal/components/telemetry"
	"catalog-crawler/internal/crawler"
	"catalog-crawler/internal/db"
	"catalog-crawler/internal/history"
	"catalog-crawler/internal/store"
	"catalog-crawler/pkg/configutil"
	"fmt"
)

var tel telemetry.API = telemetry.SlogAPI{}

func readConfig() (crawler.Config, error) {
	cfg, err := configutil.ReadConfig[crawler.Config](*configPath)
	if err != nil {
		return crawler.Config{}, fmt.Errorf("read config %s: %w", *configPath, err)
	}
	return cfg.WithDefaults(), nil
}

func openStore(cfg crawler.Config) (store.Store, error) {
	dir, err := devenv.ResolvePath(cfg.OutputDir)
	if err != nil {
		return store.Store{}, fmt.Errorf("resolve output dir: %w", err)
	}
	return store.NewStore(dir, tel), nil
}

func newClock(cfg crawler.Config) (chrono.API, error) {
	clock, err := chrono.NewStandardImpl(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	return clock, nil
}

// openHistory returns false when no history database is configured.
func openHistory(cfg crawler.Config, clock chrono.API) (history.History, func(), bool, error) {
	dbConfig := cfg.History
	if dbConfig.File == "" && dbConfig.Url == "" {
		return history.History{}, func() {}, false, nil
	}
	if dbConfig.File != "" {
		path, err := devenv.ResolvePath(dbConfig.File)
		if err != nil {
			return history.History{}, nil, false, err
		}
		dbConfig.File = path
	}

	database, err := dbConfig.OpenDB(db.Schema)
	if err != nil {
		return history.History{}, nil, false, fmt.Errorf("open history db: %w", err)
	}
	h := history.NewHistory(db.New(database), db.NewMakeTx(database), clock, tel)
	return h, func() { database.Close() }, true, nil
}
