package main

import (
	devenv "catalog-crawler/dev/env"
	"catalog-crawler/internal/db"
	"catalog-crawler/pkg/configutil"
	"fmt"
	"log/slog"
	"os"
)

const historyFile = "<dev_state>/history.db"

const defaultConfig = `{
  // the root of the catalog site, every path below is relative to it
  "base_url": "https://catalog.example.edu",
  "courses_path": "/courses",
  // requests per second
  "rate_limit": 2,
  "special_topics": ["8803"],
  "output_dir": "<dev_state>/data",
  "timezone": "America/New_York",
  "schedule": "0 6 * * 1",
  "specializations": [
    {
      "id": "machine-learning",
      "name": "Machine Learning",
      "program": "omscs",
      "path": "/specializations/machine-learning",
    },
  ],
  "history": {
    "file": "` + historyFile + `",
  },
}
`

func CreateHistoryDB() error {
	path, err := devenv.ResolvePath(historyFile)
	if err != nil {
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("database already created at", path)
		return nil
	}

	fmt.Println("creating database at", path)
	database, err := configutil.Libsql{File: path}.OpenDB(db.Schema)
	if err != nil {
		return err
	}
	return database.Close()
}

// CreateConfig writes a starting config.json5 to the repository root if there is none.
func CreateConfig() error {
	_, err := os.Stat("config.json5")
	if err == nil {
		fmt.Println("config already exists at config.json5")
		return nil
	}
	fmt.Println("writing config.json5")
	return os.WriteFile("config.json5", []byte(defaultConfig), 0644)
}

func PrintConfigLocations() {
	slog.Info("edit config.json5 (or config.local.json5 for overrides that should not be committed) to point the crawler at a catalog, a telemetry.json5 in the working directory or any of its parents enables OTLP export.")
}
