// Package config loads the simulation configuration and the bill
// catalog from YAML files, with compiled-in defaults when no file is
// given.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/azmanhj/dewansim/internal/engine"
)

// SimConfig is the top-level runtime configuration.
type SimConfig struct {
	Seed      int64  `yaml:"seed"`
	StartDate string `yaml:"start_date"` // YYYY-MM-DD

	// Speed is the initial clock speed by name: paused, slow, normal,
	// fast, fastest.
	Speed string `yaml:"speed"`

	APIAddr      string `yaml:"api_addr"`
	SnapshotPath string `yaml:"snapshot_path"`

	// SnapshotEveryDays is the simulated-day interval between automatic
	// snapshots. Zero disables them.
	SnapshotEveryDays int `yaml:"snapshot_every_days"`

	// ConstituencyCSV, when set, replaces the generated country with
	// demographics loaded from file.
	ConstituencyCSV string `yaml:"constituency_csv"`

	BillCatalogPath string `yaml:"bill_catalog_path"`
}

// Default returns the configuration used when no file is supplied.
func Default() SimConfig {
	return SimConfig{
		Seed:              time.Now().UnixNano(),
		StartDate:         "1957-08-31",
		Speed:             "normal",
		APIAddr:           ":8099",
		SnapshotPath:      "dewansim.db",
		SnapshotEveryDays: 30,
	}
}

// Load reads a YAML config file, filling unset fields from Default.
// A missing file is not an error; it just yields the defaults.
func Load(path string) (SimConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Speed == "" {
		cfg.Speed = "normal"
	}
	return cfg, nil
}

// Start parses the configured start date.
func (c SimConfig) Start() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing start_date %q: %w", c.StartDate, err)
	}
	return t, nil
}

// LoadBills reads a YAML bill catalog. An empty path or missing file
// yields the compiled-in default catalog.
func LoadBills(path string) ([]engine.Bill, error) {
	if path == "" {
		return engine.DefaultBillCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return engine.DefaultBillCatalog(), nil
		}
		return nil, fmt.Errorf("reading bill catalog: %w", err)
	}
	var doc struct {
		Bills []engine.Bill `yaml:"bills"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing bill catalog %s: %w", path, err)
	}
	if len(doc.Bills) == 0 {
		return nil, fmt.Errorf("bill catalog %s: no bills defined", path)
	}
	return doc.Bills, nil
}
