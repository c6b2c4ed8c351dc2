package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/justalter/dancectl/internal/config"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Collection.DancesDir != "Dances" {
		t.Errorf("dances_dir = %q", cfg.Collection.DancesDir)
	}
	if cfg.Remote.Retries != 2 {
		t.Errorf("retries = %d", cfg.Remote.Retries)
	}
	if cfg.RemoteTimeout() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.RemoteTimeout())
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `collection:
  root: /srv/mods
  strip_extension: true
  authors:
    acm: 安卓喵
remote:
  mirrors:
    - https://example.test/dances.json
  retries: 4
upload:
  endpoint: https://example.test/upload
  contributor_id: justalter
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Collection.Root != "/srv/mods" {
		t.Errorf("root = %q", cfg.Collection.Root)
	}
	if !cfg.Collection.StripExt {
		t.Error("strip_extension not read")
	}
	if cfg.Collection.Authors["acm"] != "安卓喵" {
		t.Errorf("authors = %v", cfg.Collection.Authors)
	}
	if len(cfg.Remote.Mirrors) != 1 || cfg.Remote.Retries != 4 {
		t.Errorf("remote = %+v", cfg.Remote)
	}
	if cfg.Upload.ContributorID != "justalter" {
		t.Errorf("upload = %+v", cfg.Upload)
	}
	if got := cfg.DancesRoot(); got != filepath.Join("/srv/mods", "Dances") {
		t.Errorf("DancesRoot = %q", got)
	}
	if got := cfg.CatalogFile(); got != filepath.Join("/srv/mods", "DanceStates", "DanceInfo", "dances.json") {
		t.Errorf("CatalogFile = %q", got)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := &config.Config{}
	cfg.Collection.Root = "/data"
	cfg.Collection.DancesDir = "Dances"
	cfg.Collection.CatalogPath = "dances.json"
	cfg.Upload.ContributorID = "someone"

	if err := config.Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Collection.Root != "/data" || back.Upload.ContributorID != "someone" {
		t.Errorf("round trip lost fields: %+v", back)
	}
}
