package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/justalter/dancectl/internal/catalog"
	"github.com/justalter/dancectl/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{}
	cfg.Collection.Root = root
	cfg.Collection.DancesDir = "Dances"
	cfg.Collection.CatalogPath = filepath.Join("DanceStates", "DanceInfo", "dances.json")
	return cfg
}

func writeDance(t *testing.T, c *config.Config, rel, content string) string {
	t.Helper()
	path := filepath.Join(c.DancesRoot(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunScan_WritesCatalog(t *testing.T) {
	old := cfg
	defer func() { cfg = old }()
	cfg = testConfig(t)

	writeDance(t, cfg, "tanito/a.unity3d", "content-a")
	writeDance(t, cfg, "b.unity3d", "content-b")

	if err := runScan(context.Background(), false, false); err != nil {
		t.Fatalf("runScan: %v", err)
	}

	cat := catalog.Load(cfg.CatalogFile())
	if len(cat) != 2 {
		t.Fatalf("catalog has %d entries, want 2", len(cat))
	}
	for _, e := range cat {
		if e.Name == "a.unity3d" && e.Author != "tanito" {
			t.Errorf("author = %q, want tanito", e.Author)
		}
	}
}

func TestRunScan_PruneDropsMissing(t *testing.T) {
	old := cfg
	defer func() { cfg = old }()
	cfg = testConfig(t)

	path := writeDance(t, cfg, "gone.unity3d", "soon-removed")
	if err := runScan(context.Background(), false, false); err != nil {
		t.Fatalf("first runScan: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	// Default scan retains the orphan entry.
	if err := runScan(context.Background(), false, false); err != nil {
		t.Fatalf("second runScan: %v", err)
	}
	if cat := catalog.Load(cfg.CatalogFile()); len(cat) != 1 {
		t.Fatalf("entry was purged without --prune: %d entries", len(cat))
	}

	if err := runScan(context.Background(), true, false); err != nil {
		t.Fatalf("prune runScan: %v", err)
	}
	if cat := catalog.Load(cfg.CatalogFile()); len(cat) != 0 {
		t.Errorf("prune left %d entries", len(cat))
	}
}
