package collection_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kulkarohan/collections/collection"
)

func TestSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
owner = "` + ownerO + `"

[registry]
asset-url = "http://localhost:8001"
market-url = "http://localhost:8002"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := collection.Setup(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Owner != ownerO {
		t.Errorf("owner: %s", conf.Owner)
	}
	if conf.Registry.AssetURL != "http://localhost:8001" || conf.Registry.MarketURL != "http://localhost:8002" {
		t.Errorf("registry urls: %+v", conf.Registry)
	}
}

func TestSetupRejectsInvalidOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`owner = "not-an-identity"`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := collection.Setup(path); err == nil {
		t.Fatal("invalid owner accepted")
	}
}
