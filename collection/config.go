package collection

import (
	"fmt"
	"os"

	"github.com/gofrs/uuid"
	"github.com/pelletier/go-toml"
)

type Configuration struct {
	Owner    string `toml:"owner"`
	Registry struct {
		AssetURL  string `toml:"asset-url"`
		MarketURL string `toml:"market-url"`
	} `toml:"registry"`
}

func Setup(path string) (*Configuration, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Configuration
	err = toml.Unmarshal(b, &conf)
	if err != nil {
		return nil, err
	}
	id, _ := uuid.FromString(conf.Owner)
	if id.String() == uuid.Nil.String() {
		return nil, fmt.Errorf("invalid owner identity %s", conf.Owner)
	}
	return &conf, nil
}
