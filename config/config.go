package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"src.goblgobl.com/ticketgimp/barcode"
	"src.goblgobl.com/ticketgimp/codes"
	"src.goblgobl.com/ticketgimp/log"
	"src.goblgobl.com/ticketgimp/storage"
)

type Config struct {
	InstanceId uint8          `json:"instance_id" yaml:"instance_id"`
	Migrations *bool          `json:"migrations" yaml:"migrations"`
	HTTP       HTTP           `json:"http" yaml:"http"`
	Log        log.Config     `json:"log" yaml:"log"`
	Storage    storage.Config `json:"storage" yaml:"storage"`
	Refresh    Refresh        `json:"refresh" yaml:"refresh"`
	Barcode    barcode.Config `json:"barcode" yaml:"barcode"`
}

type HTTP struct {
	Listen string `json:"listen" yaml:"listen"`
}

type Refresh struct {
	// How often the clock is sampled for a window change. 0 means the
	// default (500ms).
	IntervalMS int `json:"interval_ms" yaml:"interval_ms"`
}

// Reads and parses the file; doesn't configure anything. Files ending in
// .yaml or .yml are yaml, everything else is json (comments and trailing
// commas allowed).
func Load(filePath string) (Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, log.Err(codes.ERR_READ_CONFIG, err)
	}

	var config Config
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &config)
	}
	if err != nil {
		return config, log.Err(codes.ERR_PARSE_CONFIG, err)
	}
	return config, nil
}

// Load + configure the logger and the storage singletons.
func Configure(filePath string) (Config, error) {
	config, err := Load(filePath)
	if err != nil {
		return config, err
	}

	if err := log.Configure(config.Log); err != nil {
		return config, err
	}

	if err := storage.Configure(config.Storage); err != nil {
		return config, err
	}

	return config, nil
}
