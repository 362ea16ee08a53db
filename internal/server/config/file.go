package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/bailbridge/internal/flagx"
	"github.com/dmitrijs2005/bailbridge/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Durations accept
// "24h" style strings or integer nanoseconds. Absent keys leave the current
// value alone.
type FileConfig struct {
	HTTPAddr         string         `json:"http_addr" yaml:"http_addr"`
	DatabaseDSN      string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey        string         `json:"secret_key" yaml:"secret_key"`
	TokenValidity    timex.Duration `json:"token_validity" yaml:"token_validity"`
	CORSOrigin       string         `json:"cors_origin" yaml:"cors_origin"`
	LogLevel         string         `json:"log_level" yaml:"log_level"`
	UseInMemoryStore *bool          `json:"use_in_memory_store" yaml:"use_in_memory_store"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// parseFile loads the file named by -c/-config into config. Files ending in
// .yaml or .yml are read as YAML, anything else as JSON. A missing or
// invalid file panics.
func parseFile(config *Config) {

	path := flagx.ConfigFileFlag()

	// nothing to load
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.CORSOrigin, c.CORSOrigin)
	setString(&config.LogLevel, c.LogLevel)

	if c.TokenValidity.Duration > 0 {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.UseInMemoryStore != nil {
		config.UseInMemoryStore = *c.UseInMemoryStore
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
