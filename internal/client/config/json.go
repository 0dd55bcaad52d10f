package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/tickettrack/internal/flagx"
	"github.com/dmitrijs2005/tickettrack/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the latency either as a string like "1s"
// or as integer nanoseconds.
type JsonConfig struct {
	DatabaseDSN string         `json:"database_dsn"`
	AuthLatency timex.Duration `json:"auth_latency"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags (see flagx.JsonConfigFlags); when
// absent, nothing is loaded. Panics on read or unmarshal errors.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.AuthLatency = time.Duration(jc.AuthLatency.Duration)
}
