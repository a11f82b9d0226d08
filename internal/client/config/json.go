package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ebalakin/cartsync/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals are
// integer seconds to keep the file format trivial.
type JsonConfig struct {
	ServerAddr   string `json:"server_addr"`
	DatabasePath string `json:"database_path"`
	SyncInterval int    `json:"sync_interval"`
	PingInterval int    `json:"ping_interval"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. Absent file path means no overlay. Read or unmarshal errors
// panic; intended usage is defaults -> parseJson -> parseFlags.
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

	if jc.ServerAddr != "" {
		cfg.ServerAddr = jc.ServerAddr
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.SyncInterval > 0 {
		cfg.SyncInterval = time.Duration(jc.SyncInterval) * time.Second
	}
	if jc.PingInterval > 0 {
		cfg.PingInterval = time.Duration(jc.PingInterval) * time.Second
	}
}
