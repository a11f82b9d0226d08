package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ebalakin/cartsync/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The token
// validity is an integer number of minutes.
type JsonConfig struct {
	EndpointAddr                string `json:"endpoint_addr"`
	DatabaseDSN                 string `json:"database_dsn"`
	SecretKey                   string `json:"secret_key"`
	AccessTokenValidityDuration int    `json:"access_token_validity_duration"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. Absent file path means no overlay. Read or unmarshal errors
// panic; intended usage is defaults -> parseJson -> parseFlags.
func parseJson(config *Config) {
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

	if jc.EndpointAddr != "" {
		config.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabaseDSN != "" {
		config.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		config.SecretKey = jc.SecretKey
	}
	if jc.AccessTokenValidityDuration > 0 {
		config.AccessTokenValidityDuration = time.Duration(jc.AccessTokenValidityDuration) * time.Minute
	}
}
