package commands

import (
	"time"

	"milesearch-backend/lib/configutil"
)

const configFile = "milesearch.json5"

type Config struct {
	Endpoint       string `json:"endpoint"`
	ScriptUrl      string `json:"script_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	// where searches are recorded and read back by `history`
	DB string `json:"db"`
	// where http messages go with --dump
	DumpDir      string `json:"dump_dir"`
	HistoryLimit int    `json:"history_limit"`
}

var defaultConfig = Config{
	TimeoutSeconds: 30,
	DB:             "<dev_state>/milesearch.db",
	DumpDir:        "<dev_state>/resty/milesearch",
	HistoryLimit:   20,
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// readConfig reads `path` (with its .local override) or, when it is empty,
// the closest milesearch.json5 up from the cwd. Having no config at all is
// fine, every field has a default.
func readConfig(path string) (Config, error) {
	var cfg Config
	var err error
	if path != "" {
		cfg, err = configutil.ReadConfig[Config](path)
	} else {
		cfg, err = configutil.ReadRecursively[Config](configFile)
		if configutil.IsNotFound(err) {
			err = nil
		}
	}
	if err != nil {
		return Config{}, err
	}
	return configutil.WithDefaults(cfg, defaultConfig)
}
