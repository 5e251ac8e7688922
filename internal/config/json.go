package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the optional JSON config file.
type StructuredJSONConfig struct {
	Storage struct {
		Driver string `json:"driver"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			NotesPath string `json:"notes_path"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Autosave struct {
		Debounce Duration `json:"debounce"`
		Sync     bool     `json:"sync"`
	} `json:"autosave,omitempty"`

	Watch struct {
		Disabled bool `json:"disabled"`
	} `json:"watch,omitempty"`

	UI struct {
		PreviewLines int `json:"preview_lines"`
		PreviewWidth int `json:"preview_width"`
	} `json:"ui,omitempty"`

	Log struct {
		Path  string `json:"path"`
		Level string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Storage: Storage{
			Driver: jsonCfg.Storage.Driver,
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				NotesPath: jsonCfg.Storage.Files.NotesPath,
			},
		},
		Autosave: Autosave{
			Debounce: time.Duration(jsonCfg.Autosave.Debounce),
			Sync:     jsonCfg.Autosave.Sync,
		},
		Watch: Watch{
			Disabled: jsonCfg.Watch.Disabled,
		},
		UI: UI{
			PreviewLines: jsonCfg.UI.PreviewLines,
			PreviewWidth: jsonCfg.UI.PreviewWidth,
		},
		Log: Log{
			Path:  jsonCfg.Log.Path,
			Level: jsonCfg.Log.Level,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
