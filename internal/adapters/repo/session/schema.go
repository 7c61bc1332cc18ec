package session

import "fmt"

const currentSchemaVersion = 1

type stateSchema struct {
	Version int               `json:"version"`
	Cookies map[string]string `json:"cookies"`
	LastURL string            `json:"url,omitempty"`
}

func (s *stateSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.Cookies == nil {
		s.Cookies = map[string]string{}
	}
}

func (s stateSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// configSchema is the shape of ~/.doctowatch/config.toml.
type configSchema struct {
	Session sessionConfigSchema `toml:"session"`
}

type sessionConfigSchema struct {
	Path string `toml:"path"`
}
