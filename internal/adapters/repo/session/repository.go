package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/doctowatch/internal/domain"
	"github.com/bnema/doctowatch/internal/ports"
)

const (
	configName      = "config"
	configType      = "toml"
	configDirName   = ".doctowatch"
	sessionPathKey  = "session.path"
	dataDirName     = "doctowatch"
	stateFileName   = "state.json"
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	tempFilePattern = ".state-*.json.tmp"
)

// Repository keeps the session blob in a JSON file under the XDG data
// directory. The location can be overridden through the session.path key in
// ~/.doctowatch/config.toml; a default config is written on first use.
type Repository struct {
	statePath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, configDirName)
	defaultPath := filepath.Join(dataHome(homeDir), dataDirName, stateFileName)
	hasOverride := cfg.IsSet(sessionPathKey)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(configDir)
	cfg.SetDefault(sessionPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if !hasOverride {
			if err := writeDefaultConfig(configDir, defaultPath); err != nil {
				return nil, err
			}
		}
	}

	statePath := cfg.GetString(sessionPathKey)
	if statePath == "" {
		return nil, errors.New("session path is empty")
	}
	statePath, err = normalizeStatePath(statePath)
	if err != nil {
		return nil, err
	}

	return &Repository{statePath: statePath, mu: lockForPath(statePath)}, nil
}

// Path reports where the session blob lives on disk.
func (r *Repository) Path() string {
	return r.statePath
}

func (r *Repository) Load(ctx context.Context) (domain.SessionState, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionState{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.SessionState{}, err
	}

	return domain.SessionState{Cookies: file.Cookies, LastURL: file.LastURL}, nil
}

func (r *Repository) Save(ctx context.Context, state domain.SessionState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := stateSchema{Cookies: state.Cookies, LastURL: state.LastURL}
	file.applyDefaults()

	return r.writeSchema(file)
}

// Clear removes the session blob. A blob that never existed is not an error.
func (r *Repository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.statePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}

	return nil
}

func (r *Repository) readSchema() (stateSchema, error) {
	data, err := os.ReadFile(r.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			empty := stateSchema{}
			empty.applyDefaults()
			return empty, nil
		}
		return stateSchema{}, fmt.Errorf("read session file: %w", err)
	}

	var file stateSchema
	if err := json.Unmarshal(data, &file); err != nil {
		return stateSchema{}, fmt.Errorf("decode session file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return stateSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file stateSchema) error {
	if err := os.MkdirAll(filepath.Dir(r.statePath), stateDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.statePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}

	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, r.statePath); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.statePath, stateFileMode); err != nil {
		return fmt.Errorf("chmod session file: %w", err)
	}

	return nil
}

// dataHome resolves the XDG data directory, honoring $XDG_DATA_HOME.
func dataHome(homeDir string) string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}

	return filepath.Join(homeDir, ".local", "share")
}

func writeDefaultConfig(configDir, statePath string) error {
	if err := os.MkdirAll(configDir, stateDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(configSchema{Session: sessionConfigSchema{Path: statePath}})
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}

	configPath := filepath.Join(configDir, configName+"."+configType)
	if err := os.WriteFile(configPath, data, stateFileMode); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	return nil
}

func normalizeStatePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve session path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
