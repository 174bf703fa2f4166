package service

import (
	"relay_bot/internal/models"
	"relay_bot/internal/modules/config"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Store reads the host bot's live trading config from disk. The path is
// fixed when the process starts; /reload_config always re-reads the
// same file.
type Store struct {
	path string
}

func NewStore(cfg *config.Config) *Store {
	return &Store{path: cfg.LiveConfigPath}
}

func (s *Store) Path() string { return s.path }

// Load parses the file from scratch on every call. A fresh viper
// instance per read keeps a broken file from leaving stale keys behind.
func (s *Store) Load() (models.LiveConfig, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read live config")
	}

	return models.LiveConfig(v.AllSettings()), nil
}
