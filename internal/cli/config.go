// Config loading for the assocrows CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/assocrows/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyLogLevel     = "log_level"
	cfgKeySeqURL       = "seq_url"
	cfgKeySyncStrategy = "sync_strategy"
	cfgKeyBatchSize    = "batch_size"

	// envPrefix lets ASSOCROWS_LOG_LEVEL and ASSOCROWS_SEQ_URL override config.yaml.
	envPrefix = "ASSOCROWS"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
	SeqURL       string `yaml:"seq_url,omitempty"`
	SyncStrategy string `yaml:"sync_strategy,omitempty"`
	BatchSize    int    `yaml:"batch_size,omitempty"`
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), configFile{
		Backend:  types.BackendSQLite,
		LogLevel: "info",
	}); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetDefault(cfgKeySyncStrategy, types.SyncImmediate)
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyLogLevel, cfgKeySeqURL} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// storeConfig builds the backend configuration from viper and the data dir.
func storeConfig(v *viper.Viper, dataDir string) types.Config {
	return types.Config{
		Backend:      v.GetString(cfgKeyBackend),
		DataDir:      dataDir,
		SyncStrategy: v.GetString(cfgKeySyncStrategy),
		BatchSize:    v.GetInt(cfgKeyBatchSize),
	}
}

// writeConfigIfMissing creates config.yaml with cfg if the file does not
// exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path string, cfg configFile) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
