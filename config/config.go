// C:\Users\wasab\OneDrive\デスクトップ\TPK\config\config.go
package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	OutputSuffix       string `json:"outputSuffix"`
	MaxUploadMB        int    `json:"maxUploadMB"`
	BrowserMaxRequests int    `json:"browserMaxRequests"`
	RenderTimeoutSec   int    `json:"renderTimeoutSec"`
	FolderWorkers      int    `json:"folderWorkers"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./tpk_config.json"

func applyDefaults(c *Config) {
	if c.OutputSuffix == "" {
		c.OutputSuffix = "_変換結果"
	}
	if c.MaxUploadMB == 0 {
		c.MaxUploadMB = 100
	}
	if c.BrowserMaxRequests == 0 {
		c.BrowserMaxRequests = 50
	}
	if c.RenderTimeoutSec == 0 {
		c.RenderTimeoutSec = 30
	}
	if c.FolderWorkers == 0 {
		// 1ならログの出力順が決定的になる。フォルダ間に共有状態はないので
		// 増やしても安全。
		c.FolderWorkers = 1
	}
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&tempCfg)
	cfg = tempCfg

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
