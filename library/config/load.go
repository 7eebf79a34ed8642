// Package config loads the optional settings file into gconfig.Shared.
package config

import (
	"path/filepath"
	"strings"
	"time"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"

	"github.com/Laisky/vigi-tools/library/log"
)

// LoadFromFile merges the YAML file at cfgPath into gconfig.Shared.
// An empty path is allowed: every setting has a default.
func LoadFromFile(cfgPath string) {
	cfgPath = strings.TrimSpace(cfgPath)
	if cfgPath == "" {
		log.Logger.Debug("no configuration file given, using defaults")
		return
	}

	gconfig.Shared.Set("cfg_dir", filepath.Dir(cfgPath))
	if err := gconfig.Shared.LoadFromFile(cfgPath); err != nil {
		log.Logger.Panic("load configuration",
			zap.Error(err),
			zap.String("config", cfgPath))
	}

	log.Logger.Info("load configuration",
		zap.String("config", cfgPath))
}

// Seconds reads an integer number of seconds at key, falling back to def
// when the key is unset or not positive.
func Seconds(key string, def time.Duration) time.Duration {
	if gconfig.Shared.Get(key) == nil {
		return def
	}

	n := gconfig.Shared.GetInt(key)
	if n <= 0 {
		return def
	}

	return time.Duration(n) * time.Second
}

// String reads a trimmed string at key, falling back to def when blank.
func String(key, def string) string {
	v := strings.TrimSpace(gconfig.Shared.GetString(key))
	if v == "" {
		return def
	}

	return v
}

// Bool reads a boolean at key, falling back to def when the key is unset.
func Bool(key string, def bool) bool {
	if gconfig.Shared.Get(key) == nil {
		return def
	}

	return gconfig.Shared.GetBool(key)
}
