package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/iamwavecut/wordguard/internal/infra"
)

const envPrefix = "WG_"

type (
	Config struct {
		TelegramAPIToken   string        `env:"TOKEN,required"`
		AdminIDs           []int64       `env:"ADMIN_IDS"`
		WhitelistedUserIDs []int64       `env:"WHITELISTED_USER_IDS"`
		WordsFile          string        `env:"WORDS_FILE,default=banned_words.txt"`
		DefaultLanguage    string        `env:"LANG,default=ru"`
		EnabledHandlers    []string      `env:"HANDLERS,default=admin,wordfilter"`
		MatchTimeout       time.Duration `env:"MATCH_TIMEOUT,default=100ms"`
		Log                Log
		Polling            Polling
		MetricsAddr        string `env:"METRICS_ADDR"`
		WatchExecutable    bool   `env:"WATCH_EXECUTABLE,default=false"`
	}

	Log struct {
		Level  int    `env:"LOG_LEVEL,default=4"`
		File   string `env:"LOG_FILE,default=bot.log"`
		Format string `env:"LOG_FORMAT,default=text"`
	}

	Polling struct {
		Timeout      int           `env:"POLL_TIMEOUT,default=60"`
		UpdateMaxAge time.Duration `env:"UPDATE_MAX_AGE"`
	}
)

var (
	once         sync.Once
	globalConfig = &Config{}
	globalErr    error
)

// Load reads the process environment once and caches the result.
func Load() (Config, error) {
	once.Do(func() {
		cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
		if err != nil {
			globalErr = err
			return
		}
		log.Traceln("loaded config")
		globalConfig = cfg
	})
	return *globalConfig, globalErr
}

// LoadFrom reads the WG_ prefixed variables from l and expands ~ in paths.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	envcfg := envconfig.Config{
		Lookuper: envconfig.PrefixLookuper(envPrefix, l),
		Target:   cfg,
	}
	if err := envconfig.ProcessWith(ctx, &envcfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	var err error
	if cfg.WordsFile, err = infra.ExpandPath(cfg.WordsFile); err != nil {
		return nil, fmt.Errorf("expand words file path: %w", err)
	}
	if cfg.Log.File, err = infra.ExpandPath(cfg.Log.File); err != nil {
		return nil, fmt.Errorf("expand log file path: %w", err)
	}
	return cfg, nil
}
