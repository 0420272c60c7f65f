package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/iamwavecut/wordguard/internal/infra"
)

// SetupLogging points the standard logrus logger at stdout and, when a log
// file is configured, at that file too. The returned closer releases the file.
func SetupLogging(cfg Log) (io.Closer, error) {
	log.SetLevel(log.Level(cfg.Level))

	var out io.Writer = os.Stdout
	var closer io.Closer = io.NopCloser(nil)
	if cfg.File != "" {
		if err := infra.EnsureParentDir(cfg.File); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, errors.Wrap(err, "open log file")
		}
		out = io.MultiWriter(os.Stdout, f)
		closer = f
	}
	log.SetOutput(out)
	log.SetFormatter(NewFormatter(cfg.Format))
	return closer, nil
}

// NewFormatter picks the formatter for the configured format. Colors only
// make sense without a log file, so "pretty" is the only colored one.
func NewFormatter(format string) log.Formatter {
	switch format {
	case "pretty":
		return &NbFormatter{Colors: true}
	case "kv":
		return &NbFormatter{}
	default:
		return &log.TextFormatter{
			DisableColors:    true,
			FullTimestamp:    true,
			TimestampFormat:  "2006-01-02 15:04:05",
			QuoteEmptyFields: true,
		}
	}
}
