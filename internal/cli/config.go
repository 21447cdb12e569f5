// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/docconv/pkg/types"
)

// load reads the config file and DOCCONV_* environment over the defaults
// and sets up the diagnostic logger.
func (a *App) load() error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.Stderr, &slog.HandlerOptions{Level: level}))

	v := viper.New()
	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.SetConfigName("docconv")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "docconv"))
		}
	}

	v.SetEnvPrefix("DOCCONV")
	v.AutomaticEnv()

	def := types.DefaultConfig()
	v.SetDefault("dpi", def.DPI)
	v.SetDefault("page_size", string(def.PageSize))
	v.SetDefault("chrome_bin", def.ChromeBin)
	v.SetDefault("render_timeout", def.RenderTimeout)
	v.SetDefault("soffice_bin", def.SofficeBin)
	v.SetDefault("out_dir", def.OutDir)
	v.SetDefault("max_age", def.MaxAge)
	v.SetDefault("history_db", def.HistoryDB)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || a.cfgFile != "" {
			return fmt.Errorf("reading config: %w", err)
		}
	} else {
		a.logger.Debug("using config file", "path", v.ConfigFileUsed())
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	cfg.PageSize = types.PageSize(strings.ToLower(string(cfg.PageSize)))
	if err := validate(cfg); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded", "dpi", cfg.DPI, "page_size", cfg.PageSize, "out_dir", cfg.OutDir)
	return nil
}

func validate(cfg types.Config) error {
	if cfg.DPI <= 0 {
		return fmt.Errorf("invalid config: dpi must be positive, got %v", cfg.DPI)
	}
	if cfg.PageSize != types.PageLetter && cfg.PageSize != types.PageA4 {
		return fmt.Errorf("invalid config: page_size must be %q or %q, got %q", types.PageLetter, types.PageA4, cfg.PageSize)
	}
	if cfg.RenderTimeout <= 0 {
		return fmt.Errorf("invalid config: render_timeout must be positive, got %s", cfg.RenderTimeout)
	}
	return nil
}
