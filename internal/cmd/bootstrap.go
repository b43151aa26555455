package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/Iron-Ham/panelkit/internal/config"
	"github.com/Iron-Ham/panelkit/internal/definition"
	"github.com/Iron-Ham/panelkit/internal/errors"
	"github.com/Iron-Ham/panelkit/internal/host"
	"github.com/Iron-Ham/panelkit/internal/logging"
	"github.com/Iron-Ham/panelkit/internal/panels"
	"github.com/Iron-Ham/panelkit/internal/tui/styles"
	"github.com/spf13/viper"
)

// runtime is a host with every configured panel mounted.
type runtime struct {
	cfg    *config.Config
	logger *logging.Logger
	styles *styles.Styles
	host   *host.Host
}

// bootstrap loads the configuration, opens the log and mounts the built-in
// and declared panels.
func bootstrap() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(cfg.LogDir(), cfg.Logging.Level, cfg.Rotation())
		if err != nil {
			return nil, err
		}
	}

	st, err := loadStyles(cfg)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	h := host.New(host.Options{
		Logger:   logger,
		Styles:   st,
		TabWidth: cfg.TUI.TabWidth,
	})
	rt := &runtime{cfg: cfg, logger: logger, styles: st, host: h}

	if err := rt.mountPanels(); err != nil {
		rt.close()
		return nil, err
	}
	return rt, nil
}

func loadStyles(cfg *config.Config) (*styles.Styles, error) {
	palette, err := styles.Resolve(cfg.TUI.Theme)
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", cfg.TUI.Theme, err)
	}
	return styles.New(palette), nil
}

func (rt *runtime) mountPanels() error {
	h := rt.host

	if rt.cfg.BuiltinEnabled(config.BuiltinGeneral) {
		logFile := ""
		if rt.cfg.Logging.Enabled {
			logFile = filepath.Join(rt.cfg.LogDir(), logging.FileName)
		}
		general := panels.NewGeneral(h, panels.Info{
			Theme:      rt.cfg.TUI.Theme,
			ConfigFile: viper.ConfigFileUsed(),
			LogFile:    logFile,
			Panels:     rt.namespaces,
		}, rt.logger)
		if _, err := h.Mount(general); err != nil {
			return err
		}
	}

	specs, err := definition.LoadDir(rt.cfg.PanelsDir())
	if err != nil {
		return fmt.Errorf("loading panels from %s: %w", rt.cfg.PanelsDir(), err)
	}
	for _, spec := range specs {
		if _, err := h.Mount(definition.Build(spec, h, rt.logger)); err != nil {
			return errors.Wrapf(err, "mounting %s", spec.Source)
		}
	}

	rt.logger.Info("panels mounted", "count", len(h.Components()), "dir", rt.cfg.PanelsDir())
	return nil
}

func (rt *runtime) namespaces() []string {
	comps := rt.host.Components()
	out := make([]string, 0, len(comps))
	for _, c := range comps {
		out = append(out, c.Namespace())
	}
	return out
}

// openOnStart opens the configured panels. Failures are collected so one
// missing panel does not keep the others closed.
func (rt *runtime) openOnStart() error {
	var errs []error
	for _, ns := range rt.cfg.Panels.OpenOnStart {
		opened, err := rt.host.Open(ns)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !opened {
			rt.logger.Info("panel not opened on start", "namespace", ns)
		}
	}
	return errors.Join(errs...)
}

func (rt *runtime) close() {
	rt.host.Shutdown()
	_ = rt.logger.Close()
}
