package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/warpdeck/internal/config"
	"github.com/five82/warpdeck/internal/live"
	"github.com/five82/warpdeck/internal/logging"
	"github.com/five82/warpdeck/internal/prefs"
	"github.com/five82/warpdeck/internal/signwarp"
	"github.com/five82/warpdeck/internal/ui"
	"github.com/five82/warpdeck/internal/view"
	"github.com/five82/warpdeck/internal/worlds"
)

// Options configure the warpdeck application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/warpdeck/prefs.toml
	PollEvery  time.Duration // auto-refresh interval; zero uses the config value
}

// Run boots the warpdeck TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := boot(opts)
	if err != nil {
		return err
	}
	defer env.close()

	channel := live.New(live.Options{
		ReconnectDelay: env.cfg.Reconnect,
		Keepalive:      env.cfg.Keepalive,
		Logger:         env.log,
	})
	channel.Start()
	defer channel.Close()

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	synchronizer := view.New(view.Options{
		Prefs:     userPrefs,
		Names:     env.names,
		PollEvery: env.cfg.PollEvery,
		Logger:    env.log,
	})

	env.log.WithFields(logrus.Fields{
		"api_bind": env.cfg.APIBind,
		"poll":     env.cfg.PollEvery,
	}).Info("warpdeck starting")

	err = ui.Run(ui.Options{
		Context:   ctx,
		Sync:      synchronizer,
		Gateway:   env.client,
		Live:      channel,
		PrefsPath: opts.PrefsPath,
		Logger:    env.log,
		APIBind:   env.cfg.APIBind,
	})
	if err != nil {
		env.log.WithError(err).Error("ui exited")
		return fmt.Errorf("run ui: %w", err)
	}
	env.log.Info("warpdeck stopped")
	return nil
}

// environment is the shared setup of the TUI and one-shot commands.
type environment struct {
	cfg    config.Config
	log    *logrus.Logger
	names  worlds.Names
	client *signwarp.Client
	close  func()
}

func boot(opts Options) (*environment, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load warpdeck config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollEvery = opts.PollEvery
	}

	logger, closer, err := logging.Open(cfg.LogFile, logrus.InfoLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	names, err := worlds.Load(cfg.WorldsFile)
	if err != nil {
		logger.WithError(err).WithField("path", cfg.WorldsFile).Warn("world names unreadable; using built-in table")
		names = worlds.Default()
	}

	client, err := signwarp.NewClient(cfg.APIBind)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init signwarp client: %w", err)
	}

	return &environment{
		cfg:    cfg,
		log:    logger,
		names:  names,
		client: client,
		close:  func() { _ = closer.Close() },
	}, nil
}
