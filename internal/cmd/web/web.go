// Package web parses web command configuration and launches the demo shop.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/crumbtrail/internal/breadcrumb/crumbfile"
	platformcmd "github.com/louisbranch/crumbtrail/internal/platform/cmd"
	"github.com/louisbranch/crumbtrail/internal/platform/timeouts"
	"github.com/louisbranch/crumbtrail/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr string `env:"CRUMBTRAIL_HTTP_ADDR" envDefault:"localhost:8086"`
	// CrumbsFile replaces the embedded definitions when set.
	CrumbsFile string `env:"CRUMBTRAIL_CRUMBS_FILE"`
	DevReload  bool   `env:"CRUMBTRAIL_DEV_RELOAD"`
	Strict     bool   `env:"CRUMBTRAIL_STRICT_CRUMBS" envDefault:"true"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	// Flag defaults are zero values; env defaults land after registration.
	fs.StringVar(&cfg.HTTPAddr, "http-addr", "", "HTTP listen address (env CRUMBTRAIL_HTTP_ADDR, default localhost:8086)")
	fs.StringVar(&cfg.CrumbsFile, "crumbs", "", "Breadcrumb definition file (defaults to the embedded file)")
	fs.BoolVar(&cfg.DevReload, "dev-reload", false, "Reload the breadcrumb file when it changes")
	fs.BoolVar(&cfg.Strict, "strict-crumbs", false, "Reject dangling or cyclic breadcrumb parents at load (default true)")
	if err := platformcmd.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	if cfg.DevReload && strings.TrimSpace(cfg.CrumbsFile) == "" {
		return Config{}, fmt.Errorf("dev reload requires a breadcrumb file")
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceWeb, func(ctx context.Context) error {
		store, err := loadCrumbs(cfg)
		if err != nil {
			return fmt.Errorf("load breadcrumbs: %w", err)
		}
		if cfg.DevReload {
			if err := store.Watch(ctx, timeouts.ReloadDebounce); err != nil {
				return fmt.Errorf("watch breadcrumbs: %w", err)
			}
			log.Printf("watching breadcrumbs path=%s", cfg.CrumbsFile)
		}

		server, err := web.NewServer(ctx, web.Config{HTTPAddr: cfg.HTTPAddr, Crumbs: store})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		log.Printf("web listening addr=%s crumbs=%d", server.Addr(), store.Registry().Len())
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func loadCrumbs(cfg Config) (*crumbfile.Store, error) {
	path := strings.TrimSpace(cfg.CrumbsFile)
	if path == "" {
		return web.DefaultCrumbs()
	}
	return crumbfile.NewStore(path, crumbfile.Strict(cfg.Strict))
}
