// Package crumbcheck validates a breadcrumb definition file and prints the
// parent chain of every key, or resolves one key with sample arguments.
package crumbcheck

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/crumbtrail/internal/breadcrumb"
	"github.com/louisbranch/crumbtrail/internal/breadcrumb/crumbfile"
	platformcmd "github.com/louisbranch/crumbtrail/internal/platform/cmd"
	"github.com/louisbranch/crumbtrail/internal/platform/i18n"
	"gopkg.in/yaml.v3"
)

// Config holds the crumbcheck command configuration.
type Config struct {
	File   string `env:"CRUMBTRAIL_CRUMBS_FILE"`
	Strict bool   `env:"CRUMBTRAIL_STRICT_CRUMBS" envDefault:"true"`
	// Resolve names a key to resolve instead of listing every chain.
	Resolve string
	// Args is a YAML list of arguments passed to the resolved key.
	Args string
	Lang string `env:"CRUMBTRAIL_LANG" envDefault:"en-US"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.File, "file", "", "Breadcrumb definition file (env CRUMBTRAIL_CRUMBS_FILE)")
	fs.BoolVar(&cfg.Strict, "strict", false, "Fail on dangling or cyclic literal parents (default true)")
	fs.StringVar(&cfg.Resolve, "resolve", "", "Resolve this key and print its trail")
	fs.StringVar(&cfg.Args, "args", "", "YAML list of arguments for -resolve, e.g. '[{id: books, name: Books}]'")
	fs.StringVar(&cfg.Lang, "lang", "", "Language for message rules (env CRUMBTRAIL_LANG, default en-US)")
	if err := platformcmd.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.File) == "" {
		return Config{}, errors.New("a breadcrumb file is required (-file or CRUMBTRAIL_CRUMBS_FILE)")
	}
	if cfg.Args != "" && cfg.Resolve == "" {
		return Config{}, errors.New("-args needs -resolve")
	}
	tag, ok := i18n.ParseTag(cfg.Lang)
	if !ok {
		return Config{}, fmt.Errorf("unsupported -lang %q", cfg.Lang)
	}
	cfg.Lang = tag.String()
	return cfg, nil
}

// Run loads the file and writes the report to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceCrumbcheck, func(ctx context.Context) error {
		registry, err := crumbfile.LoadFile(cfg.File, crumbfile.Strict(cfg.Strict))
		if err != nil {
			return err
		}
		if cfg.Resolve != "" {
			return resolve(ctx, registry, cfg, out)
		}
		return report(registry, cfg.File, out)
	})
}

func report(registry *breadcrumb.Registry, name string, out io.Writer) error {
	if _, err := fmt.Fprintf(out, "%s: %d breadcrumbs\n", name, registry.Len()); err != nil {
		return err
	}
	for _, key := range registry.Keys() {
		if _, err := fmt.Fprintln(out, strings.Join(chain(registry, key), " -> ")); err != nil {
			return err
		}
	}
	return nil
}

// chain follows literal parents from key. Computed parents stop the walk.
func chain(registry *breadcrumb.Registry, key breadcrumb.Key) []string {
	steps := []string{string(key)}
	seen := map[breadcrumb.Key]bool{key: true}
	def, _ := registry.Lookup(key)
	for def != nil && def.Parent != nil {
		parent, ok := def.Parent.StaticKey()
		if !ok {
			return append(steps, "(computed)")
		}
		if parent == "" {
			return steps
		}
		steps = append(steps, string(parent))
		if seen[parent] {
			return append(steps, "(cycle)")
		}
		seen[parent] = true
		next, found := registry.Lookup(parent)
		if !found {
			return append(steps, "(missing)")
		}
		def = next
	}
	return steps
}

func resolve(ctx context.Context, registry *breadcrumb.Registry, cfg Config, out io.Writer) error {
	var args []any
	if strings.TrimSpace(cfg.Args) != "" {
		if err := yaml.Unmarshal([]byte(cfg.Args), &args); err != nil {
			return fmt.Errorf("parse -args: %w", err)
		}
	}
	// An empty language means the default; ParseConfig rejects the rest.
	tag, ok := i18n.ParseTag(cfg.Lang)
	if !ok && strings.TrimSpace(cfg.Lang) != "" {
		return fmt.Errorf("unsupported language %q", cfg.Lang)
	}
	state := breadcrumb.NewState(registry, i18n.Printer(tag))
	if err := state.Breadcrumb(cfg.Resolve, args...); err != nil {
		return err
	}
	trail, err := state.Trail(ctx)
	if err != nil {
		return err
	}
	for idx, link := range trail {
		if _, err := fmt.Fprintf(out, "%d. %s <%s>\n", idx+1, link.Text, link.URL); err != nil {
			return err
		}
	}
	return nil
}
