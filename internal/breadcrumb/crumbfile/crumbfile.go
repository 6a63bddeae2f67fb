// Package crumbfile loads breadcrumb definitions from YAML files.
//
// A definition file maps keys to text, url and parent rules:
//
//	crumbs:
//	  home:
//	    text: Home
//	    url: /
//	  category:
//	    text: {expr: arg.name}
//	    url: {expr: '"/categories/" + string(arg.id)'}
//	    parent: home
//
// Scalars are literals. Mappings select one engine: value, expr, cel or t
// (a message key with optional args rules). A parent is a key or a mapping
// with key, key_expr or key_cel and optional args rules; without args the
// child's arguments are forwarded.
package crumbfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"github.com/louisbranch/crumbtrail/internal/breadcrumb"
	"gopkg.in/yaml.v3"
)

// Option configures loading.
type Option func(*loadConfig)

type loadConfig struct {
	strict bool
}

// Strict makes loading fail when Registry.Validate reports a dangling
// literal parent or a literal parent cycle.
func Strict(enabled bool) Option {
	return func(cfg *loadConfig) {
		cfg.strict = enabled
	}
}

// Parse builds a Registry from definition file contents.
func Parse(data []byte, opts ...Option) (*breadcrumb.Registry, error) {
	cfg := loadConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var file fileSpec
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("no breadcrumbs defined")
		}
		return nil, fmt.Errorf("decode breadcrumbs: %w", err)
	}
	if len(file.Crumbs) == 0 {
		return nil, fmt.Errorf("no breadcrumbs defined")
	}

	keys := make([]string, 0, len(file.Crumbs))
	for key := range file.Crumbs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	defs := make([]breadcrumb.Definition, 0, len(keys))
	for _, key := range keys {
		def, err := file.Crumbs[key].definition(key)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	registry, err := breadcrumb.NewRegistry(defs...)
	if err != nil {
		return nil, err
	}
	if cfg.strict {
		if err := registry.Validate(); err != nil {
			return nil, fmt.Errorf("validate breadcrumbs: %w", err)
		}
	}
	return registry, nil
}

// Load reads and parses name from fsys.
func Load(fsys fs.FS, name string, opts ...Option) (*breadcrumb.Registry, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	registry, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return registry, nil
}

// LoadFile reads and parses the file at path.
func LoadFile(path string, opts ...Option) (*breadcrumb.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	registry, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return registry, nil
}
