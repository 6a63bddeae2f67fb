package breadcrumb

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/louisbranch/crumbtrail/internal/platform/errors"
)

// Registry is an immutable set of breadcrumb definitions.
type Registry struct {
	defs map[Key]*Definition
	keys []Key
}

// NewRegistry builds a Registry, rejecting empty or duplicate keys and
// definitions without a text rule.
func NewRegistry(defs ...Definition) (*Registry, error) {
	registry := &Registry{defs: make(map[Key]*Definition, len(defs))}
	for idx := range defs {
		def := defs[idx]
		key := Key(strings.TrimSpace(string(def.Key)))
		if key == "" {
			return nil, apperrors.New(apperrors.CodeBreadcrumbDefinitionInvalid,
				fmt.Sprintf("breadcrumb definition %d: key is required", idx))
		}
		if _, exists := registry.defs[key]; exists {
			return nil, apperrors.WithMetadata(apperrors.CodeBreadcrumbDefinitionInvalid,
				fmt.Sprintf("breadcrumb %q defined twice", key),
				map[string]string{"key": string(key)})
		}
		if def.Text == nil {
			return nil, apperrors.WithMetadata(apperrors.CodeBreadcrumbDefinitionInvalid,
				fmt.Sprintf("breadcrumb %q: text rule is required", key),
				map[string]string{"key": string(key)})
		}
		if def.Parent != nil && def.Parent.Key == nil {
			return nil, apperrors.WithMetadata(apperrors.CodeBreadcrumbDefinitionInvalid,
				fmt.Sprintf("breadcrumb %q: parent key rule is required", key),
				map[string]string{"key": string(key)})
		}
		def.Key = key
		registry.defs[key] = &def
		registry.keys = append(registry.keys, key)
	}
	sort.Slice(registry.keys, func(i, j int) bool { return registry.keys[i] < registry.keys[j] })
	return registry, nil
}

// MustRegistry is NewRegistry for definitions known at build time.
func MustRegistry(defs ...Definition) *Registry {
	registry, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return registry
}

// Lookup returns the definition for key.
func (r *Registry) Lookup(key Key) (*Definition, bool) {
	if r == nil {
		return nil, false
	}
	def, ok := r.defs[key]
	return def, ok
}

// Keys returns all keys in sorted order.
func (r *Registry) Keys() []Key {
	if r == nil {
		return nil
	}
	return append([]Key(nil), r.keys...)
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Validate checks parent links that do not depend on arguments: every
// literal parent must exist and literal chains must not loop. Computed
// parents are only checked during resolution.
func (r *Registry) Validate() error {
	if r == nil {
		return nil
	}
	var problems []error
	for _, key := range r.keys {
		parent, ok := r.defs[key].Parent.StaticKey()
		if !ok || parent == "" {
			continue
		}
		if _, exists := r.defs[parent]; !exists {
			problems = append(problems, &UnknownBreadcrumbError{Key: parent, Child: key})
		}
	}
	reported := map[Key]bool{}
	for _, start := range r.keys {
		path := []Key{start}
		onPath := map[Key]bool{start: true}
		current := start
		for {
			def, ok := r.defs[current]
			if !ok {
				break
			}
			next, static := def.Parent.StaticKey()
			if !static || next == "" {
				break
			}
			path = append(path, next)
			if onPath[next] {
				if !reported[next] {
					for _, key := range path {
						reported[key] = true
					}
					problems = append(problems, &CyclicBreadcrumbError{Path: path})
				}
				break
			}
			onPath[next] = true
			current = next
		}
	}
	return errors.Join(problems...)
}
