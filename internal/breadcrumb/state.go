package breadcrumb

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/crumbtrail/internal/breadcrumb"

// State is the per-request breadcrumb selection and its memoized trail.
// It is not safe for concurrent use.
type State struct {
	registry *Registry
	loc      Localizer

	key  Key
	args []any

	resolved bool
	trail    Trail
	err      error

	rootResolved bool
	rootKey      Key
	root         Trail
	rootErr      error
}

// NewState returns an empty State bound to registry and loc.
func NewState(registry *Registry, loc Localizer) *State {
	return &State{registry: registry, loc: loc}
}

// Breadcrumb selects the breadcrumb the current page represents. A later
// call replaces the selection and discards any resolved trail.
func (s *State) Breadcrumb(key any, args ...any) error {
	if s == nil {
		return errors.New("breadcrumb state is not installed on this request")
	}
	selected, ok := selectionKey(key)
	if !ok {
		return &InvalidUsageError{Got: key}
	}
	s.key = selected
	s.args = args
	s.resolved = false
	s.trail = nil
	s.err = nil
	return nil
}

func selectionKey(key any) (Key, bool) {
	var raw string
	switch v := key.(type) {
	case nil, Options, *Options:
		return "", false
	case Key:
		raw = string(v)
	case string:
		raw = v
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", false
		}
		raw = v.String()
	default:
		rv := reflect.ValueOf(key)
		if rv.Kind() != reflect.String {
			return "", false
		}
		raw = rv.String()
	}
	raw = strings.TrimSpace(raw)
	return Key(raw), raw != ""
}

// Selected returns the current selection. The key is empty when nothing has
// been selected.
func (s *State) Selected() (Key, []any) {
	if s == nil {
		return "", nil
	}
	return s.key, s.args
}

// Trail resolves the selection on first use and returns the cached result
// afterwards, error included.
func (s *State) Trail(ctx context.Context) (Trail, error) {
	if s == nil {
		return Trail{}, nil
	}
	if s.resolved {
		return s.trail, s.err
	}
	s.trail, s.err = s.resolve(ctx, s.key, s.args)
	s.resolved = true
	return s.trail, s.err
}

func (s *State) resolve(ctx context.Context, key Key, args []any) (Trail, error) {
	if key == "" {
		return Trail{}, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	_, span := otel.Tracer(tracerName).Start(ctx, "breadcrumb.resolve",
		trace.WithAttributes(attribute.String("breadcrumb.key", string(key))))
	defer span.End()

	trail, err := s.registry.Resolve(RuleContext{Args: args, Loc: s.loc}, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("breadcrumb.depth", len(trail)))
	return trail, nil
}

func (s *State) rootTrail(ctx context.Context, rootKey Key) (Trail, error) {
	if _, ok := s.registry.Lookup(rootKey); !ok {
		return nil, nil
	}
	if !s.rootResolved || s.rootKey != rootKey {
		s.root, s.rootErr = s.resolve(ctx, rootKey, nil)
		s.rootKey = rootKey
		s.rootResolved = true
	}
	return s.root, s.rootErr
}

// Links projects the resolved trail through opts. This is the sequence both
// HTML rendering and WithLinks consume.
func (s *State) Links(ctx context.Context, opts Options) ([]Link, error) {
	trail, err := s.Trail(ctx)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	links := make([]Link, 0, len(trail)+1)
	if opts.Autoroot && len(trail) > 0 && trail[0].Key != opts.RootKey {
		root, err := s.rootTrail(ctx, opts.RootKey)
		if err != nil {
			return nil, err
		}
		links = append(links, root...)
	}
	links = append(links, trail...)
	if opts.HideSingle && len(links) == 1 {
		return []Link{}, nil
	}
	return links, nil
}

// Parent returns the link before the current one, if present.
func (s *State) Parent(ctx context.Context, opts Options) (Link, bool, error) {
	links, err := s.Links(ctx, opts)
	if err != nil {
		return Link{}, false, err
	}
	parent, ok := Trail(links).Parent()
	return parent, ok, nil
}

// WithParent calls fn with the parent link only when one exists.
func (s *State) WithParent(ctx context.Context, opts Options, fn func(Link)) error {
	parent, ok, err := s.Parent(ctx, opts)
	if err != nil {
		return err
	}
	if ok && fn != nil {
		fn(parent)
	}
	return nil
}

// WithLinks hands the projected links to fn and returns its result.
func WithLinks[T any](ctx context.Context, s *State, opts Options, fn func([]Link) T) (T, error) {
	var zero T
	links, err := s.Links(ctx, opts)
	if err != nil {
		return zero, err
	}
	return fn(links), nil
}
