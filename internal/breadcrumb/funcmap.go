package breadcrumb

import (
	"context"
	"html/template"
)

// FuncMap binds the breadcrumb entry points of state for html/template:
//
//	{{ breadcrumb "category" .Category }}
//	{{ breadcrumbs "pretext" "You are here:" }}
//	{{ range breadcrumb_links }}<a href="{{ .URL }}">{{ .Text }}</a>{{ end }}
//	{{ with parent_breadcrumb }}<a href="{{ .URL }}">Back</a>{{ end }}
func FuncMap(ctx context.Context, state *State) template.FuncMap {
	return template.FuncMap{
		"breadcrumb": func(key any, args ...any) (string, error) {
			return "", state.Breadcrumb(key, args...)
		},
		"breadcrumbs": func(options ...any) (template.HTML, error) {
			opts, err := ParseOptions(options...)
			if err != nil {
				return "", err
			}
			out, err := state.Render(ctx, opts)
			if err != nil {
				return "", err
			}
			// Render escapes every definition and option value it writes.
			return template.HTML(out), nil
		},
		"breadcrumb_links": func(options ...any) ([]Link, error) {
			opts, err := ParseOptions(options...)
			if err != nil {
				return nil, err
			}
			return WithLinks(ctx, state, opts, func(links []Link) []Link { return links })
		},
		"parent_breadcrumb": func(options ...any) (*Link, error) {
			opts, err := ParseOptions(options...)
			if err != nil {
				return nil, err
			}
			parent, ok, err := state.Parent(ctx, opts)
			if err != nil || !ok {
				return nil, err
			}
			return &parent, nil
		},
		"crumb_options": Dict,
	}
}
