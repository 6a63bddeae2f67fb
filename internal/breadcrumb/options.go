package breadcrumb

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-viper/mapstructure/v2"
)

// Style selects the markup used for the trail container.
type Style string

const (
	// StyleInline renders links inside a div joined by the separator.
	StyleInline Style = "inline"
	// StyleOrderedList renders an ol with one li per link.
	StyleOrderedList Style = "ol"
	// StyleUnorderedList renders a ul with one li per link.
	StyleUnorderedList Style = "ul"
)

const (
	defaultSeparator     = " › "
	defaultRootKey       = Key("root")
	defaultClass         = "breadcrumbs"
	defaultCurrentClass  = "current"
	defaultPretextClass  = "pretext"
	defaultPosttextClass = "posttext"
)

// LinkFormatter renders one trail fragment in place of the default markup.
type LinkFormatter func(link Link, current bool) templ.Component

// Options controls link projection and HTML rendering.
type Options struct {
	Separator string `mapstructure:"separator"`
	Pretext   string `mapstructure:"pretext"`
	Posttext  string `mapstructure:"posttext"`
	// LinkCurrent renders the last crumb as an anchor instead of text.
	LinkCurrent bool `mapstructure:"link_current"`
	// Autoroot prepends RootKey when it is defined and not already first.
	Autoroot bool `mapstructure:"autoroot"`
	RootKey  Key  `mapstructure:"root_key"`
	// HideSingle drops the trail when only one link would render.
	HideSingle bool  `mapstructure:"hide_single"`
	Style      Style `mapstructure:"style"`

	ID            string `mapstructure:"id"`
	Class         string `mapstructure:"class"`
	CurrentClass  string `mapstructure:"current_class"`
	FragmentClass string `mapstructure:"fragment_class"`
	PretextClass  string `mapstructure:"pretext_class"`
	PosttextClass string `mapstructure:"posttext_class"`

	FormatLink LinkFormatter `mapstructure:"-"`

	// Attributes holds unrecognized options, rendered on the container.
	Attributes map[string]any `mapstructure:",remain"`
}

func (o Options) withDefaults() Options {
	if o.Separator == "" {
		o.Separator = defaultSeparator
	}
	if o.RootKey == "" {
		o.RootKey = defaultRootKey
	}
	if o.Style == "" {
		o.Style = StyleInline
	}
	if o.Class == "" {
		o.Class = defaultClass
	}
	if o.CurrentClass == "" {
		o.CurrentClass = defaultCurrentClass
	}
	if o.PretextClass == "" {
		o.PretextClass = defaultPretextClass
	}
	if o.PosttextClass == "" {
		o.PosttextClass = defaultPosttextClass
	}
	return o
}

// OptionsFromMap decodes template-style options. Unknown keys are kept in
// Attributes.
func OptionsFromMap(values map[string]any) (Options, error) {
	var opts Options
	if len(values) == 0 {
		return opts, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Options{}, fmt.Errorf("build options decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return Options{}, fmt.Errorf("decode breadcrumb options: %w", err)
	}
	switch opts.Style {
	case "", StyleInline, StyleOrderedList, StyleUnorderedList:
	default:
		return Options{}, fmt.Errorf("decode breadcrumb options: unknown style %q", opts.Style)
	}
	return opts, nil
}

// ParseOptions accepts the option forms templates pass around: nothing, an
// Options value or pointer, a map, or alternating key/value pairs.
func ParseOptions(values ...any) (Options, error) {
	switch len(values) {
	case 0:
		return Options{}, nil
	case 1:
		switch v := values[0].(type) {
		case nil:
			return Options{}, nil
		case Options:
			return v, nil
		case *Options:
			if v == nil {
				return Options{}, nil
			}
			return *v, nil
		case map[string]any:
			return OptionsFromMap(v)
		case map[string]string:
			converted := make(map[string]any, len(v))
			for key, value := range v {
				converted[key] = value
			}
			return OptionsFromMap(converted)
		}
	}
	pairs, err := Dict(values...)
	if err != nil {
		return Options{}, err
	}
	return OptionsFromMap(pairs)
}

// Dict builds a map from alternating string keys and values.
func Dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("breadcrumb options: odd number of key/value arguments")
	}
	out := make(map[string]any, len(values)/2)
	for idx := 0; idx < len(values); idx += 2 {
		key, ok := values[idx].(string)
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("breadcrumb options: key %d must be a non-empty string, got %#v", idx/2, values[idx])
		}
		out[key] = values[idx+1]
	}
	return out, nil
}
