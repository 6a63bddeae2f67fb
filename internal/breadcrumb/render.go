package breadcrumb

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// Component renders the trail of s as HTML. Resolution happens when the
// component renders, so a layout may build it before the page selects.
func (s *State) Component(opts Options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		links, err := s.Links(ctx, opts)
		if err != nil {
			return err
		}
		return Fragment(links, opts).Render(ctx, w)
	})
}

// Render returns the trail of s as an HTML string. An empty trail renders
// as the empty string.
func (s *State) Render(ctx context.Context, opts Options) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var b strings.Builder
	if err := s.Component(opts).Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Fragment renders already projected links.
func Fragment(links []Link, opts Options) templ.Component {
	opts = opts.withDefaults()
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(links) == 0 {
			return nil
		}
		tw := &trailWriter{ctx: ctx, w: w, opts: opts}
		switch opts.Style {
		case StyleOrderedList, StyleUnorderedList:
			tw.list(string(opts.Style), links)
		default:
			tw.inline(links)
		}
		return tw.err
	})
}

type trailWriter struct {
	ctx  context.Context
	w    io.Writer
	opts Options
	err  error
}

func (tw *trailWriter) write(parts ...string) {
	for _, part := range parts {
		if tw.err != nil {
			return
		}
		_, tw.err = io.WriteString(tw.w, part)
	}
}

func (tw *trailWriter) inline(links []Link) {
	tw.write("<div", tw.containerAttrs(), ">")
	if tw.opts.Pretext != "" {
		tw.write(`<span`, classAttr(tw.opts.PretextClass), ">", templ.EscapeString(tw.opts.Pretext), "</span> ")
	}
	for idx, link := range links {
		if idx > 0 {
			tw.write(templ.EscapeString(tw.opts.Separator))
		}
		current := idx == len(links)-1
		if tw.custom(link, current) {
			continue
		}
		switch {
		case current && !tw.opts.LinkCurrent:
			tw.write("<span", classAttr(tw.opts.CurrentClass), ">", templ.EscapeString(link.Text), "</span>")
		case current:
			tw.anchor(link, tw.opts.CurrentClass)
		default:
			tw.anchor(link, tw.opts.FragmentClass)
		}
	}
	if tw.opts.Posttext != "" {
		tw.write(` <span`, classAttr(tw.opts.PosttextClass), ">", templ.EscapeString(tw.opts.Posttext), "</span>")
	}
	tw.write("</div>")
}

func (tw *trailWriter) list(tag string, links []Link) {
	tw.write("<", tag, tw.containerAttrs(), ">")
	if tw.opts.Pretext != "" {
		tw.write("<li", classAttr(tw.opts.PretextClass), ">", templ.EscapeString(tw.opts.Pretext), "</li>")
	}
	for idx, link := range links {
		current := idx == len(links)-1
		class := tw.opts.FragmentClass
		if current {
			class = tw.opts.CurrentClass
		}
		tw.write("<li", classAttr(class), ">")
		switch {
		case tw.custom(link, current):
		case current && !tw.opts.LinkCurrent:
			tw.write(templ.EscapeString(link.Text))
		default:
			tw.anchor(link, "")
		}
		tw.write("</li>")
	}
	if tw.opts.Posttext != "" {
		tw.write("<li", classAttr(tw.opts.PosttextClass), ">", templ.EscapeString(tw.opts.Posttext), "</li>")
	}
	tw.write("</", tag, ">")
}

// custom renders link through FormatLink when one is configured.
func (tw *trailWriter) custom(link Link, current bool) bool {
	if tw.opts.FormatLink == nil {
		return false
	}
	component := tw.opts.FormatLink(link, current)
	if component == nil || tw.err != nil {
		return true
	}
	tw.err = component.Render(tw.ctx, tw.w)
	return true
}

func (tw *trailWriter) anchor(link Link, class string) {
	href := string(templ.URL(link.URL))
	tw.write(`<a href="`, templ.EscapeString(href), `"`, classAttr(class), ">", templ.EscapeString(link.Text), "</a>")
}

func (tw *trailWriter) containerAttrs() string {
	var b strings.Builder
	if tw.opts.ID != "" {
		b.WriteString(` id="` + templ.EscapeString(tw.opts.ID) + `"`)
	}
	b.WriteString(classAttr(tw.opts.Class))
	b.WriteString(extraAttrs(tw.opts.Attributes))
	return b.String()
}

func classAttr(class string) string {
	class = strings.TrimSpace(class)
	if class == "" {
		return ""
	}
	return ` class="` + templ.EscapeString(class) + `"`
}

// extraAttrs renders pass-through options in key order. Keys outside the
// attribute-name alphabet are dropped.
func extraAttrs(attrs map[string]any) string {
	if len(attrs) == 0 {
		return ""
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		if validAttrName(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		switch value := attrs[name].(type) {
		case nil:
		case bool:
			if value {
				b.WriteString(" " + name)
			}
		default:
			b.WriteString(" " + name + `="` + templ.EscapeString(fmt.Sprint(value)) + `"`)
		}
	}
	return b.String()
}

func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == ':', r == '.':
		default:
			return false
		}
	}
	return true
}
