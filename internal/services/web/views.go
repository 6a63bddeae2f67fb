package web

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/crumbtrail/internal/breadcrumb"
	"github.com/louisbranch/crumbtrail/internal/platform/i18n"
)

// trailOptions renders the layout trail as an ordered list.
var trailOptions = breadcrumb.Options{
	Style:    breadcrumb.StyleOrderedList,
	Class:    "trail",
	Autoroot: true,
	RootKey:  "home",
}

// layout wraps an already rendered page body. Pages select their
// breadcrumb while rendering, so the body is rendered before the layout
// builds the trail.
func layout(title string, current *url.URL, body []byte) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := printerFromContext(ctx)
		lang := languageFromContext(ctx)
		siteTitle := p.Sprintf("web.title")
		if title != "" {
			siteTitle = title + " · " + siteTitle
		}

		var b bytes.Buffer
		b.WriteString(`<!DOCTYPE html><html lang="` + templ.EscapeString(lang.String()) + `"><head><meta charset="utf-8"><title>`)
		b.WriteString(templ.EscapeString(siteTitle))
		b.WriteString(`</title></head><body><header><a class="brand" href="/">`)
		b.WriteString(templ.EscapeString(p.Sprintf("web.title")))
		b.WriteString(`</a>`)
		writeLanguageMenu(&b, p.Sprintf("web.language"), current)
		b.WriteString(`</header><nav aria-label="breadcrumb">`)
		if err := breadcrumb.StateFromContext(ctx).Component(trailOptions).Render(ctx, &b); err != nil {
			return err
		}
		b.WriteString(`</nav><main>`)
		b.Write(body)
		b.WriteString(`</main></body></html>`)
		_, err := w.Write(b.Bytes())
		return err
	})
}

func writeLanguageMenu(b *bytes.Buffer, label string, current *url.URL) {
	path, rawQuery := "/", ""
	if current != nil {
		path, rawQuery = current.Path, current.RawQuery
	}
	b.WriteString(`<ul class="languages" aria-label="` + templ.EscapeString(label) + `">`)
	for _, tag := range i18n.SupportedTags() {
		href := i18n.LanguageURL(path, rawQuery, tag)
		b.WriteString(`<li><a href="` + templ.EscapeString(href) + `">` + templ.EscapeString(tag.String()) + `</a></li>`)
	}
	b.WriteString(`</ul>`)
}

func selectCrumb(ctx context.Context, key breadcrumb.Key, args ...any) error {
	return breadcrumb.StateFromContext(ctx).Breadcrumb(key, args...)
}

func homePage(categories []Category) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := selectCrumb(ctx, "home"); err != nil {
			return err
		}
		p := printerFromContext(ctx)
		var b strings.Builder
		b.WriteString(`<h1>` + templ.EscapeString(p.Sprintf("web.categories")) + `</h1><ul class="categories">`)
		for _, category := range categories {
			b.WriteString(`<li><a href="/categories/` + templ.EscapeString(url.PathEscape(category.ID)) + `">` + templ.EscapeString(category.Name) + `</a></li>`)
		}
		b.WriteString(`</ul>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func categoryPage(category Category, products []Product) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := selectCrumb(ctx, "category", category.crumbArgs()); err != nil {
			return err
		}
		p := printerFromContext(ctx)
		var b strings.Builder
		b.WriteString(`<h1>` + templ.EscapeString(category.Name) + `</h1>`)
		b.WriteString(`<h2>` + templ.EscapeString(p.Sprintf("web.products")) + `</h2>`)
		writeProductList(&b, products)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func productPage(product Product, category Category) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := selectCrumb(ctx, "product", product.crumbArgs(category)); err != nil {
			return err
		}
		p := printerFromContext(ctx)
		var b strings.Builder
		b.WriteString(`<h1>` + templ.EscapeString(product.Title) + `</h1>`)
		b.WriteString(`<p class="price">` + p.Sprintf("$%.2f", float64(product.PriceCents)/100) + `</p>`)
		err := breadcrumb.StateFromContext(ctx).WithParent(ctx, breadcrumb.Options{}, func(parent breadcrumb.Link) {
			b.WriteString(`<p><a class="back" href="` + templ.EscapeString(string(templ.URL(parent.URL))) + `">`)
			b.WriteString(templ.EscapeString(p.Sprintf("web.back_to", parent.Text)) + `</a></p>`)
		})
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, b.String())
		return err
	})
}

func searchPage(query string, results []Product) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := selectCrumb(ctx, "search", query); err != nil {
			return err
		}
		links, err := breadcrumb.WithLinks(ctx, breadcrumb.StateFromContext(ctx), breadcrumb.Options{}, func(links []breadcrumb.Link) []breadcrumb.Link {
			return links
		})
		if err != nil {
			return err
		}
		var b strings.Builder
		if last, ok := breadcrumb.Trail(links).Last(); ok {
			b.WriteString(`<h1>` + templ.EscapeString(last.Text) + `</h1>`)
		}
		writeProductList(&b, results)
		_, err = io.WriteString(w, b.String())
		return err
	})
}

func writeProductList(b *strings.Builder, products []Product) {
	b.WriteString(`<ul class="products">`)
	for _, product := range products {
		b.WriteString(`<li><a href="/products/` + templ.EscapeString(url.PathEscape(product.ID)) + `">` + templ.EscapeString(product.Title) + `</a></li>`)
	}
	b.WriteString(`</ul>`)
}

// aboutTemplate is an html/template page; its breadcrumb helpers are bound
// per request.
var aboutTemplate = template.Must(template.New("about").Funcs(placeholderFuncs()).Parse(
	`{{ breadcrumb "about" }}<h1>{{ t "crumbs.about" }}</h1><p>{{ t "web.about_body" }}</p>` +
		`{{ with parent_breadcrumb }}<p><a class="back" href="{{ .URL }}">{{ t "web.back_to" .Text }}</a></p>{{ end }}`,
))

func placeholderFuncs() template.FuncMap {
	funcs := breadcrumb.FuncMap(context.Background(), nil)
	funcs["t"] = func(string, ...any) string { return "" }
	return funcs
}

func aboutPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := printerFromContext(ctx)
		funcs := breadcrumb.FuncMap(ctx, breadcrumb.StateFromContext(ctx))
		funcs["t"] = func(key string, args ...any) string { return p.Sprintf(key, args...) }
		tmpl, err := aboutTemplate.Clone()
		if err != nil {
			return fmt.Errorf("clone about template: %w", err)
		}
		return tmpl.Funcs(funcs).Execute(w, nil)
	})
}

func errorPage(message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1 class="error">`+templ.EscapeString(message)+`</h1>`)
		return err
	})
}
