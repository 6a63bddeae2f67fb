package breadcrumb

import (
	"context"
	"html/template"
	"strings"
	"testing"
)

const (
	pageTemplate   = `{{ define "page" }}{{ breadcrumb "category" .Category }}<h1>{{ .Category.name }}</h1>{{ end }}`
	layoutTemplate = `<nav>{{ breadcrumbs "pretext" "You are here:" }}</nav>` +
		`<ul>{{ range breadcrumb_links }}<li>{{ .Text }} ({{ .Key }})</li>{{ end }}</ul>` +
		`{{ with parent_breadcrumb }}<a class="back" href="{{ .URL }}">{{ .Text }}</a>{{ end }}` +
		`<main>{{ .Body }}</main>`
)

func TestFuncMapPageThenLayout(t *testing.T) {
	ctx := context.Background()
	state := NewState(catalogRegistry(t), nil)
	funcs := FuncMap(ctx, state)

	page := template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))
	var body strings.Builder
	if err := page.ExecuteTemplate(&body, "page", map[string]any{"Category": books()}); err != nil {
		t.Fatalf("execute page: %v", err)
	}

	layout := template.Must(template.New("layout").Funcs(funcs).Parse(layoutTemplate))
	var out strings.Builder
	if err := layout.Execute(&out, map[string]any{"Body": template.HTML(body.String())}); err != nil {
		t.Fatalf("execute layout: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		`<nav><div class="breadcrumbs"><span class="pretext">You are here:</span> <a href="/">Home</a> › <span class="current">Books</span></div></nav>`,
		`<li>Home (home)</li><li>Books (category)</li>`,
		`<a class="back" href="/">Home</a>`,
		`<main><h1>Books</h1></main>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("layout output = %q, want to contain %q", got, want)
		}
	}
}

func TestFuncMapBreadcrumbWithOptionsFails(t *testing.T) {
	state := NewState(catalogRegistry(t), nil)
	tmpl := template.Must(template.New("bad").Funcs(FuncMap(context.Background(), state)).
		Parse(`{{ breadcrumb (crumb_options "pretext" "x") }}`))
	err := tmpl.Execute(&strings.Builder{}, nil)
	if err == nil || !strings.Contains(err.Error(), "breadcrumbs (plural)") {
		t.Fatalf("Execute() error = %v, want invalid usage guidance", err)
	}
}

func TestFuncMapUnsetRendersNothing(t *testing.T) {
	state := NewState(catalogRegistry(t), nil)
	tmpl := template.Must(template.New("empty").Funcs(FuncMap(context.Background(), state)).
		Parse(`[{{ breadcrumbs }}]{{ with parent_breadcrumb }}parent{{ end }}`))
	var out strings.Builder
	if err := tmpl.Execute(&out, nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.String() != "[]" {
		t.Fatalf("Execute() = %q, want %q", out.String(), "[]")
	}
}
