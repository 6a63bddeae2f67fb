package web

import (
	"bytes"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/crumbtrail/internal/breadcrumb"
	apperrors "github.com/louisbranch/crumbtrail/internal/platform/errors"
	"github.com/louisbranch/crumbtrail/internal/platform/requestctx"
	"github.com/louisbranch/crumbtrail/internal/services/web/platform/httpx"
)

// page is one full-page response.
type page struct {
	title  string
	status int
	body   templ.Component
}

type handlers struct {
	catalog *Catalog
}

func (h handlers) home(r *http.Request) (page, error) {
	return page{body: homePage(h.catalog.Categories())}, nil
}

func (h handlers) category(r *http.Request) (page, error) {
	category, err := h.catalog.Category(r.PathValue("id"))
	if err != nil {
		return page{}, err
	}
	return page{title: category.Name, body: categoryPage(category, h.catalog.Products(category.ID))}, nil
}

func (h handlers) product(r *http.Request) (page, error) {
	product, err := h.catalog.Product(r.PathValue("id"))
	if err != nil {
		return page{}, err
	}
	category, err := h.catalog.Category(product.CategoryID)
	if err != nil {
		return page{}, apperrors.Wrap(apperrors.CodeUnknown, "product category", err)
	}
	return page{title: product.Title, body: productPage(product, category)}, nil
}

func (h handlers) search(r *http.Request) (page, error) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	var results []Product
	if query != "" {
		for _, category := range h.catalog.Categories() {
			for _, product := range h.catalog.Products(category.ID) {
				if strings.Contains(strings.ToLower(product.Title), strings.ToLower(query)) {
					results = append(results, product)
				}
			}
		}
	}
	return page{title: query, body: searchPage(query, results)}, nil
}

func (h handlers) about(r *http.Request) (page, error) {
	return page{title: printerFromContext(r.Context()).Sprintf("crumbs.about"), body: aboutPage()}, nil
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// pageHandler renders the page body, then the layout around it, so the
// breadcrumb a page selects is visible to the layout trail.
func pageHandler(build func(*http.Request) (page, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := build(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		ctx := r.Context()
		var body bytes.Buffer
		if err := p.body.Render(ctx, &body); err != nil {
			writeError(w, r, err)
			return
		}
		var out bytes.Buffer
		if err := layout(p.title, r.URL, body.Bytes()).Render(ctx, &out); err != nil {
			writeError(w, r, err)
			return
		}
		status := p.status
		if status == 0 {
			status = http.StatusOK
		}
		if err := httpx.WriteHTML(w, status, out.String()); err != nil {
			log.Printf("write response path=%s err=%v", r.URL.Path, err)
		}
	})
}

// writeError renders a localized error page. The failed page's breadcrumb
// selection is dropped so the error layout cannot fail the same way.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("render page path=%s request_id=%s code=%s err=%v",
			r.URL.Path, requestctx.RequestIDFromContext(r.Context()), apperrors.CodeOf(err), err)
	}

	ctx := breadcrumb.WithState(r.Context(), breadcrumb.NewState(nil, nil))
	message := printerFromContext(ctx).Sprintf(apperrors.CodeOf(err).LocalizationKey())
	var body, out bytes.Buffer
	if renderErr := errorPage(message).Render(ctx, &body); renderErr == nil {
		renderErr = layout(message, r.URL, body.Bytes()).Render(ctx, &out)
		if renderErr == nil {
			if err := httpx.WriteHTML(w, status, out.String()); err != nil {
				log.Printf("write error response path=%s err=%v", r.URL.Path, err)
			}
			return
		}
	}
	http.Error(w, message, status)
}
