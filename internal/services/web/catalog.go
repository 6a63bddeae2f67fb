package web

import (
	"sort"
	"strings"

	apperrors "github.com/louisbranch/crumbtrail/internal/platform/errors"
)

// Category groups products on the shop front.
type Category struct {
	ID   string
	Name string
}

// Product is one item for sale.
type Product struct {
	ID         string
	Title      string
	CategoryID string
	PriceCents int
}

// Catalog is the in-memory shop inventory.
type Catalog struct {
	categories map[string]Category
	products   map[string]Product
}

// NewCatalog indexes categories and products by id.
func NewCatalog(categories []Category, products []Product) *Catalog {
	c := &Catalog{
		categories: make(map[string]Category, len(categories)),
		products:   make(map[string]Product, len(products)),
	}
	for _, category := range categories {
		c.categories[category.ID] = category
	}
	for _, product := range products {
		c.products[product.ID] = product
	}
	return c
}

// DefaultCatalog returns the demo inventory.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		[]Category{
			{ID: "books", Name: "Books"},
			{ID: "maps", Name: "Maps & Atlases"},
		},
		[]Product{
			{ID: "hansel", Title: "Hansel and Gretel", CategoryID: "books", PriceCents: 1299},
			{ID: "theseus", Title: "Theseus and the Labyrinth", CategoryID: "books", PriceCents: 1550},
			{ID: "black-forest", Title: "Black Forest Trail Map", CategoryID: "maps", PriceCents: 899},
		},
	)
}

// Categories lists categories sorted by name.
func (c *Catalog) Categories() []Category {
	out := make([]Category, 0, len(c.categories))
	for _, category := range c.categories {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Category returns the category with id.
func (c *Catalog) Category(id string) (Category, error) {
	category, ok := c.categories[strings.TrimSpace(id)]
	if !ok {
		return Category{}, apperrors.WithMetadata(apperrors.CodeNotFound, "category not found", map[string]string{"CategoryID": id})
	}
	return category, nil
}

// Product returns the product with id.
func (c *Catalog) Product(id string) (Product, error) {
	product, ok := c.products[strings.TrimSpace(id)]
	if !ok {
		return Product{}, apperrors.WithMetadata(apperrors.CodeNotFound, "product not found", map[string]string{"ProductID": id})
	}
	return product, nil
}

// Products lists the products of a category sorted by title.
func (c *Catalog) Products(categoryID string) []Product {
	var out []Product
	for _, product := range c.products {
		if product.CategoryID == categoryID {
			out = append(out, product)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

// crumbArgs exposes a category to breadcrumb rules as a plain map so both
// expr and CEL programs can read its fields.
func (c Category) crumbArgs() map[string]any {
	return map[string]any{"id": c.ID, "name": c.Name}
}

func (p Product) crumbArgs(category Category) map[string]any {
	return map[string]any{"id": p.ID, "title": p.Title, "category": category.crumbArgs()}
}

var errNotFound = apperrors.New(apperrors.CodeNotFound, "page not found")
