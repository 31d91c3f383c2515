package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"storefront/internal/models"
)

//go:embed templates/*.html
var templates embed.FS

var gridTemplate = template.Must(
	template.New("grid.html").
		Funcs(template.FuncMap{"price": FormatPrice}).
		ParseFS(templates, "templates/grid.html"),
)

var defaultProducts = []models.Product{
	{
		Id:          1,
		Name:        "Wireless Headphones",
		Description: "Premium quality wireless headphones with noise cancellation",
		Price:       models.RequireMoney("99.99"),
		Emoji:       "🎧",
	},
	{
		Id:          2,
		Name:        "Smart Watch",
		Description: "Feature-rich smartwatch with health tracking",
		Price:       models.RequireMoney("249.99"),
		Emoji:       "⌚",
	},
	{
		Id:          3,
		Name:        "Laptop Stand",
		Description: "Ergonomic aluminum laptop stand for better posture",
		Price:       models.RequireMoney("49.99"),
		Emoji:       "💻",
	},
	{
		Id:          4,
		Name:        "Wireless Mouse",
		Description: "Ergonomic wireless mouse with long battery life",
		Price:       models.RequireMoney("29.99"),
		Emoji:       "🖱️",
	},
	{
		Id:          5,
		Name:        "USB-C Hub",
		Description: "Multi-port USB-C hub for all your devices",
		Price:       models.RequireMoney("39.99"),
		Emoji:       "🔌",
	},
	{
		Id:          6,
		Name:        "Mechanical Keyboard",
		Description: "RGB mechanical keyboard with blue switches",
		Price:       models.RequireMoney("89.99"),
		Emoji:       "⌨️",
	},
}

// Catalog is an immutable product list.
type Catalog struct {
	products []models.Product
}

func New() *Catalog {
	return NewWithProducts(defaultProducts)
}

func NewWithProducts(products []models.Product) *Catalog {
	own := make([]models.Product, len(products))
	copy(own, products)
	return &Catalog{products: own}
}

func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Find(productId int) (models.Product, bool) {
	for _, p := range c.products {
		if p.Id == productId {
			return p, true
		}
	}
	return models.Product{}, false
}

type card struct {
	models.Product
	Added bool
}

// Render writes the products-grid element, one card per product. The card
// whose id equals addedId shows the "Added!" label; pass 0 for none.
func (c *Catalog) Render(w io.Writer, addedId int) error {
	const op = "catalog.Render"

	cards := make([]card, 0, len(c.products))
	for _, p := range c.products {
		cards = append(cards, card{Product: p, Added: p.Id == addedId})
	}

	var buf bytes.Buffer
	if err := gridTemplate.Execute(&buf, cards); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func FormatPrice(price models.Money) string {
	return "$" + price.StringFixed(2)
}
