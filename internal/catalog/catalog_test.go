package catalog_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Find(t *testing.T) {
	c := catalog.New()

	p, ok := c.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Wireless Headphones", p.Name)
	assert.Equal(t, "99.99", p.Price.StringFixed(2))

	_, ok = c.Find(7)
	assert.False(t, ok)
}

func TestCatalog_ProductsIsACopy(t *testing.T) {
	c := catalog.New()

	products := c.Products()
	require.Len(t, products, 6)
	products[0].Name = "changed"

	p, _ := c.Find(1)
	assert.Equal(t, "Wireless Headphones", p.Name)
}

func TestCatalog_Render(t *testing.T) {
	c := catalog.New()

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf, 0))
	out := buf.String()

	assert.Contains(t, out, `id="products-grid"`)
	assert.Equal(t, 6, strings.Count(out, `class="product-card"`))
	assert.Contains(t, out, "$99.99")
	assert.Contains(t, out, "$249.99")
	assert.Contains(t, out, `name="product_id" value="3"`)
	assert.NotContains(t, out, "Added!")
}

func TestCatalog_RenderMarksAddedProduct(t *testing.T) {
	c := catalog.New()

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf, 2))

	assert.Equal(t, 1, strings.Count(buf.String(), "✓ Added!"))
}

func TestCatalog_RenderEscapesText(t *testing.T) {
	c := catalog.NewWithProducts([]models.Product{
		{Id: 1, Name: "<b>Bold</b>", Price: models.NewMoney(decimal.NewFromInt(1))},
	})

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf, 0))

	assert.NotContains(t, buf.String(), "<b>Bold</b>")
	assert.Contains(t, buf.String(), "$1.00")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestCatalog_RenderWriteError(t *testing.T) {
	err := catalog.New().Render(failingWriter{}, 0)
	assert.ErrorContains(t, err, "catalog.Render")
}
