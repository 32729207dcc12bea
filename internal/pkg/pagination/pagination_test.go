package pagination

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParamsClamps(t *testing.T) {
	p := NewParams(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = NewParams(3, 500)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 200, p.Offset)
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(NewParams(2, 10), 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = GetMeta(NewParams(1, 10), 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := Slice(items, NewParams(2, 2))
	assert.Equal(t, []int{3, 4}, page.Items)
	assert.Equal(t, int64(5), page.Meta.Total)

	page = Slice(items, NewParams(3, 2))
	assert.Equal(t, []int{5}, page.Items)

	page = Slice(items, NewParams(9, 2))
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestHugePageStaysInRange(t *testing.T) {
	p := NewParams(math.MaxInt/5, 10)
	assert.Equal(t, MaxPage, p.Page)
	assert.GreaterOrEqual(t, p.Offset, 0)

	page := Slice([]int{1, 2, 3}, p)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.False(t, page.Meta.HasNext)

	page = Slice([]int{1, 2, 3}, &Params{Page: 2, Limit: 10, Offset: -6})
	assert.Empty(t, page.Items)
}

func TestGetParamsHugePage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		page := Slice([]int{1, 2, 3}, GetParams(c))
		return c.JSON(page.Meta)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/?page=1844674407370955162&limit=10", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/?page=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

type row struct {
	Name  string
	Price float64
}

func TestSearchAndSort(t *testing.T) {
	rows := []row{{"Marina View", 90000}, {"Downtown Loft", 120000}, {"Marina Gate", 75000}}

	found := Search(rows, "  marina ", func(r row) []string { return []string{r.Name} })
	assert.Len(t, found, 2)
	assert.Len(t, Search(rows, "", func(r row) []string { return []string{r.Name} }), 3)

	sorted := SortBy(rows, func(a, b row) bool { return a.Price < b.Price }, false)
	assert.Equal(t, "Marina Gate", sorted[0].Name)
	assert.Equal(t, "Marina View", rows[0].Name, "input must not be reordered")

	sorted = SortBy(rows, func(a, b row) bool { return a.Price < b.Price }, true)
	assert.Equal(t, "Downtown Loft", sorted[0].Name)

	cheap := Filter(rows, func(r row) bool { return r.Price < 100000 })
	assert.Len(t, cheap, 2)
}
