package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Defaults(t *testing.T) {
	req := Normalize("", "", "", "")

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, DefaultLimit, req.Limit)
	assert.Equal(t, "created_at", req.SortField)
	assert.Equal(t, Descending, req.Direction)
}

func TestNormalize_MalformedValuesBecomeDefaults(t *testing.T) {
	req := Normalize("abc", "xyz", "not-a-field", "sideways")

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, DefaultLimit, req.Limit)
	assert.Equal(t, "created_at", req.SortField)
	assert.Equal(t, Descending, req.Direction)
}

func TestNormalize_ClampsOutOfRange(t *testing.T) {
	req := Normalize("-5", "0", "", "")
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 1, req.Limit)

	req = Normalize("2", "999", "", "")
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, MaxLimit, req.Limit)
}

func TestNormalize_SortAllowList(t *testing.T) {
	cases := map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"views":     "views",
		"duration":  "duration",
		"title":     "title",
		"password":  "created_at",
		"id; DROP":  "created_at",
	}
	for input, want := range cases {
		req := Normalize("", "", input, "")
		assert.Equal(t, want, req.SortField, "sortBy=%q", input)
	}
}

func TestNormalize_Direction(t *testing.T) {
	assert.Equal(t, Ascending, Normalize("", "", "", "asc").Direction)
	assert.Equal(t, Ascending, Normalize("", "", "", "ASC").Direction)
	assert.Equal(t, Ascending, Normalize("", "", "", "1").Direction)
	assert.Equal(t, Descending, Normalize("", "", "", "desc").Direction)
	assert.Equal(t, Descending, Normalize("", "", "", "-1").Direction)
	assert.Equal(t, Descending, Normalize("", "", "", "").Direction)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, PageRequest{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 5, Limit: 10}.Offset())
}

func TestOrderBy_AlwaysAppendsIDTieBreak(t *testing.T) {
	req := PageRequest{SortField: "views", Direction: Descending}
	assert.Equal(t, []string{"v.views DESC", "v.id ASC"}, req.OrderBy("v."))

	req = PageRequest{SortField: "title", Direction: Ascending}
	assert.Equal(t, []string{"title ASC", "id ASC"}, req.OrderBy(""))
}

func TestNewPage_Metadata(t *testing.T) {
	req := PageRequest{Page: 2, Limit: 10}
	page := NewPage([]int{1, 2, 3, 4, 5}, req, 25)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 25, page.TotalDocs)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasPrevPage)
	assert.True(t, page.HasNextPage)
}

func TestNewPage_LastPage(t *testing.T) {
	req := PageRequest{Page: 3, Limit: 10}
	page := NewPage([]int{1, 2, 3, 4, 5}, req, 25)

	assert.True(t, page.HasPrevPage)
	assert.False(t, page.HasNextPage)
}

func TestNewPage_EmptyResultStillWellFormed(t *testing.T) {
	req := PageRequest{Page: 1, Limit: 10}
	page := NewPage[int](nil, req, 0)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalDocs)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasPrevPage)
	assert.False(t, page.HasNextPage)
}

func TestNewPage_ExactMultiple(t *testing.T) {
	req := PageRequest{Page: 1, Limit: 10}
	page := NewPage(make([]int, 10), req, 20)

	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNextPage)
}
