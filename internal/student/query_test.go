package student

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := ParseListParams(url.Values{})
		require.NoError(t, err)

		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, SortCreatedAtDesc, p.Sort)
		assert.False(t, p.IncludeDeleted)
		assert.Empty(t, p.Q)
		assert.Empty(t, p.District)
	})

	t.Run("page floors to 1", func(t *testing.T) {
		for _, raw := range []string{"0", "-5"} {
			p, err := ParseListParams(url.Values{"page": {raw}})
			require.NoError(t, err)
			assert.Equal(t, 1, p.Page, "page=%s", raw)
		}
	})

	t.Run("limit clamps into range", func(t *testing.T) {
		p, err := ParseListParams(url.Values{"limit": {"1000"}})
		require.NoError(t, err)
		assert.Equal(t, 50, p.Limit)

		p, err = ParseListParams(url.Values{"limit": {"0"}})
		require.NoError(t, err)
		assert.Equal(t, 1, p.Limit)
	})

	t.Run("non-numeric pagination is rejected", func(t *testing.T) {
		for _, values := range []url.Values{
			{"page": {"abc"}},
			{"limit": {"ten"}},
		} {
			_, err := ParseListParams(values)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "Page and limit must be numbers", vErr.Fields["page"])
		}
	})

	t.Run("invalid district is rejected before querying", func(t *testing.T) {
		_, err := ParseListParams(url.Values{"district": {"Midtown"}})

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Invalid district", vErr.Message)
		assert.Equal(t, "District must be selected from the list", vErr.Fields["address.district"])
	})

	t.Run("unknown sort falls back to default", func(t *testing.T) {
		p, err := ParseListParams(url.Values{"sort": {"name_asc"}})
		require.NoError(t, err)
		assert.Equal(t, SortCreatedAtDesc, p.Sort)

		p, err = ParseListParams(url.Values{"sort": {SortCreatedAtAsc}})
		require.NoError(t, err)
		assert.Equal(t, SortCreatedAtAsc, p.Sort)
	})

	t.Run("includeDeleted only on exact true", func(t *testing.T) {
		p, err := ParseListParams(url.Values{"includeDeleted": {"true"}})
		require.NoError(t, err)
		assert.True(t, p.IncludeDeleted)

		p, err = ParseListParams(url.Values{"includeDeleted": {"1"}})
		require.NoError(t, err)
		assert.False(t, p.IncludeDeleted)
	})
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `spring`, escapeLike("spring"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\temp`, escapeLike(`c:\temp`))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(101, 50))
}

func TestOffset(t *testing.T) {
	p := ListParams{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.offset())
}
