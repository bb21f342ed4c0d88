package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Spec
	}{
		{
			name:  "empty query uses defaults",
			query: "",
			want:  Spec{Category: AllCategories, Sort: SortNewest, Page: 1},
		},
		{
			name:  "all parameters",
			query: "q=l%C3%A1mpara&category=Iluminaci%C3%B3n&sort=price-desc&page=3",
			want:  Spec{SearchTerm: "lámpara", Category: "Iluminación", Sort: SortPriceDesc, Page: 3},
		},
		{
			name:  "unknown sort falls back to newest",
			query: "sort=cheapest",
			want:  Spec{Category: AllCategories, Sort: SortNewest, Page: 1},
		},
		{
			name:  "sort key is case insensitive",
			query: "sort=RATING",
			want:  Spec{Category: AllCategories, Sort: SortRating, Page: 1},
		},
		{
			name:  "non numeric page",
			query: "page=abc",
			want:  Spec{Category: AllCategories, Sort: SortNewest, Page: 1},
		},
		{
			name:  "negative page",
			query: "page=-2",
			want:  Spec{Category: AllCategories, Sort: SortNewest, Page: 1},
		},
		{
			name:  "zero page",
			query: "page=0",
			want:  Spec{Category: AllCategories, Sort: SortNewest, Page: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ParseSpec(values))
		})
	}
}

func TestSpecValues_RoundTrip(t *testing.T) {
	specs := []Spec{
		{Category: AllCategories, Sort: SortNewest, Page: 1},
		{SearchTerm: "mesa", Category: "Muebles", Sort: SortPriceAsc, Page: 2},
		{Category: "Textiles", Sort: SortRating, Page: 1},
	}

	for _, spec := range specs {
		assert.Equal(t, spec, ParseSpec(spec.Values()))
	}
}

func TestSpecValues_OmitsDefaults(t *testing.T) {
	values := Spec{}.Values()

	assert.Empty(t, values.Encode())
}
