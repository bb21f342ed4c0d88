package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// PageSize is the fixed number of products per catalog page. It is used both
// for slicing and for the page count.
const PageSize = 12

// AllCategories is the category sentinel meaning "no category filter".
const AllCategories = "all"

// Query parameter names of a shareable catalog URL.
const (
	ParamSearch   = "q"
	ParamCategory = "category"
	ParamSort     = "sort"
	ParamPage     = "page"
)

type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortRating    Sort = "rating"
)

// DefaultSort is used for empty and unknown sort keys.
const DefaultSort = SortNewest

// ParseSort maps a raw sort key to a known Sort, falling back to DefaultSort.
func ParseSort(raw string) Sort {
	switch Sort(strings.ToLower(strings.TrimSpace(raw))) {
	case SortNewest:
		return SortNewest
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	case SortRating:
		return SortRating
	default:
		return DefaultSort
	}
}

// Spec is a normalized catalog query.
type Spec struct {
	SearchTerm string `json:"q"`
	Category   string `json:"category"`
	Sort       Sort   `json:"sort"`
	Page       int    `json:"page"`
}

// ParseSpec builds a Spec from URL query parameters. Values coming from the
// URL are untrusted, so anything unparseable degrades to its default.
func ParseSpec(values url.Values) Spec {
	spec := Spec{
		SearchTerm: strings.TrimSpace(values.Get(ParamSearch)),
		Category:   strings.TrimSpace(values.Get(ParamCategory)),
		Sort:       ParseSort(values.Get(ParamSort)),
		Page:       1,
	}
	if page, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamPage))); err == nil {
		spec.Page = page
	}
	return spec.Normalize()
}

// Normalize applies defaults: the all-categories sentinel, DefaultSort and
// page 1 for non-positive pages.
func (s Spec) Normalize() Spec {
	if s.Category == "" {
		s.Category = AllCategories
	}
	s.Sort = ParseSort(string(s.Sort))
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

// Values encodes s back to query parameters, omitting defaults.
func (s Spec) Values() url.Values {
	s = s.Normalize()
	values := url.Values{}
	if s.SearchTerm != "" {
		values.Set(ParamSearch, s.SearchTerm)
	}
	if s.Category != AllCategories {
		values.Set(ParamCategory, s.Category)
	}
	if s.Sort != DefaultSort {
		values.Set(ParamSort, string(s.Sort))
	}
	if s.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(s.Page))
	}
	return values
}

// WithPage returns a copy of s pointing at page.
func (s Spec) WithPage(page int) Spec {
	s.Page = page
	return s
}
