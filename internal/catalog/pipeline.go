package catalog

import (
	"sort"
	"strings"

	"github.com/casaviva/hogar-backend/internal/app/model"
)

// Result is one page of the filtered and sorted catalog.
type Result struct {
	Items      []model.Product `json:"items"`
	TotalCount int             `json:"total_count"`
	TotalPages int             `json:"total_pages"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
}

// Run filters, sorts and paginates products. It does not modify products and
// does not rely on their order beyond using it to break sort ties, so the
// same input always produces the same page.
func Run(products []model.Product, spec Spec) Result {
	spec = spec.Normalize()

	filtered := Filter(products, spec)
	SortProducts(filtered, spec.Sort)

	total := len(filtered)
	return Result{
		Items:      paginate(filtered, spec.Page),
		TotalCount: total,
		TotalPages: TotalPages(total),
		Page:       spec.Page,
		PageSize:   PageSize,
	}
}

// Filter returns a new slice with the products matching the category and
// the search term of spec, in input order.
func Filter(products []model.Product, spec Spec) []model.Product {
	term := strings.ToLower(spec.SearchTerm)
	allCategories := spec.Category == "" || spec.Category == AllCategories

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if !allCategories && p.CategoryName() != spec.Category {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Title), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProducts sorts products in place. The sort is stable: products that
// compare equal keep their relative input order.
func SortProducts(products []model.Product, by Sort) {
	var less func(a, b model.Product) bool
	switch ParseSort(string(by)) {
	case SortPriceAsc:
		less = func(a, b model.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b model.Product) bool { return a.Price > b.Price }
	case SortRating:
		less = func(a, b model.Product) bool { return a.Rating > b.Rating }
	default:
		less = func(a, b model.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	}

	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}

// TotalPages is ceil(total / PageSize).
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

func paginate(products []model.Product, page int) []model.Product {
	if page < 1 || page > TotalPages(len(products)) {
		return []model.Product{}
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(products))
	return products[start:end]
}
