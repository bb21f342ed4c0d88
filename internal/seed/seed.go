package seed

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/casaviva/hogar-backend/internal/app/model"
	"github.com/casaviva/hogar-backend/internal/app/repository"
	"github.com/casaviva/hogar-backend/internal/app/service"
	"github.com/casaviva/hogar-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Row is one product to upsert, keyed by ExternalID
type Row struct {
	ExternalID    string
	Title         string
	Category      string
	Price         float64
	OriginalPrice *float64
	Rating        float64
	Stock         int
	ImageURL      string
	Description   string
}

// RowError explains why a spreadsheet row was skipped. Line is 1-based.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type Result struct {
	Created int
	Updated int
	Skipped []RowError
}

type Importer struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	categories   map[string]*model.Category
}

func NewImporter(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *Importer {
	return &Importer{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		categories:   make(map[string]*model.Category),
	}
}

// Import upserts rows. Unknown categories are created on the fly.
func (im *Importer) Import(rows []Row) (Result, error) {
	var result Result
	for _, row := range rows {
		created, err := im.upsert(row)
		if err != nil {
			return result, fmt.Errorf("failed to import %q: %w", row.Title, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	logger.Info("Catalog rows imported", map[string]interface{}{
		"created": result.Created,
		"updated": result.Updated,
	})
	return result, nil
}

// ImportWorkbook reads the catalog sheet written by the admin export, or
// the first sheet when that one is missing. Header names locate columns,
// so extra or reordered columns are fine. Invalid rows are skipped and
// reported.
func (im *Importer) ImportWorkbook(r io.Reader) (Result, error) {
	rows, skipped, err := ReadWorkbook(r)
	if err != nil {
		return Result{}, err
	}

	result, err := im.Import(rows)
	result.Skipped = skipped
	return result, err
}

func (im *Importer) upsert(row Row) (bool, error) {
	category, err := im.category(row.Category)
	if err != nil {
		return false, err
	}

	created := false
	product, err := im.productRepo.FindByExternalID(row.ExternalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		product = &model.Product{ExternalID: row.ExternalID}
		created = true
	} else if err != nil {
		return false, err
	}

	product.Title = row.Title
	product.Description = row.Description
	product.Price = row.Price
	product.OriginalPrice = row.OriginalPrice
	product.Rating = row.Rating
	product.StockQuantity = row.Stock
	product.ImageURL = row.ImageURL
	product.CategoryID = category.ID
	product.Category = *category

	if created {
		return true, im.productRepo.Create(product)
	}
	return false, im.productRepo.Update(product)
}

func (im *Importer) category(name string) (*model.Category, error) {
	if category, ok := im.categories[name]; ok {
		return category, nil
	}

	category, err := im.categoryRepo.FindByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = &model.Category{Name: name, Slug: service.Slugify(name)}
		if err := im.categoryRepo.Create(category); err != nil {
			return nil, err
		}
		logger.Info("Category created during import", map[string]interface{}{
			"name": name,
		})
	} else if err != nil {
		return nil, err
	}

	im.categories[name] = category
	return category, nil
}

// ReadWorkbook parses product rows from an .xlsx stream
func ReadWorkbook(r io.Reader) ([]Row, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheet := service.ExportSheet
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, nil, fmt.Errorf("no sheets found in XLSX file")
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"título", "categoría", "precio"} {
		if _, ok := columns[required]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", required)
		}
	}

	cell := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []Row
	var skipped []RowError
	for i, record := range records[1:] {
		line := i + 2
		row, err := parseRecord(func(name string) string { return cell(record, name) })
		if err != nil {
			skipped = append(skipped, RowError{Line: line, Reason: err.Error()})
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func parseRecord(cell func(string) string) (Row, error) {
	row := Row{
		ExternalID:  cell("id"),
		Title:       cell("título"),
		Category:    cell("categoría"),
		ImageURL:    cell("imagen"),
		Description: cell("descripción"),
	}
	if row.Title == "" {
		return Row{}, errors.New("empty title")
	}
	if row.Category == "" {
		return Row{}, errors.New("empty category")
	}
	if row.ExternalID == "" {
		row.ExternalID = uuid.NewString()
	}

	price, err := strconv.ParseFloat(cell("precio"), 64)
	if err != nil || price <= 0 {
		return Row{}, fmt.Errorf("invalid price %q", cell("precio"))
	}
	row.Price = price

	if raw := cell("precio original"); raw != "" {
		original, err := strconv.ParseFloat(raw, 64)
		if err != nil || original <= 0 {
			return Row{}, fmt.Errorf("invalid original price %q", raw)
		}
		row.OriginalPrice = &original
	}

	if raw := cell("valoración"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || rating < 0 || rating > 5 {
			return Row{}, fmt.Errorf("invalid rating %q", raw)
		}
		row.Rating = rating
	}

	if raw := cell("stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return Row{}, fmt.Errorf("invalid stock %q", raw)
		}
		row.Stock = stock
	}
	return row, nil
}
