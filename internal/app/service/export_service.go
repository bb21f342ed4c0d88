package service

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/casaviva/hogar-backend/internal/app/model"
	"github.com/casaviva/hogar-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const ExportSheet = "Catálogo"

// ExportColumns is the header row of the catalog spreadsheet. cmd/seed reads
// files with the same layout.
var ExportColumns = []string{
	"ID", "Título", "Categoría", "Precio", "Precio original",
	"Valoración", "Stock", "Imagen", "Descripción", "Creado",
}

type ExportService interface {
	WriteCatalog(w io.Writer) (int, error)
}

type exportService struct {
	cache *CatalogCache
}

func NewExportService(cache *CatalogCache) ExportService {
	return &exportService{cache: cache}
}

// WriteCatalog writes every product as an .xlsx workbook and returns the
// number of product rows.
func (s *exportService) WriteCatalog(w io.Writer) (int, error) {
	products, err := s.cache.Products()
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return 0, fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := make([]interface{}, len(ExportColumns))
	for i, col := range ExportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(ExportSheet, 1, 1, headerStyle)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		row := productRow(p)
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return 0, fmt.Errorf("failed to write product %s: %w", p.ExternalID, err)
		}
	}

	if err := f.SetColWidth(ExportSheet, "B", "B", 40); err != nil {
		return 0, err
	}
	if err := f.SetColWidth(ExportSheet, "I", "I", 60); err != nil {
		return 0, err
	}

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.Info("Catalog exported", map[string]interface{}{
		"products": len(products),
	})
	return len(products), nil
}

func productRow(p model.Product) []interface{} {
	originalPrice := ""
	if p.OriginalPrice != nil {
		originalPrice = strconv.FormatFloat(*p.OriginalPrice, 'f', 2, 64)
	}
	return []interface{}{
		p.ExternalID,
		p.Title,
		p.CategoryName(),
		p.Price,
		originalPrice,
		p.Rating,
		p.StockQuantity,
		p.ImageURL,
		p.Description,
		p.CreatedAt.Format(time.RFC3339),
	}
}
