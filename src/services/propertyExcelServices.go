package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RealEstate/RealEstate-Backend/src/dtos"
	"github.com/RealEstate/RealEstate-Backend/src/logger"
	"github.com/RealEstate/RealEstate-Backend/src/models"
	"github.com/go-playground/validator/v10"
	excelize "github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	propertiesSheet = "Properties"
	maxExportRows   = 10000
)

var propertyColumns = []interface{}{"Code", "Name", "Address", "Price", "Year", "OwnerId"}

// ImportPropertiesFromExcel creates one property per data row of the
// "Properties" sheet (or the first sheet). Columns: Code, Name, Address,
// Price, Year, OwnerId. A bad row is reported and skipped.
func (s *PropertyService) ImportPropertiesFromExcel(ctx context.Context, r io.Reader) (*dtos.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid excel file: %w", err)
	}
	defer f.Close()

	sheet := propertiesSheet
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %s: %w", sheet, err)
	}

	validate, err := newRowValidator()
	if err != nil {
		return nil, err
	}

	result := &dtos.ImportResult{Imported: 0, Errors: []string{}}
	for i, row := range rows {
		// header
		if i == 0 {
			continue
		}
		if len(row) == 0 || strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rowNum := i + 1
		req, err := parsePropertyRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if err := validate.Struct(req); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", rowNum, describeValidation(err)))
			continue
		}
		if _, err := s.CreateProperty(ctx, req); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Imported++
	}

	logger.FromContext(ctx).Info("Properties imported",
		zap.Int("imported", result.Imported),
		zap.Int("failed", len(result.Errors)),
	)
	return result, nil
}

// ExportPropertiesToExcel writes the filtered, sorted listing as an xlsx
// workbook. Paging is ignored; at most maxExportRows rows are written.
func (s *PropertyService) ExportPropertiesToExcel(ctx context.Context, q dtos.ListPropertiesQuery, w io.Writer) error {
	var properties []models.PropertyModel
	if err := applyPropertyFilters(s.db.WithContext(ctx).Model(&models.PropertyModel{}), q).
		Preload("Owner").
		Order(propertyOrder(q.SortBy, q.Desc)).
		Limit(maxExportRows).
		Find(&properties).Error; err != nil {
		return err
	}

	counts, err := s.imageCounts(ctx, properties)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", propertiesSheet); err != nil {
		return err
	}

	header := append(append([]interface{}{}, propertyColumns...), "Owner", "Images")
	if err := f.SetSheetRow(propertiesSheet, "A1", &header); err != nil {
		return err
	}

	for i, p := range properties {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		ownerName := ""
		if p.Owner != nil {
			ownerName = p.Owner.Name
		}
		row := []interface{}{p.CodeInternal, p.Name, p.Address, p.Price, p.Year, p.OwnerID, ownerName, counts[p.ID]}
		if err := f.SetSheetRow(propertiesSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func parsePropertyRow(row []string) (dtos.CreatePropertyRequest, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	req := dtos.CreatePropertyRequest{
		CodeInternal: cell(0),
		Name:         cell(1),
		Address:      cell(2),
	}

	var err error
	if req.Price, err = strconv.ParseFloat(cell(3), 64); err != nil {
		return req, fmt.Errorf("invalid price %q", cell(3))
	}
	if req.Year, err = strconv.Atoi(cell(4)); err != nil {
		return req, fmt.Errorf("invalid year %q", cell(4))
	}
	if req.OwnerID, err = strconv.Atoi(cell(5)); err != nil {
		return req, fmt.Errorf("invalid owner id %q", cell(5))
	}
	return req, nil
}

// newRowValidator checks rows against the same binding tags as the HTTP API
func newRowValidator() (*validator.Validate, error) {
	v := validator.New()
	v.SetTagName("binding")
	if err := dtos.RegisterValidations(v); err != nil {
		return nil, err
	}
	return v, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
