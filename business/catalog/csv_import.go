package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"motoMatch/domain"
	"motoMatch/pkg/logger"
)

// ImportResult summarizes one CSV bulk import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// expected header: brand,model,style,power,price,displacement,weight,year
// power..year may be empty; malformed rows are counted and skipped, never
// abort the whole import.
func (s *catalogService) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return ImportResult{}, fmt.Errorf("context error: %w", err)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	cols, err := headerIndex(header)
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping unreadable csv row", "line", line, "error", err)
			result.Skipped++
			continue
		}

		moto, err := parseRow(record, cols)
		if err != nil {
			logger.Warn("skipping invalid csv row", "line", line, "error", err)
			result.Skipped++
			continue
		}

		if err := s.motoRepo.Create(ctx, moto); err != nil {
			logger.Warn("skipping row that failed to persist", "line", line, "error", err)
			result.Skipped++
			continue
		}
		result.Imported++
	}

	s.invalidateCache(ctx)
	logger.Info("catalog csv import finished", "imported", result.Imported, "skipped", result.Skipped)

	return result, nil
}

type columnIndex struct {
	brand, model, style, power, price, displacement, weight, year int
}

func headerIndex(header []string) (columnIndex, error) {
	cols := columnIndex{brand: -1, model: -1, style: -1, power: -1, price: -1, displacement: -1, weight: -1, year: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "brand":
			cols.brand = i
		case "model":
			cols.model = i
		case "style":
			cols.style = i
		case "power":
			cols.power = i
		case "price":
			cols.price = i
		case "displacement":
			cols.displacement = i
		case "weight":
			cols.weight = i
		case "year":
			cols.year = i
		}
	}
	if cols.brand < 0 || cols.model < 0 {
		return cols, errors.New("csv header must contain at least brand and model")
	}
	return cols, nil
}

func parseRow(record []string, cols columnIndex) (*domain.Moto, error) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	brand := field(cols.brand)
	model := field(cols.model)
	if brand == "" || model == "" {
		return nil, errors.New("brand and model are required")
	}

	moto := &domain.Moto{
		ID:    uuid.NewString(),
		Brand: brand,
		Model: model,
		Style: domain.ParseMotoStyle(field(cols.style)),
	}

	var err error
	if moto.Power, err = parseOptionalFloat(field(cols.power)); err != nil {
		return nil, fmt.Errorf("invalid power: %w", err)
	}
	if moto.Price, err = parseOptionalFloat(field(cols.price)); err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}
	if moto.Displacement, err = parseOptionalFloat(field(cols.displacement)); err != nil {
		return nil, fmt.Errorf("invalid displacement: %w", err)
	}
	if moto.Weight, err = parseOptionalFloat(field(cols.weight)); err != nil {
		return nil, fmt.Errorf("invalid weight: %w", err)
	}

	if y := field(cols.year); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return nil, fmt.Errorf("invalid year: %w", err)
		}
		moto.Year = &year
	}

	if err := validateMoto(moto); err != nil {
		return nil, err
	}

	return moto, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
