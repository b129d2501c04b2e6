package importer

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"catalog/internal/model"
	"catalog/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Result summarises an import run.
type Result struct {
	Imported int
	Skipped  int
	IDs      []int64
}

// Importer loads products from CSV files through the product service, so
// imported rows get the same validation as POST /products.
type Importer struct {
	products service.ProductService
	source   Source
	logger   zerolog.Logger
}

// New creates an importer.
func New(products service.ProductService, source Source, logger zerolog.Logger) *Importer {
	return &Importer{
		products: products,
		source:   source,
		logger:   logger.With().Str("component", "importer").Logger(),
	}
}

// Import reads path from the source and creates one product per data row.
// Files ending in .gz are decompressed. Bad rows are logged and skipped; a
// missing file or header aborts the run.
func (im *Importer) Import(ctx context.Context, path string) (*Result, error) {
	body, err := im.source.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var r io.Reader = body
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("import file %s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	columns, err := parseHeader(header)
	if err != nil {
		return nil, fmt.Errorf("invalid header in %s: %w", path, err)
	}

	result := &Result{}
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				im.logger.Warn().Err(err).Int("line", line).Msg("skipping malformed row")
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("failed to read %s: %w", path, err)
		}

		req, err := columns.request(record)
		if err == nil {
			var id int64
			id, err = im.products.Create(ctx, req)
			if err == nil {
				result.Imported++
				result.IDs = append(result.IDs, id)
				continue
			}
		}

		im.logger.Warn().Err(err).Int("line", line).Msg("skipping row")
		result.Skipped++
	}

	im.logger.Info().
		Str("path", path).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("import finished")

	return result, nil
}

// columnIndex maps known column names to their position; -1 when absent.
type columnIndex struct {
	name, description, price, category int
}

func parseHeader(header []string) (columnIndex, error) {
	idx := columnIndex{name: -1, description: -1, price: -1, category: -1}
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))) {
		case "name":
			idx.name = i
		case "description":
			idx.description = i
		case "price":
			idx.price = i
		case "category":
			idx.category = i
		}
	}

	if idx.name < 0 || idx.price < 0 {
		return idx, fmt.Errorf("columns name and price are required, got %v", header)
	}
	return idx, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// request builds a create request; an empty price cell leaves Price nil so
// validation reports it.
func (c columnIndex) request(record []string) (*model.CreateProductRequest, error) {
	req := &model.CreateProductRequest{
		Name:        field(record, c.name),
		Description: field(record, c.description),
		Category:    field(record, c.category),
	}

	if raw := field(record, c.price); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", raw, err)
		}
		req.Price = &price
	}

	return req, nil
}
