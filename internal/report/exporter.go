package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tair/bekawave/internal/domain"
	"github.com/tair/bekawave/pkg/logger"
)

const sheetName = "Sheet1"

// Header is the first row of every export
var Header = []string{"Customer Name", "Total Price", "Sales Time", "Product name", "Product Price", "Product Quantity"}

// Source lists every record of one entity
type Source[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
}

// Exporter joins sales with their customer and product into a tabular file.
type Exporter struct {
	sales     Source[domain.Sales]
	customers Source[domain.Customer]
	products  Source[domain.Product]
	cache     Cache
	now       func() time.Time
}

// NewExporter creates an exporter. cache may be nil.
func NewExporter(sales Source[domain.Sales], customers Source[domain.Customer], products Source[domain.Product], cache Cache) *Exporter {
	return &Exporter{
		sales:     sales,
		customers: customers,
		products:  products,
		cache:     cache,
		now:       time.Now,
	}
}

// Export renders every sale in format. The format is checked before any
// storage access.
func (e *Exporter) Export(ctx context.Context, format string) (File, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return File{}, err
	}

	ctx, span := otel.Tracer("bekawave-report").Start(ctx, "report.Export")
	defer span.End()
	span.SetAttributes(attribute.String("report.format", string(f)))

	file := File{
		Name:        e.now().Format("2006-01-02") + "." + string(f),
		ContentType: f.ContentType(),
	}

	// The generation is read before any rows are loaded so a write that
	// lands mid-export keeps this body out of the cache.
	gen, cacheable := e.generation(ctx)
	if cacheable {
		body, ok, err := e.cache.Get(ctx, f, gen)
		if err != nil {
			logger.Warn(ctx).Err(err).Str("format", string(f)).Msg("Report cache read failed")
		} else if ok {
			span.SetAttributes(attribute.Bool("report.cache_hit", true))
			file.Body = body
			return file, nil
		}
	}

	rows, err := e.rows(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to build report rows")
		return File{}, err
	}
	span.SetAttributes(attribute.Int("report.rows", len(rows)))

	switch f {
	case FormatXLSX:
		file.Body, err = encodeXLSX(rows)
	default:
		file.Body, err = encodeCSV(rows)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to encode report")
		return File{}, err
	}

	if cacheable {
		if err := e.cache.Set(ctx, f, gen, file.Body); err != nil {
			logger.Warn(ctx).Err(err).Str("format", string(f)).Msg("Report cache write failed")
		}
	}
	return file, nil
}

func (e *Exporter) generation(ctx context.Context) (int64, bool) {
	if e.cache == nil {
		return 0, false
	}
	gen, err := e.cache.Generation(ctx)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Report cache generation unavailable, bypassing cache")
		return 0, false
	}
	return gen, true
}

// rows loads all sales, customers and products once and joins them in
// memory. A sale pointing at a missing customer or product fails the export
// as an internal failure; the dangling reference is not a client error.
func (e *Exporter) rows(ctx context.Context) ([][]string, error) {
	sales, err := e.sales.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := e.customers.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := e.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	customerByID := lo.KeyBy(customers, func(c domain.Customer) int64 { return c.CustomerID })
	productByID := lo.KeyBy(products, func(p domain.Product) int64 { return p.ProductID })

	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		customer, ok := customerByID[s.CustomerID]
		if !ok {
			return nil, fmt.Errorf("sales record %d references missing customer %d", s.SalesID, s.CustomerID)
		}
		product, ok := productByID[s.ProductID]
		if !ok {
			return nil, fmt.Errorf("sales record %d references missing product %d", s.SalesID, s.ProductID)
		}
		rows = append(rows, []string{
			customer.Name,
			strconv.FormatInt(s.TotalPrice, 10),
			s.SalesTime.String(),
			product.Name,
			strconv.FormatInt(product.Price, 10),
			strconv.FormatInt(s.ProductQuantity, 10),
		})
	}
	return rows, nil
}

func encodeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range append([][]string{Header}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write xlsx row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
