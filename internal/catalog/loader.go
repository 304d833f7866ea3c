package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	apperrors "github.com/SirClappington/dj-product-explorer/internal/errors"
	"github.com/SirClappington/dj-product-explorer/internal/models"
)

// RequiredColumns must all be present in the dataset header.
var RequiredColumns = []string{
	"product_description",
	"brand_name",
	"created_year",
	"country",
	"product_name",
	"product_category",
	"price_usd",
	"product_image_aws",
	"product_image",
}

// LoadOptions control how the fetched bytes are decoded.
type LoadOptions struct {
	// Encoding of CSV data: "latin1" (default) or "utf8".
	Encoding string
	// Sheet of an .xlsx workbook; empty selects the first sheet.
	Sheet string
}

type datasetRow struct {
	Description string `csv:"product_description"`
	Brand       string `csv:"brand_name"`
	Year        string `csv:"created_year"`
	Country     string `csv:"country"`
	Name        string `csv:"product_name"`
	Category    string `csv:"product_category"`
	Price       string `csv:"price_usd"`
	ImageAWS    string `csv:"product_image_aws"`
	Image       string `csv:"product_image"`
}

// Load fetches and decodes the dataset. Any failure is a dataset error; the
// caller must not serve without a table.
func Load(ctx context.Context, src Source, opts LoadOptions, logger *logrus.Logger) (*Table, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, apperrors.NewDatasetError(src.Name(), err)
	}

	records, err := decodeRecords(src.Name(), data, opts)
	if err != nil {
		return nil, apperrors.NewDatasetError(src.Name(), err)
	}

	products, skippedPrices, err := bindProducts(records)
	if err != nil {
		return nil, apperrors.NewDatasetError(src.Name(), err)
	}

	entry := logger.WithFields(logrus.Fields{
		"source":   src.Name(),
		"products": len(products),
	})
	if skippedPrices > 0 {
		entry.WithField("invalid_prices", skippedPrices).Warn("Some prices could not be parsed and are shown as missing")
	}
	entry.Info("Dataset loaded")

	return NewTable(src.Name(), products), nil
}

func decodeRecords(name string, data []byte, opts LoadOptions) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(data, opts.Sheet)
	default:
		return readCSV(data, opts.Encoding)
	}
}

func readCSV(data []byte, encoding string) ([][]string, error) {
	switch strings.ToLower(encoding) {
	case "", "latin1", "iso-8859-1":
		// Every byte maps to a code point, so this never fails.
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("error decoding latin-1 data: %w", err)
		}
		data = decoded
	case "utf8", "utf-8":
		data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing csv: %w", err)
	}
	return records, nil
}

func readWorkbook(data []byte, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func bindProducts(records [][]string) ([]models.Product, int, error) {
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("dataset is empty")
	}
	if err := checkHeader(records[0]); err != nil {
		return nil, 0, err
	}

	var rows []datasetRow
	if err := gocsv.UnmarshalCSV(&recordReader{records: records}, &rows); err != nil {
		return nil, 0, fmt.Errorf("error binding rows: %w", err)
	}

	products := make([]models.Product, 0, len(rows))
	invalidPrices := 0
	for _, row := range rows {
		p := models.Product{
			Name:        row.Name,
			Brand:       row.Brand,
			Category:    row.Category,
			Description: row.Description,
			ImageAWS:    strings.TrimSpace(row.ImageAWS),
			Image:       strings.TrimSpace(row.Image),
			Year:        normalizeYear(row.Year),
			Country:     row.Country,
		}
		if raw := strings.TrimSpace(row.Price); raw != "" {
			price, err := decimal.NewFromString(strings.TrimPrefix(raw, "$"))
			if err != nil {
				invalidPrices++
			} else {
				p.Price = decimal.NewNullDecimal(price)
			}
		}
		products = append(products, p)
	}
	return products, invalidPrices, nil
}

func checkHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// normalizeYear turns spreadsheet floats like "2020.0" into "2020".
func normalizeYear(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if _, err := strconv.Atoi(s); err == nil {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return s
	}
	return strconv.FormatInt(int64(f), 10)
}

// recordReader feeds already split records to gocsv.
type recordReader struct {
	records [][]string
	pos     int
}

func (r *recordReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rest := r.records[r.pos:]
	r.pos = len(r.records)
	return rest, nil
}
