package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/domain/repository"
	"github.com/diillson/retail-report-go/internal/shared/types"
)

// Nomes das colunas do arquivo de vendas.
const (
	ColDate          = "Date"
	ColRegion        = "Region"
	ColCategory      = "Product_Category"
	ColRevenue       = "Revenue"
	ColUnitsSold     = "Units_Sold"
	ColDiscount      = "Discount_Percentage"
	ColStoreRating   = "Store_Rating"
	ColStoreID       = "Store_ID"
	ColStoreLocation = "Store_Location"
	ColBrand         = "Brand"
)

var requiredColumns = []string{ColDate, ColRegion, ColCategory, ColRevenue}

// Limites dos campos numéricos opcionais.
const (
	maxDiscount = 100
	maxRating   = 5
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
}

// DatasetRepositoryImpl lê arquivos de vendas CSV e XLSX.
type DatasetRepositoryImpl struct{}

// NewDatasetRepository cria uma nova implementação do DatasetRepository.
func NewDatasetRepository() repository.DatasetRepository {
	return &DatasetRepositoryImpl{}
}

// Load lê o dataset em source, escolhendo o parser pela extensão do arquivo.
func (r *DatasetRepositoryImpl) Load(ctx context.Context, source string) (entity.Dataset, error) {
	if source == "" {
		return entity.Dataset{}, types.ErrNoDataSource
	}

	switch ext := strings.ToLower(filepath.Ext(source)); ext {
	case ".csv":
		f, err := os.Open(source)
		if err != nil {
			return entity.Dataset{}, fmt.Errorf("error opening dataset: %w", err)
		}
		defer f.Close()
		return ReadCSV(ctx, f)
	case ".xlsx":
		return readXLSX(ctx, source)
	default:
		return entity.Dataset{}, fmt.Errorf("%w: dataset %s", types.ErrUnsupportedFormat, ext)
	}
}

// ReadCSV interpreta um CSV cuja primeira linha é o cabeçalho.
func ReadCSV(ctx context.Context, in io.Reader) (entity.Dataset, error) {
	reader := csv.NewReader(in)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return entity.Dataset{}, errors.New("dataset is empty: missing header row")
		}
		return entity.Dataset{}, fmt.Errorf("error reading CSV header: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entity.Dataset{}, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return parseRows(ctx, header, rows, parseDate)
}

func readXLSX(ctx context.Context, path string) (entity.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return entity.Dataset{}, errors.New("workbook has no sheets")
	}

	// Valores brutos mantêm as datas como número serial, sem formatação de localidade.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("error reading sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return entity.Dataset{}, errors.New("dataset is empty: missing header row")
	}
	return parseRows(ctx, rows[0], rows[1:], parseExcelDate)
}

type columnIndex map[string]int

func (c columnIndex) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRows(ctx context.Context, header []string, rows [][]string, dateParser func(string) (time.Time, error)) (entity.Dataset, error) {
	cols := make(columnIndex, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return entity.Dataset{}, fmt.Errorf("dataset is missing required column %q", name)
		}
	}

	records := make([]entity.Record, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return entity.Dataset{}, err
		}
		if isBlank(row) {
			continue
		}
		// A numeração das linhas conta o cabeçalho como linha 1.
		rec, err := parseRecord(cols, row, dateParser)
		if err != nil {
			return entity.Dataset{}, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return entity.NewDataset(records), nil
}

func parseRecord(cols columnIndex, row []string, dateParser func(string) (time.Time, error)) (entity.Record, error) {
	date, err := dateParser(cols.get(row, ColDate))
	if err != nil {
		return entity.Record{}, err
	}

	revenue, err := parseRevenue(cols.get(row, ColRevenue))
	if err != nil {
		return entity.Record{}, err
	}

	units, err := parseInt(cols.get(row, ColUnitsSold))
	if err != nil {
		return entity.Record{}, fmt.Errorf("invalid %s: %w", ColUnitsSold, err)
	}
	discount, err := parseBounded(cols.get(row, ColDiscount), 0, maxDiscount)
	if err != nil {
		return entity.Record{}, fmt.Errorf("invalid %s: %w", ColDiscount, err)
	}
	rating, err := parseBounded(cols.get(row, ColStoreRating), 0, maxRating)
	if err != nil {
		return entity.Record{}, fmt.Errorf("invalid %s: %w", ColStoreRating, err)
	}

	return entity.Record{
		Date:               date,
		Region:             cols.get(row, ColRegion),
		ProductCategory:    cols.get(row, ColCategory),
		Revenue:            revenue,
		UnitsSold:          units,
		DiscountPercentage: discount,
		StoreRating:        rating,
		StoreID:            cols.get(row, ColStoreID),
		StoreLocation:      cols.get(row, ColStoreLocation),
		Brand:              cols.get(row, ColBrand),
	}, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("missing %s", ColDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid %s %q", ColDate, v)
}

func parseExcelDate(v string) (time.Time, error) {
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return parseDate(v)
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s serial %q: %w", ColDate, v, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseRevenue(v string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(v)
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("missing %s", ColRevenue)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q", ColRevenue, v)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative %s %q", ColRevenue, v)
	}
	return d, nil
}

func parseInt(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%q is negative", v)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not an integer", v)
	}
	if f < 0 {
		return 0, fmt.Errorf("%q is negative", v)
	}
	return int64(f), nil
}

// parseBounded lê uma célula numérica opcional. Célula vazia é valor ausente (nil), não zero.
func parseBounded(v string, min, max float64) (*float64, error) {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%q is not a finite number", v)
	}
	if f < min || f > max {
		return nil, fmt.Errorf("%s is outside [%s, %s]",
			strconv.FormatFloat(f, 'f', -1, 64),
			strconv.FormatFloat(min, 'f', -1, 64),
			strconv.FormatFloat(max, 'f', -1, 64))
	}
	return &f, nil
}
