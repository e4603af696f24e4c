// Package batch - пакетное определение зон для точек из Excel
package batch

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/delivery-zones/internal/pkg/errors"
	"github.com/delivery-zones/internal/usecase/dto"
)

// Row - строка входного файла
type Row struct {
	RowIndex int // номер строки в листе, с 1
	ID       string
	Lat      float64
	Lon      float64
	// Err - почему строку не удалось разобрать; такие строки не резолвятся
	Err string
}

// Result - строка результата
type Result struct {
	Row
	Matched      bool
	Zone         string
	MinOrder     int64
	DeliveryTime string
}

// PointResolver - определение зоны по точке
type PointResolver interface {
	ResolvePoint(ctx context.Context, req dto.ResolvePointRequest) (*dto.ResolveResponse, error)
}

// columns - индексы колонок, найденные по заголовку
type columns struct {
	id, lat, lon int
}

var headerAliases = map[string][]string{
	"id":  {"id", "order", "order_id", "номер", "заказ"},
	"lat": {"lat", "latitude", "широта"},
	"lon": {"lon", "lng", "longitude", "долгота"},
}

// parseCoord принимает и десятичную запятую
func parseCoord(val string) (float64, error) {
	val = strings.TrimSpace(strings.ReplaceAll(val, ",", "."))
	if val == "" {
		return 0, fmt.Errorf("empty")
	}
	return strconv.ParseFloat(val, 64)
}

func detectColumns(header []string) columns {
	cols := columns{id: 0, lat: 1, lon: 2}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for key, aliases := range headerAliases {
			for _, alias := range aliases {
				if name != alias {
					continue
				}
				switch key {
				case "id":
					cols.id = i
				case "lat":
					cols.lat = i
				case "lon":
					cols.lon = i
				}
			}
		}
	}
	return cols
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// ReadRows читает лист. Первая строка - заголовок; колонки id/lat/lon
// ищутся по названию, иначе берутся A, B, C.
// Пустой sheet означает первый лист книги.
func ReadRows(path, sheet string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := detectColumns(rows[0])

	result := make([]Row, 0, len(rows)-1)
	for i, raw := range rows[1:] {
		r := Row{RowIndex: i + 2, ID: strings.TrimSpace(cell(raw, cols.id))}

		lat, errLat := parseCoord(cell(raw, cols.lat))
		lon, errLon := parseCoord(cell(raw, cols.lon))
		switch {
		case r.ID == "" && errLat != nil && errLon != nil:
			continue // пустая строка
		case errLat != nil:
			r.Err = "invalid latitude"
		case errLon != nil:
			r.Err = "invalid longitude"
		default:
			r.Lat, r.Lon = lat, lon
		}

		result = append(result, r)
	}

	return result, nil
}

// Resolve определяет зону для каждой строки. Ошибки отдельных строк
// записываются в Err и не прерывают обработку; прерывает только отмена контекста
// или неготовый каталог.
func Resolve(ctx context.Context, resolver PointResolver, rows []Row) ([]Result, error) {
	results := make([]Result, 0, len(rows))
	for _, r := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res := Result{Row: r}
		if r.Err != "" {
			results = append(results, res)
			continue
		}

		lat, lon := r.Lat, r.Lon
		resp, err := resolver.ResolvePoint(ctx, dto.ResolvePointRequest{Lat: &lat, Lon: &lon})
		if err != nil {
			if stderrors.Is(err, errors.ErrCatalogNotLoaded) {
				return nil, err
			}
			res.Err = err.Error()
			results = append(results, res)
			continue
		}

		res.Matched = resp.Matched
		if resp.Zone != nil {
			res.Zone = resp.Zone.Name
			res.MinOrder = resp.Zone.MinOrder
			res.DeliveryTime = resp.Zone.DeliveryTime
		}
		results = append(results, res)
	}

	return results, nil
}

// WriteResults пишет результаты в новую книгу через stream writer
func WriteResults(path, sheet string, results []Result) error {
	if sheet == "" {
		sheet = "Zones"
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	headers := []interface{}{
		"ID", "Lat", "Lon", "Zone", "Min order", "Delivery time", "Error",
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}

	for i, r := range results {
		cellName, _ := excelize.CoordinatesToCellName(1, i+2)

		zoneName := r.Zone
		if r.Err == "" && !r.Matched {
			zoneName = "-"
		}

		row := []interface{}{r.ID, "", "", zoneName, "", r.DeliveryTime, r.Err}
		if r.Err == "" {
			row[1], row[2] = r.Lat, r.Lon
		}
		if r.Matched {
			row[4] = r.MinOrder
		}

		if err := sw.SetRow(cellName, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
