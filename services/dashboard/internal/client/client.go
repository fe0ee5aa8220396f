package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
)

// Client talks to the consumption REST API. Catalogs are fetched from the
// API only; the dashboard never re-derives them from the raw payload.
type Client struct {
	base string
	http *http.Client
}

// New builds a client for the given API base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{base: baseURL, http: &http.Client{Timeout: timeout}}
}

func (c *Client) getJSON(ctx context.Context, path string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request %s: unexpected status %s", path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// FetchRegions retrieves the region catalog.
func (c *Client) FetchRegions(ctx context.Context) ([]string, error) {
	var payload struct {
		Regioes []string `json:"regioes"`
	}
	if err := c.getJSON(ctx, "/catalogos/regioes", &payload); err != nil {
		return nil, err
	}
	return payload.Regioes, nil
}

// FetchSectors retrieves the industrial sector catalog.
func (c *Client) FetchSectors(ctx context.Context) ([]string, error) {
	var payload struct {
		Setores []string `json:"setores"`
	}
	if err := c.getJSON(ctx, "/catalogos/setores-industriais", &payload); err != nil {
		return nil, err
	}
	return payload.Setores, nil
}

// FetchTrend retrieves the slope of a historical period, "1970-1989" or
// "1990-2003".
func (c *Client) FetchTrend(ctx context.Context, period string) (float64, error) {
	var payload struct {
		Pendiente float64 `json:"pendiente"`
	}
	if err := c.getJSON(ctx, "/consumo/historico/tendencia-"+period, &payload); err != nil {
		return 0, err
	}
	return payload.Pendiente, nil
}

// FetchIndustrial retrieves every raw industrial record and rebuilds it as a
// RecordSet so the dashboard can reuse the aggregation engine locally.
func (c *Client) FetchIndustrial(ctx context.Context) (*dataset.RecordSet, error) {
	var rows []map[string]any
	if err := c.getJSON(ctx, "/consumo/datos-industrial", &rows); err != nil {
		return nil, err
	}
	return recordSetFromRows(rows), nil
}

func recordSetFromRows(rows []map[string]any) *dataset.RecordSet {
	canonical := map[string]bool{
		dataset.ColTimestamp: true,
		dataset.ColRegion:    true,
		dataset.ColSector:    true,
		dataset.ColMeasure:   true,
	}

	extraCols := map[string]bool{}
	records := make([]dataset.Record, 0, len(rows))
	for _, row := range rows {
		rec := dataset.Record{Extra: map[string]string{}}
		for key, val := range row {
			switch key {
			case dataset.ColTimestamp:
				if s, ok := val.(string); ok {
					if t, err := time.Parse(time.RFC3339, s); err == nil {
						t = t.UTC()
						rec.Timestamp = &t
					}
				}
			case dataset.ColRegion:
				rec.Region, _ = val.(string)
			case dataset.ColSector:
				rec.Sector, _ = val.(string)
			case dataset.ColMeasure:
				if f, ok := val.(float64); ok {
					rec.Measure = f
				}
			default:
				extraCols[key] = true
				rec.Extra[key] = fmt.Sprint(val)
			}
		}
		records = append(records, rec)
	}

	columns := []string{dataset.ColTimestamp, dataset.ColRegion, dataset.ColSector, dataset.ColMeasure}
	extras := make([]string, 0, len(extraCols))
	for col := range extraCols {
		if !canonical[col] {
			extras = append(extras, col)
		}
	}
	sort.Strings(extras)
	columns = append(columns, extras...)

	return &dataset.RecordSet{
		Sheet:   dataset.SheetIndustrial,
		Columns: columns,
		Records: records,
	}
}
