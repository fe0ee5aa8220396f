package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
	"github.com/energia-abierta/brasil-consumo-viewer/services/dashboard/internal/report"
)

// Filters mirrors the original sidebar: region, sector and a date range.
type Filters struct {
	Region string
	Sector string
	From   *time.Time
	To     *time.Time
}

func parseFilters(c *gin.Context) (Filters, error) {
	f := Filters{
		Region: c.Query("regiao"),
		Sector: c.Query("setor"),
	}

	if v := c.Query("desde"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid desde: %s", v)
		}
		f.From = &t
	}
	if v := c.Query("hasta"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid hasta: %s", v)
		}
		f.To = &t
	}

	return f, nil
}

// query re-encodes the filters for links between dashboard routes.
func (f Filters) query() string {
	q := "?"
	if f.Region != "" {
		q += "regiao=" + f.Region + "&"
	}
	if f.Sector != "" {
		q += "setor=" + f.Sector + "&"
	}
	if f.From != nil {
		q += "desde=" + f.From.Format("2006-01-02") + "&"
	}
	if f.To != nil {
		q += "hasta=" + f.To.Format("2006-01-02") + "&"
	}
	return q[:len(q)-1]
}

func (f Filters) reportFilters(unit string) []report.Filter {
	orDefault := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	rng := "N/A"
	if f.From != nil && f.To != nil {
		rng = f.From.Format("2006-01-02") + " a " + f.To.Format("2006-01-02")
	}
	return []report.Filter{
		{Label: "Región", Value: orDefault(f.Region, "(Todas)")},
		{Label: "Sector", Value: orDefault(f.Sector, "(Todos)")},
		{Label: "Fecha", Value: rng},
		{Label: "Unidad", Value: unit},
	}
}

// apply returns the subset of records matching the filters, as a new
// RecordSet sharing the original schema.
func apply(rs *dataset.RecordSet, f Filters) *dataset.RecordSet {
	out := &dataset.RecordSet{Sheet: rs.Sheet, Columns: rs.Columns}
	for _, r := range rs.Records {
		if f.Region != "" && r.Region != f.Region {
			continue
		}
		if f.Sector != "" && r.Sector != f.Sector {
			continue
		}
		if f.From != nil && (r.Timestamp == nil || r.Timestamp.Before(*f.From)) {
			continue
		}
		if f.To != nil && (r.Timestamp == nil || r.Timestamp.After(*f.To)) {
			continue
		}
		out.Records = append(out.Records, r)
	}
	return out
}
