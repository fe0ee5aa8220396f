package http

import (
	"context"
	"fmt"
	"html/template"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/aggregate"
	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
	"github.com/energia-abierta/brasil-consumo-viewer/internal/geo"
	"github.com/energia-abierta/brasil-consumo-viewer/internal/stats"
)

type regionCard struct {
	Name  string
	Value string
	Pct   string
}

type ufRow struct {
	UF     string
	Region string
	Value  string
}

type homeView struct {
	Title    string
	Unit     string
	Regions  []string
	Sectors  []string
	Region   string
	Sector   string
	Query    template.URL
	Count    int
	Total    string
	HasData  bool
	Mean     string
	Median   string
	StdDev   string
	Min      string
	Max      string
	Cards    []regionCard
	UFRows   []ufRow
	Trend70  string
	Trend90  string
	ChartSrc []string
}

// handleHome renders the dashboard page: KPIs, statistics, region cards, the
// UF broadcast table and the chart/download links.
// GET /?regiao=...&setor=...&desde=...&hasta=...
func (s *Server) handleHome(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.String(http.StatusBadRequest, "filtro inválido: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()

	regions, err := s.api.FetchRegions(ctx)
	if err != nil {
		c.String(http.StatusBadGateway, "no se pudo conectar a la API: %v", err)
		return
	}
	sectors, err := s.api.FetchSectors(ctx)
	if err != nil {
		c.String(http.StatusBadGateway, "no se pudo conectar a la API: %v", err)
		return
	}
	raw, err := s.api.FetchIndustrial(ctx)
	if err != nil {
		c.String(http.StatusBadGateway, "no se pudo conectar a la API: %v", err)
		return
	}

	rs := apply(raw, filters)
	summary := stats.Describe(rs.Measures())

	var total float64
	for _, r := range rs.Records {
		total += r.Measure
	}

	view := homeView{
		Title:   "Dashboard de Consumo Energético por Región - Brasil",
		Unit:    s.cfg.Unit(),
		Regions: regions,
		Sectors: sectors,
		Region:  filters.Region,
		Sector:  filters.Sector,
		Query:   template.URL(filters.query()),
		Count:   summary.Count,
		Total:   s.fmtEnergy(total),
		HasData: summary.Count > 0,
	}

	if view.HasData {
		view.Mean = s.fmtEnergy(summary.Mean)
		view.Median = s.fmtEnergy(summary.Median)
		view.Min = s.fmtEnergy(summary.Min)
		view.Max = s.fmtEnergy(summary.Max)
		if math.IsNaN(summary.StdDev) {
			view.StdDev = "n/d"
		} else {
			view.StdDev = s.fmtEnergy(summary.StdDev)
		}
		view.ChartSrc = []string{"sectores.png", "regiones.png", "histograma.png", "serie.png"}
	}

	if regionTotals, err := aggregate.RegionTotals(rs); err == nil {
		rows, _ := aggregate.GroupSum(rs, []string{dataset.ColRegion}, aggregate.ByValueDesc)
		for _, row := range rows {
			pct := 0.0
			if total > 0 {
				pct = row.Sum / total * 100
			}
			name := row.Key[0]
			if name == "" {
				name = "(sin región)"
			}
			view.Cards = append(view.Cards, regionCard{
				Name:  name,
				Value: s.fmtEnergy(row.Sum),
				Pct:   formatPct(pct),
			})
		}
		for _, e := range geo.ExpandRegionTotals(regionTotals) {
			view.UFRows = append(view.UFRows, ufRow{UF: e.UF, Region: e.Region, Value: s.fmtEnergy(e.Total)})
		}
	}

	view.Trend70 = s.fetchTrendLabel(ctx, "1970-1989")
	view.Trend90 = s.fetchTrendLabel(ctx, "1990-2003")

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := homeTemplate.Execute(c.Writer, view); err != nil {
		s.log.WithError(err).Error("render home")
	}
}

func (s *Server) fetchTrendLabel(ctx context.Context, period string) string {
	slope, err := s.api.FetchTrend(ctx, period)
	if err != nil {
		return "n/d"
	}
	return formatSlope(slope)
}

func formatPct(pct float64) string {
	return fmt.Sprintf("%.2f%% del total", pct)
}

func formatSlope(slope float64) string {
	return fmt.Sprintf("%.2f MWh/mes", slope)
}

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; background: #2f2f31; color: #e5e7eb; margin: 2rem; }
h1, h2 { color: #f4f4f5; }
.metric { background: #3b3b3f; border: 1px solid #5a5a60; border-radius: 14px; padding: 14px; display: inline-block; margin: 6px; min-width: 160px; }
table { border-collapse: collapse; margin-top: 1rem; }
td, th { border: 1px solid #5a5a60; padding: 4px 10px; }
img.chart { background: #fff; margin: 8px; max-width: 46%; }
a { color: #8ab4f8; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Backend: API REST · Datos: Excel oficial por regiones · Unidad: {{.Unit}}</p>

<form method="get" action="/">
  <label>Región:
    <select name="regiao">
      <option value="">(Todas)</option>
      {{range .Regions}}<option value="{{.}}" {{if eq . $.Region}}selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
  <label>Sector:
    <select name="setor">
      <option value="">(Todos)</option>
      {{range .Sectors}}<option value="{{.}}" {{if eq . $.Sector}}selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
  <label>Desde: <input type="date" name="desde"></label>
  <label>Hasta: <input type="date" name="hasta"></label>
  <button type="submit">Filtrar</button>
</form>

<h2>KPIs</h2>
<div class="metric">Registros<br><strong>{{.Count}}</strong></div>
<div class="metric">Consumo total<br><strong>{{.Total}}</strong></div>
<div class="metric">Tendencia 1970–1989<br><strong>{{.Trend70}}</strong></div>
<div class="metric">Tendencia 1990–2003<br><strong>{{.Trend90}}</strong></div>

{{if .HasData}}
<h2>Estadísticas (Consumo en {{.Unit}})</h2>
<div class="metric">Media<br><strong>{{.Mean}}</strong></div>
<div class="metric">Mediana<br><strong>{{.Median}}</strong></div>
<div class="metric">Desv. Estándar<br><strong>{{.StdDev}}</strong></div>
<div class="metric">Mínimo<br><strong>{{.Min}}</strong></div>
<div class="metric">Máximo<br><strong>{{.Max}}</strong></div>

<h2>Detalle por Región</h2>
{{range .Cards}}<div class="metric">{{.Name}}<br><strong>{{.Value}}</strong><br>{{.Pct}}</div>{{end}}

<h2>Visualizaciones</h2>
{{range .ChartSrc}}<img class="chart" src="/graficas/{{.}}{{$.Query}}" alt="{{.}}">{{end}}

<h2>Mapa por UF (valor regional difundido)</h2>
<table>
<tr><th>UF</th><th>Región</th><th>Consumo</th></tr>
{{range .UFRows}}<tr><td>{{.UF}}</td><td>{{.Region}}</td><td>{{.Value}}</td></tr>{{end}}
</table>

<h2>Descargas</h2>
<p>
  <a href="/descargas/datos.csv{{.Query}}">⬇ CSV (datos filtrados)</a> ·
  <a href="/descargas/datos.xlsx{{.Query}}">⬇ XLSX</a> ·
  <a href="/descargas/informe.pdf{{.Query}}">⬇ Informe PDF</a>
</p>
{{else}}
<p>No hay datos para los filtros seleccionados.</p>
{{end}}

<h2>Abrir desde el celular</h2>
<img src="/qr.png" width="220" alt="QR">
</body>
</html>`))
