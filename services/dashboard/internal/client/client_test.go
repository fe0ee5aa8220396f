package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/dataset"
)

func stubAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/catalogos/regioes", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"regioes":["Norte","Sul"]}`))
	})
	mux.HandleFunc("/catalogos/setores-industriais", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"setores":["Metalurgia","Textil"]}`))
	})
	mux.HandleFunc("/consumo/historico/tendencia-1970-1989", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pendiente":1.5}`))
	})
	mux.HandleFunc("/consumo/datos-industrial", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"DataExcel":"2023-01-01T00:00:00Z","Regiao":"Norte","SetorIndustrial":"Metalurgia","Consumo":10,"NumCons":"4"},
			{"DataExcel":null,"Regiao":"Sul","SetorIndustrial":"Textil","Consumo":5,"NumCons":"2"}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchCatalogs(t *testing.T) {
	api := stubAPI(t)
	c := New(api.URL, 5*time.Second)

	regions, err := c.FetchRegions(context.Background())
	if err != nil {
		t.Fatalf("FetchRegions: %v", err)
	}
	if len(regions) != 2 || regions[0] != "Norte" {
		t.Errorf("regions = %v", regions)
	}

	sectors, err := c.FetchSectors(context.Background())
	if err != nil {
		t.Fatalf("FetchSectors: %v", err)
	}
	if len(sectors) != 2 {
		t.Errorf("sectors = %v", sectors)
	}
}

func TestFetchTrend(t *testing.T) {
	api := stubAPI(t)
	c := New(api.URL, 5*time.Second)

	slope, err := c.FetchTrend(context.Background(), "1970-1989")
	if err != nil {
		t.Fatalf("FetchTrend: %v", err)
	}
	if slope != 1.5 {
		t.Errorf("slope = %v, want 1.5", slope)
	}
}

func TestFetchIndustrialRebuildsRecordSet(t *testing.T) {
	api := stubAPI(t)
	c := New(api.URL, 5*time.Second)

	rs, err := c.FetchIndustrial(context.Background())
	if err != nil {
		t.Fatalf("FetchIndustrial: %v", err)
	}

	if len(rs.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(rs.Records))
	}
	first := rs.Records[0]
	if first.Region != "Norte" || first.Sector != "Metalurgia" || first.Measure != 10 {
		t.Errorf("first record = %+v", first)
	}
	if first.Timestamp == nil || first.Timestamp.Format("2006-01-02") != "2023-01-01" {
		t.Errorf("first timestamp = %v", first.Timestamp)
	}
	if rs.Records[1].Timestamp != nil {
		t.Errorf("null timestamp decoded as %v, want nil", rs.Records[1].Timestamp)
	}
	if first.Extra["NumCons"] != "4" {
		t.Errorf("pass-through NumCons = %q", first.Extra["NumCons"])
	}
	if !rs.HasColumn(dataset.ColRegion) || !rs.HasColumn("NumCons") {
		t.Errorf("columns = %v", rs.Columns)
	}
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 5*time.Second)
	if _, err := c.FetchRegions(context.Background()); err == nil {
		t.Fatal("expected error on 500 response")
	}
}
