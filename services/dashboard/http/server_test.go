package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/energia-abierta/brasil-consumo-viewer/services/dashboard/config"
	"github.com/energia-abierta/brasil-consumo-viewer/services/dashboard/internal/client"
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
		w.Write([]byte(`{"pendiente":12.5}`))
	})
	mux.HandleFunc("/consumo/historico/tendencia-1990-2003", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pendiente":-3.25}`))
	})
	mux.HandleFunc("/consumo/datos-industrial", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"DataExcel":"2023-01-01T00:00:00Z","Regiao":"Norte","SetorIndustrial":"Metalurgia","Consumo":10},
			{"DataExcel":"2023-02-01T00:00:00Z","Regiao":"Norte","SetorIndustrial":"Textil","Consumo":20},
			{"DataExcel":"2023-01-01T00:00:00Z","Regiao":"Sul","SetorIndustrial":"Metalurgia","Consumo":5}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testServer(t *testing.T) *Server {
	t.Helper()
	api := stubAPI(t)

	cfg := config.Config{
		APIURL:         api.URL,
		DashboardURL:   "http://localhost:8081",
		Port:           8081,
		RequestTimeout: 5 * time.Second,
		ShowGWh:        true,
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return New(cfg, client.New(cfg.APIURL, cfg.RequestTimeout), logger)
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func TestHomePage(t *testing.T) {
	w := get(t, testServer(t), "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	for _, want := range []string{"Registros", "Norte", "Metalurgia", "GWh", "informe.pdf"} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestHomePageFiltered(t *testing.T) {
	w := get(t, testServer(t), "/?regiao=Sul")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	// Only the single Sul record survives the filter.
	if !strings.Contains(w.Body.String(), "Registros<br><strong>1</strong>") {
		t.Errorf("filtered record count not rendered")
	}
}

func TestCSVDownload(t *testing.T) {
	w := get(t, testServer(t), "/descargas/datos.csv")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "DataExcel,Regiao,SetorIndustrial,Consumo") {
		t.Errorf("csv header = %q", strings.SplitN(body, "\n", 2)[0])
	}
	if !strings.Contains(body, "Norte") {
		t.Error("csv missing data rows")
	}
}

func TestQREndpoint(t *testing.T) {
	w := get(t, testServer(t), "/qr.png")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
}

func TestUnknownChart(t *testing.T) {
	w := get(t, testServer(t), "/graficas/nada.png")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestHomePageAPIDown(t *testing.T) {
	cfg := config.Config{
		APIURL:         "http://127.0.0.1:1",
		RequestTimeout: time.Second,
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	srv := New(cfg, client.New(cfg.APIURL, cfg.RequestTimeout), logger)

	w := get(t, srv, "/")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}
