package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/mindthegap/geo"
	"github.com/theoremus-urban-solutions/mindthegap/model"
)

func TestFileProvider_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "victoria.json")
	if err := os.WriteFile(path, []byte(`{"lineId":"victoria"}`), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	data, err := FileProvider{Path: path}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(data) != `{"lineId":"victoria"}` {
		t.Errorf("unexpected content %q", data)
	}

	_, err = FileProvider{Path: filepath.Join(t.TempDir(), "missing.json")}.Fetch(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestFileProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (FileProvider{Path: "unused"}).Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestHTTPProvider_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	data, err := HTTPProvider{URL: srv.URL + "/ok"}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("unexpected body %q", data)
	}

	_, err = HTTPProvider{URL: srv.URL + "/missing?app_key=secret"}.Fetch(context.Background())
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
	if strings.Contains(err.Error(), "secret") {
		t.Errorf("error should not leak the query string: %v", err)
	}
}

func TestOpen(t *testing.T) {
	if _, ok := Open("https://api.tfl.gov.uk/Line/victoria", nil).(HTTPProvider); !ok {
		t.Error("https URL should open an HTTPProvider")
	}
	if _, ok := Open("testdata/lines/victoria.json", nil).(FileProvider); !ok {
		t.Error("path should open a FileProvider")
	}
}

func servedStation() *model.Station {
	stn := model.NewStation("940GZZLUOXC", "Oxford Circus", geo.NewCoordinate(51.515224, -0.141903))
	for _, id := range []string{"victoria", "central", "bakerloo"} {
		model.NewLine(model.LineResource{ID: id}, id, id).AddStation(stn)
	}
	return stn
}

func TestArrivalsURL(t *testing.T) {
	got, err := ArrivalsURL("", Credentials{AppID: "id", AppKey: "key"}, servedStation())
	if err != nil {
		t.Fatalf("ArrivalsURL returned error: %v", err)
	}
	want := "https://api.tfl.gov.uk/Line/bakerloo,central,victoria/Arrivals?app_id=id&app_key=key&stopPointId=940GZZLUOXC"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	lonely := model.NewStation("X", "Nowhere", geo.Coordinate{})
	if _, err := ArrivalsURL("", Credentials{}, lonely); !errors.Is(err, ErrNoLines) {
		t.Errorf("expected ErrNoLines, got %v", err)
	}
}

func TestArrivalsProvider_Fetch(t *testing.T) {
	var gotPath, gotStop string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotStop = r.URL.Query().Get("stopPointId")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lineId":"victoria"}]`))
	}))
	defer srv.Close()

	p, err := NewArrivalsProvider(srv.URL+"/", Credentials{}, time.Second, servedStation())
	if err != nil {
		t.Fatalf("NewArrivalsProvider returned error: %v", err)
	}
	data, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if gotPath != "/Line/bakerloo,central,victoria/Arrivals" || gotStop != "940GZZLUOXC" {
		t.Errorf("unexpected request %s stop=%s", gotPath, gotStop)
	}
	if !strings.Contains(string(data), "victoria") {
		t.Errorf("unexpected body %q", data)
	}
}

func TestArrivalsProvider_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p, err := NewArrivalsProvider(srv.URL, Credentials{}, 0, servedStation())
	if err != nil {
		t.Fatalf("NewArrivalsProvider returned error: %v", err)
	}
	if _, err := p.Fetch(context.Background()); !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("expected ErrUnexpectedStatus, got %v", err)
	}
}
