package esp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "classwatch/internal/platform/errors"
	"classwatch/internal/services/actuator/domain"
)

func TestSetLED(t *testing.T) {
	t.Parallel()

	var got struct {
		Red    bool `json:"red"`
		Yellow bool `json:"yellow"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/led" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if u, p, ok := r.BasicAuth(); !ok || u != "admin" || p != "secret" {
			t.Error("basic auth not forwarded")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("body: %v", err)
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Username: "admin", Password: "secret"})
	if err := c.SetLED(context.Background(), true, false); err != nil {
		t.Fatalf("SetLED: %v", err)
	}
	if !got.Red || got.Yellow {
		t.Fatalf("device received %+v", got)
	}
}

func TestSetLEDRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	if err := c.SetLED(context.Background(), true, false); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestSetLEDUnreachable(t *testing.T) {
	t.Parallel()

	c := New(Config{BaseURL: "http://127.0.0.1:1"})
	if err := c.SetLED(context.Background(), true, false); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestReadSensor(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/dht11" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]float64{"temp": 31.5, "humidity": 62})
	}))
	defer srv.Close()

	// read through the port the actuator controller consumes
	var c domain.DevicePort = New(Config{BaseURL: srv.URL})
	r, err := c.ReadSensor(context.Background())
	if err != nil {
		t.Fatalf("ReadSensor: %v", err)
	}
	if r.Temp != 31.5 || r.Humidity != 62 {
		t.Fatalf("reading %+v", r)
	}
}

func TestReadSensorBadPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	if _, err := c.ReadSensor(context.Background()); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}
