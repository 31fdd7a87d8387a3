package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestAttachesPoolTokens(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticTokens{Citizen: "tok-ciudadano", Admin: "tok-admin"})

	tests := []struct {
		name string
		pool Pool
		want string
	}{
		{name: "citizen pool", pool: PoolCitizen, want: "Bearer tok-ciudadano"},
		{name: "admin pool", pool: PoolAdmin, want: "Bearer tok-admin"},
		{name: "public pool is anonymous", pool: PoolPublic, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := c.Request(context.Background(), "/tramites", RequestOptions{Pool: tc.pool})
			if !res.OK() {
				t.Fatalf("result = %+v", res)
			}
			if gotAuth != tc.want {
				t.Fatalf("auth header = %q, want %q", gotAuth, tc.want)
			}
		})
	}
}

func TestRequestUniformErrorResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"curp inválida"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticTokens{})
	res := c.Request(context.Background(), "/tramites", RequestOptions{Method: http.MethodPost, Body: map[string]string{}})

	if res.OK() {
		t.Fatal("expected error result")
	}
	if res.Status != http.StatusBadRequest {
		t.Fatalf("status = %d", res.Status)
	}
	if res.Error != "curp inválida" {
		t.Fatalf("error = %q", res.Error)
	}
}

func TestRequestTransportFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", StaticTokens{})
	res := c.Request(context.Background(), "/tramites", RequestOptions{})

	if res.Status != 0 {
		t.Fatalf("status = %d, want 0 for transport failure", res.Status)
	}
	if res.Error == "" {
		t.Fatal("expected an error message")
	}
}

func TestGetCaseNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no existe"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticTokens{})
	if _, err := c.GetCase(context.Background(), "tr-404", PoolCitizen); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBookSlotConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/citas" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"slot ocupado"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticTokens{})
	if _, err := c.BookSlot(context.Background(), "tr-1", "2026-09-10", "10:00", "SIM-AAAA1111"); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("err = %v, want ErrSlotTaken", err)
	}
}

func TestBookSlotSuccessDecodesCase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tramiteId":"tr-1","currentStep":5,"status":"cita-agendada","appointmentCode":"SIM-AAAA1111"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticTokens{})
	rec, err := c.BookSlot(context.Background(), "tr-1", "2026-09-10", "10:00", "SIM-AAAA1111")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if rec.Status != "cita-agendada" || rec.AppointmentCode != "SIM-AAAA1111" {
		t.Fatalf("record = %+v", rec)
	}
}
