package observability

import (
	"testing"
	"time"
)

func TestMetricsRequestsAcrossStatuses(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/tickets/tickets", "POST", 201, time.Millisecond)
	m.RecordRequest("/tickets/tickets", "POST", 400, time.Millisecond)
	m.RecordRequest("/tickets/tickets", "GET", 200, time.Millisecond)

	if got := m.Requests("POST", "/tickets/tickets"); got != 2 {
		t.Errorf("Requests(POST) = %d, want 2", got)
	}
	if got := m.Total(); got != 3 {
		t.Errorf("Total = %d, want 3", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "X")
	if m.Total() != 0 || m.Requests("GET", "/") != 0 || m.Errors("X") != 0 {
		t.Error("nil metrics should report zero")
	}
}

func TestMetricsErrors(t *testing.T) {
	m := NewMetrics()
	m.RecordError("/auth/login", "POST", "SERVER_REJECTED")
	m.RecordError("/auth/me", "GET", "SERVER_REJECTED")
	m.RecordError("/auth/me", "GET", "FETCH_ERROR")
	if got := m.Errors("SERVER_REJECTED"); got != 2 {
		t.Errorf("Errors = %d, want 2", got)
	}
}
