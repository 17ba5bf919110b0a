package observability

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters. The console records outgoing
// API calls; the reference backend records served requests.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	totalLatency time.Duration
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.totalLatency += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Requests returns how many requests hit method+path, across all statuses.
func (m *Metrics) Requests(method, path string) int64 {
	if m == nil {
		return 0
	}
	prefix := path + "|" + method + "|"
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for key, count := range m.requestCount {
		if strings.HasPrefix(key, prefix) {
			total += count
		}
	}
	return total
}

// Total returns the number of recorded requests.
func (m *Metrics) Total() int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, count := range m.requestCount {
		total += count
	}
	return total
}

// Errors returns the number of recorded errors with the given code.
func (m *Metrics) Errors(code string) int64 {
	if m == nil {
		return 0
	}
	suffix := "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for key, count := range m.errorCount {
		if strings.HasSuffix(key, suffix) {
			total += count
		}
	}
	return total
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
