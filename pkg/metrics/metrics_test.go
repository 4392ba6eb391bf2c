package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBooking(t *testing.T) {
	m := New("test")

	m.RecordBooking("book", "success")
	m.RecordBooking("book", "success")
	m.RecordBooking("book", "conflict")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues("book", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues("book", "conflict")))
}

func TestObserveRequest(t *testing.T) {
	m := New("test")

	m.ObserveRequest(http.MethodGet, "/api/games", http.StatusOK, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/games", "200")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordBooking("cancel", "success")
		m.ObserveRequest(http.MethodPost, "/api/bookings", http.StatusCreated, time.Millisecond)
	})
}

func TestHandlerExposesBookingCounter(t *testing.T) {
	m := New("test")
	m.RecordBooking("cancel", "already_cancelled")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `test_booking_operations_total{operation="cancel",outcome="already_cancelled"} 1`))
}
