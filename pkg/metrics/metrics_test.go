package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/health", 200, time.Millisecond)
		m.ObserveDBQuery("select", time.Millisecond, errors.New("boom"))
		m.SetDBConnections(1, 1, 0)
		m.IncVisitStarted(true)
		m.IncAppointmentCreated()
		m.IncSlotConflict("snapshot")
		m.ObserveIdentityLookup("appointments", "match")
		m.ObserveIPDiscovery("ipify", "ok")
		m.ObserveEventPublished("appointment.booked", nil)
	})
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("test", reg)

	m.IncSlotConflict("snapshot")
	m.IncSlotConflict("snapshot")
	m.IncSlotConflict("storage")
	m.ObserveDBQuery("insert", time.Millisecond, errors.New("boom"))
	m.ObserveDBQuery("insert", time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.slotConflicts.WithLabelValues("test", "snapshot")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotConflicts.WithLabelValues("test", "storage")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("test", "insert")))
}
