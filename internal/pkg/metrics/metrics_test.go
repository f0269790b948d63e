package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	require.NotNil(t, m)
	require.NotNil(t, m.HTTPRequestsTotal)
	require.NotNil(t, m.HTTPRequestDuration)
	require.NotNil(t, m.EventsCreatedTotal)
	require.NotNil(t, m.EnrollmentsTotal)
	require.NotNil(t, m.CancellationsTotal)
	require.NotNil(t, m.CheckInsTotal)
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.EnrollmentsTotal.WithLabelValues("success").Inc()
	m.EnrollmentsTotal.WithLabelValues("success").Inc()
	m.EnrollmentsTotal.WithLabelValues("full").Inc()
	m.CheckInsTotal.WithLabelValues("repeated").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EnrollmentsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EnrollmentsTotal.WithLabelValues("full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckInsTotal.WithLabelValues("repeated")))
}

func TestMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWithRegistry(reg)

	assert.Panics(t, func() {
		NewWithRegistry(reg)
	})
}
