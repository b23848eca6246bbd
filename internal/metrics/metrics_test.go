package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg, nil)

	ClassificationsTotal.WithLabelValues("Unclassified").Inc()
	CacheHits.Inc()
	RequestDuration.WithLabelValues("/x", "GET", "200").Observe(0.1)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["fimi_classifications_total"])
	assert.True(t, names["fimi_cache_hits_total"])
	assert.True(t, names["fimi_api_request_duration_seconds"])
	assert.False(t, names["fimi_db_connection_pool_active"], "no pool, no pool gauges")
}

func TestRegister_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg, nil)
	assert.Panics(t, func() { Register(reg, nil) })
}

func TestCounterRecords(t *testing.T) {
	before := testutil.ToFloat64(IndicatorsCreated.WithLabelValues("Linked"))
	IndicatorsCreated.WithLabelValues("Linked").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(IndicatorsCreated.WithLabelValues("Linked")))
}
