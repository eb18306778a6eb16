package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCycle(t *testing.T) {
	before := testutil.ToFloat64(pollCycles.WithLabelValues(ResultNoUpdate))
	RecordCycle(ResultNoUpdate)
	assert.Equal(t, before+1, testutil.ToFloat64(pollCycles.WithLabelValues(ResultNoUpdate)))
}

func TestRecordError(t *testing.T) {
	cyclesBefore := testutil.ToFloat64(pollCycles.WithLabelValues(ResultError))
	kindBefore := testutil.ToFloat64(pollErrors.WithLabelValues("schema"))

	RecordError("schema")

	assert.Equal(t, cyclesBefore+1, testutil.ToFloat64(pollCycles.WithLabelValues(ResultError)))
	assert.Equal(t, kindBefore+1, testutil.ToFloat64(pollErrors.WithLabelValues("schema")))
}

func TestSetCursor(t *testing.T) {
	SetCursor(1700000000)
	assert.Equal(t, float64(1700000000), testutil.ToFloat64(cursorGauge))
}
