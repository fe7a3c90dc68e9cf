package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGauges(t *testing.T) {
	r := NewRun("predict")
	r.Stage("events", 120)
	r.Stage("usable", 80)
	r.Hits(23)
	r.Finish("ok")

	assert.Equal(t, 120.0, testutil.ToFloat64(r.stageRows.WithLabelValues("events")))
	assert.Equal(t, 80.0, testutil.ToFloat64(r.stageRows.WithLabelValues("usable")))
	assert.Equal(t, 23.0, testutil.ToFloat64(r.hits))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.status.WithLabelValues("ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.status.WithLabelValues("failed")))
	assert.Positive(t, testutil.ToFloat64(r.lastSuccess))
}

func TestFailedRunKeepsLastSuccessUnset(t *testing.T) {
	r := NewRun("train", WithNamespace("test"))
	r.Finish("failed")
	assert.Equal(t, 0.0, testutil.ToFloat64(r.lastSuccess))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.status.WithLabelValues("failed")))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRun("train")
	r.Accuracy(0.71)
	r.Finish("ok")

	path := filepath.Join(t.TempDir(), "mlbhits.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.True(t, strings.Contains(body, `mlbhits_holdout_accuracy{command="train"} 0.71`), body)
	assert.Contains(t, body, "mlbhits_run_status")
}
