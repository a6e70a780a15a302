package membership

import "github.com/prometheus/client_golang/prometheus/testutil"

func WritesFor(slot, op string) float64 {
	return testutil.ToFloat64(writes.WithLabelValues(slot, op))
}
