package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()

	before := testutil.ToFloat64(SearchSourceQueriesTotal.WithLabelValues("faq", "error"))
	SearchSourceQueriesTotal.WithLabelValues("faq", "error").Inc()
	after := testutil.ToFloat64(SearchSourceQueriesTotal.WithLabelValues("faq", "error"))
	if after-before != 1 {
		t.Errorf("expected counter to grow by 1, got %f", after-before)
	}
}
