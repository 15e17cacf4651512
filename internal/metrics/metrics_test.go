package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/nicksukie/livesub/internal/core"
)

func TestSyncProviderStatsSetsGauges(t *testing.T) {
	SyncProviderStats([]core.ProviderStats{
		{Provider: "deepl", WordCount: 42, CallCount: 3},
	})

	if got := testutil.ToFloat64(ProviderWordsTotal.WithLabelValues("deepl")); got != 42 {
		t.Fatalf("expected 42 words for deepl, got %v", got)
	}
	if got := testutil.ToFloat64(ProviderCallsTotal.WithLabelValues("deepl")); got != 3 {
		t.Fatalf("expected 3 calls for deepl, got %v", got)
	}
}

func TestQueueDepthGaugeAcceptsArbitraryLabels(t *testing.T) {
	QueueDepth.WithLabelValues("text_q").Set(5)
	if got := testutil.ToFloat64(QueueDepth.WithLabelValues("text_q")); got != 5 {
		t.Fatalf("expected depth 5, got %v", got)
	}
}

func TestGateTripsTotalIncrements(t *testing.T) {
	before := testutil.ToFloat64(GateTripsTotal.WithLabelValues("pause"))
	GateTripsTotal.WithLabelValues("pause").Inc()
	after := testutil.ToFloat64(GateTripsTotal.WithLabelValues("pause"))
	if after != before+1 {
		t.Fatalf("expected pause counter to increment by 1, got %v -> %v", before, after)
	}
}
