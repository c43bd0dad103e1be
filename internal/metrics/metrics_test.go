package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordImportSuccess(t *testing.T) {
	before := testutil.ToFloat64(ImportRunsTotal.WithLabelValues("success"))
	nodesBefore := testutil.ToFloat64(NodesImportedTotal)

	RecordImportSuccess(250, 1.5, 1700000000)

	if got := testutil.ToFloat64(ImportRunsTotal.WithLabelValues("success")); got != before+1 {
		t.Errorf("expected success runs %v, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(NodesImportedTotal); got != nodesBefore+250 {
		t.Errorf("expected nodes imported %v, got %v", nodesBefore+250, got)
	}
	if got := testutil.ToFloat64(LastImportUnix); got != 1700000000 {
		t.Errorf("expected last import gauge 1700000000, got %v", got)
	}
}

func TestRecordImportFailure(t *testing.T) {
	before := testutil.ToFloat64(ImportRunsTotal.WithLabelValues("failure"))
	nodesBefore := testutil.ToFloat64(NodesImportedTotal)

	RecordImportFailure(0.2)

	if got := testutil.ToFloat64(ImportRunsTotal.WithLabelValues("failure")); got != before+1 {
		t.Errorf("expected failure runs %v, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(NodesImportedTotal); got != nodesBefore {
		t.Error("failed runs must not count imported nodes")
	}
}
