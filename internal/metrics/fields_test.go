package metrics

import (
	"errors"
	"testing"
)

func TestMetricFieldKeysAreStable(t *testing.T) {
	if AttrMethod == "" || AttrPath == "" || AttrStatus == "" || AttrProvider == "" || AttrStage == "" || AttrOutcome == "" {
		t.Fatalf("expected metric attribute keys to be non-empty")
	}
}

func TestOutcome(t *testing.T) {
	if outcome(nil) != OutcomeOK {
		t.Fatal("expected ok outcome")
	}
	if outcome(errors.New("x")) != OutcomeError {
		t.Fatal("expected error outcome")
	}
}
