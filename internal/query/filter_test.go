package query

import "testing"

func validFilter() *Filter {
	return &Filter{Page: 1, Limit: 100}
}

func TestFilterValidateDefaults(t *testing.T) {
	if err := validFilter().Validate(); err != nil {
		t.Errorf("default filter should validate: %v", err)
	}
}

func TestFilterValidateRejectsZeroPage(t *testing.T) {
	f := validFilter()
	f.Page = 0
	if err := f.Validate(); err == nil {
		t.Fatal("expected error for page < 1")
	}
}

func TestFilterValidateRejectsNonPositiveLimit(t *testing.T) {
	f := validFilter()
	f.Limit = 0
	if err := f.Validate(); err == nil {
		t.Fatal("expected error for non-positive limit")
	}
}

func TestFilterValidateRejectsBadSortDirection(t *testing.T) {
	f := validFilter()
	f.SortDirection = "sideways"
	if err := f.Validate(); err == nil {
		t.Fatal("expected error for invalid sort direction")
	}
}

func TestFilterValidateOverlayOnlySortKeyGating(t *testing.T) {
	f := validFilter()
	f.SortBy = SortKeyScore
	if err := f.Validate(); err == nil {
		t.Fatal("expected error: score sort key requires an overlay")
	}

	f.Overlay = &SolverOverlay{Solver: "s", Run: "r"}
	if err := f.Validate(); err != nil {
		t.Errorf("score sort key with overlay present should validate: %v", err)
	}
}

func TestFilterValidateNonOverlaySortKeysAlwaysAllowed(t *testing.T) {
	f := validFilter()
	f.SortBy = SortKeyNodes
	if err := f.Validate(); err != nil {
		t.Errorf("structural sort key should not require an overlay: %v", err)
	}
}

func TestFilterValidateRejectsLoneSolver(t *testing.T) {
	f := validFilter()
	f.Overlay = &SolverOverlay{Solver: "s"}
	if err := f.Validate(); err == nil {
		t.Fatal("expected error: overlay with solver but no run")
	}
}

func TestFilterValidateRejectsLoneRun(t *testing.T) {
	f := validFilter()
	f.Overlay = &SolverOverlay{Run: "r"}
	if err := f.Validate(); err == nil {
		t.Fatal("expected error: overlay with run but no solver")
	}
}

func TestFilterValidateRejectsOverlayOnlyFilterWithoutOverlay(t *testing.T) {
	lb := 1.0
	f := validFilter()
	f.Overlay = &SolverOverlay{ScoreRange: Range{LB: &lb}}
	if err := f.Validate(); err == nil {
		t.Fatal("expected error: overlay score filter without solver+run")
	}
}

func TestFilterValidateAllowsFullOverlay(t *testing.T) {
	f := validFilter()
	f.Overlay = &SolverOverlay{Solver: "s", Run: "r"}
	if err := f.Validate(); err != nil {
		t.Errorf("fully-specified overlay should validate: %v", err)
	}
}

func TestRangeEmpty(t *testing.T) {
	if !(Range{}).Empty() {
		t.Fatal("zero-value Range should be Empty")
	}
	lb := 1.0
	if (Range{LB: &lb}).Empty() {
		t.Fatal("Range with a lower bound should not be Empty")
	}
}
