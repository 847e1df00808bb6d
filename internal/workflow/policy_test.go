package workflow_test

import (
	"testing"

	"talenthub/pipeline-service/internal/workflow"
)

// ── PermissivePolicy — the baseline ────────────────────────────────────────

// Every ordered pair of distinct members of the same enum is allowed,
// including backward moves and moves out of terminal states. This is the
// documented baseline behavior, not a gap.
func TestPermissive_AllowsEveryDistinctPair(t *testing.T) {
	p := workflow.PermissivePolicy{}
	enums := map[workflow.Kind][]string{
		workflow.KindApplication: {"NEW", "REVIEWING", "SHORTLISTED", "REJECTED"},
		workflow.KindPipeline:    {"APPLIED", "SCREENING", "INTERVIEW", "OFFER", "HIRED"},
		workflow.KindInterview:   {"SCHEDULED", "COMPLETED", "CANCELLED"},
		workflow.KindOffer:       {"DRAFT", "SENT", "ACCEPTED", "REJECTED"},
	}
	for kind, states := range enums {
		for _, from := range states {
			for _, to := range states {
				d := p.Decide(kind, from, to)
				if from == to {
					if d.Verdict != workflow.NoOp {
						t.Errorf("Decide(%s, %s → %s) = %v, want NoOp", kind, from, to, d.Verdict)
					}
					continue
				}
				if d.Verdict != workflow.Allow {
					t.Errorf("Decide(%s, %s → %s) = %v, want Allow", kind, from, to, d.Verdict)
				}
			}
		}
	}
}

// Backward moves out of terminal states are explicitly allowed by the
// baseline: COMPLETED → SCHEDULED must pass. A future hardened policy makes
// this a conscious break, not a silent regression.
func TestPermissive_AllowsLeavingTerminalStates(t *testing.T) {
	p := workflow.PermissivePolicy{}
	cases := []struct {
		kind     workflow.Kind
		from, to string
	}{
		{workflow.KindInterview, "COMPLETED", "SCHEDULED"},
		{workflow.KindInterview, "CANCELLED", "SCHEDULED"},
		{workflow.KindOffer, "ACCEPTED", "DRAFT"},
		{workflow.KindOffer, "REJECTED", "SENT"},
		{workflow.KindApplication, "REJECTED", "NEW"},
		{workflow.KindPipeline, "HIRED", "APPLIED"},
	}
	for _, c := range cases {
		if d := p.Decide(c.kind, c.from, c.to); d.Verdict != workflow.Allow {
			t.Errorf("Decide(%s, %s → %s) = %v, want Allow (baseline is permissive)",
				c.kind, c.from, c.to, d.Verdict)
		}
	}
}

func TestPermissive_RejectsUnknownRequested(t *testing.T) {
	p := workflow.PermissivePolicy{}
	for _, kind := range []workflow.Kind{
		workflow.KindApplication, workflow.KindPipeline,
		workflow.KindInterview, workflow.KindOffer,
	} {
		d := p.Decide(kind, workflow.InitialState(kind), "NOT_A_REAL_STATUS")
		if d.Verdict != workflow.Reject {
			t.Errorf("Decide(%s, → NOT_A_REAL_STATUS) = %v, want Reject", kind, d.Verdict)
		}
		if d.Reason == "" {
			t.Errorf("Decide(%s, → NOT_A_REAL_STATUS) rejection must carry a reason", kind)
		}
	}
}

func TestPermissive_RejectsUnknownCurrent(t *testing.T) {
	p := workflow.PermissivePolicy{}
	d := p.Decide(workflow.KindApplication, "CORRUPTED", "NEW")
	if d.Verdict != workflow.Reject {
		t.Errorf("Decide with unknown current = %v, want Reject", d.Verdict)
	}
}

// ── StrictPolicy — the opt-in hardened variant ─────────────────────────────

func TestStrict_RefusesToLeaveTerminalStates(t *testing.T) {
	p := workflow.StrictPolicy{}
	cases := []struct {
		kind string
		k    workflow.Kind
		from string
		to   string
	}{
		{"interview", workflow.KindInterview, "COMPLETED", "SCHEDULED"},
		{"interview", workflow.KindInterview, "CANCELLED", "SCHEDULED"},
		{"offer", workflow.KindOffer, "ACCEPTED", "SENT"},
		{"offer", workflow.KindOffer, "REJECTED", "DRAFT"},
		{"application", workflow.KindApplication, "REJECTED", "REVIEWING"},
		{"pipeline", workflow.KindPipeline, "HIRED", "OFFER"},
	}
	for _, c := range cases {
		if d := p.Decide(c.k, c.from, c.to); d.Verdict != workflow.Reject {
			t.Errorf("strict Decide(%s, %s → %s) = %v, want Reject", c.kind, c.from, c.to, d.Verdict)
		}
	}
}

func TestStrict_AllowsNonTerminalMoves(t *testing.T) {
	p := workflow.StrictPolicy{}
	cases := []struct {
		k        workflow.Kind
		from, to string
	}{
		{workflow.KindApplication, "NEW", "REVIEWING"},
		{workflow.KindApplication, "SHORTLISTED", "NEW"}, // backward but not terminal
		{workflow.KindInterview, "SCHEDULED", "CANCELLED"},
		{workflow.KindOffer, "SENT", "ACCEPTED"},
		{workflow.KindPipeline, "OFFER", "HIRED"},
	}
	for _, c := range cases {
		if d := p.Decide(c.k, c.from, c.to); d.Verdict != workflow.Allow {
			t.Errorf("strict Decide(%s, %s → %s) = %v, want Allow", c.k, c.from, c.to, d.Verdict)
		}
	}
}

// A same-state call on a terminal state is still a NoOp under strict — the
// terminal guard only blocks leaving, not touching.
func TestStrict_NoOpOnTerminalSelf(t *testing.T) {
	p := workflow.StrictPolicy{}
	if d := p.Decide(workflow.KindOffer, "ACCEPTED", "ACCEPTED"); d.Verdict != workflow.NoOp {
		t.Errorf("strict Decide(offer, ACCEPTED → ACCEPTED) = %v, want NoOp", d.Verdict)
	}
}
