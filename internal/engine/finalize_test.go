package engine

import (
	"testing"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/llm"
	"github.com/arthneeti/engine/internal/model"
	"github.com/arthneeti/engine/internal/store"
)

func TestFinalize_DeactivatesSessionAndFillsHistory(t *testing.T) {
	cfg := config.Default()
	sess := model.NewSession("s1", "u1", cfg)
	sess.Wealth = 120000
	sess.Happiness = 85
	sess.CurrentMonth = cfg.DurationMonths
	e := &Engine{cfg: cfg, reportGen: llm.NewReportGenerator(nil)}
	agg := &store.Aggregate{Session: sess}

	e.finalize(agg, model.ReasonCompleted)

	if sess.IsActive {
		t.Error("IsActive = true after finalize, want false")
	}
	if sess.FinalReport == "" {
		t.Error("FinalReport is empty after finalize")
	}
	if agg.FinalizedHistory == nil {
		t.Fatal("FinalizedHistory is nil after finalize")
	}
	if agg.FinalizedHistory.EndReason != model.ReasonCompleted {
		t.Errorf("EndReason = %s, want %s", agg.FinalizedHistory.EndReason, model.ReasonCompleted)
	}
	if agg.FinalizedHistory.Persona != personaFor(sess).Persona {
		t.Errorf("Persona = %s, want %s", agg.FinalizedHistory.Persona, personaFor(sess).Persona)
	}
}

func TestFinalize_PreservesAlreadySetFinalReport(t *testing.T) {
	cfg := config.Default()
	sess := model.NewSession("s1", "u1", cfg)
	sess.FinalReport = "a pre-written report"
	e := &Engine{cfg: cfg, reportGen: llm.NewReportGenerator(nil)}
	agg := &store.Aggregate{Session: sess}

	e.finalize(agg, model.ReasonBankruptcy)

	if sess.FinalReport != "a pre-written report" {
		t.Errorf("FinalReport = %q, want the pre-written report preserved", sess.FinalReport)
	}
}
