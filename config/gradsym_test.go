package config

import (
	"testing"

	"gradsym/optim"
)

func TestLoadAppliesOverridesOverDefaults(t *testing.T) {
	oc, ec, maxDepth, err := Load([]string{"gradsym_test.cue"})
	if err != nil {
		t.Fatal(err)
	}

	if oc.NumEpochs != 50 {
		t.Fatalf("num_epochs: got %d", oc.NumEpochs)
	}
	if oc.LR != 0.5 {
		t.Fatalf("lr: got %v", oc.LR)
	}
	if oc.Seed != 7 {
		t.Fatalf("seed: got %v", oc.Seed)
	}
	// Eps was not set in the fixture: it should keep its default.
	if want := optim.DefaultConfig().Eps; oc.Eps != want {
		t.Fatalf("eps: got %v, want default %v", oc.Eps, want)
	}

	if ec.MaxSAT != 10 {
		t.Fatalf("max_sat: got %d", ec.MaxSAT)
	}
	if !ec.UseDPLL {
		t.Fatal("use_dpll: expected true")
	}
	if maxDepth != 8 {
		t.Fatalf("max_depth: got %d", maxDepth)
	}
}

func TestLoadWithNoFilesReturnsDefaults(t *testing.T) {
	oc, ec, maxDepth, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if oc.NumEpochs != 100 {
		t.Fatalf("expected default num_epochs, got %d", oc.NumEpochs)
	}
	if ec.MaxSAT == 0 {
		t.Fatal("expected a nonzero default max_sat")
	}
	if maxDepth != 64 {
		t.Fatalf("expected default max_depth 64, got %d", maxDepth)
	}
}
