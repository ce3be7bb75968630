package prob

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"gradsym/lang"
	"gradsym/sym"
	"gradsym/vm"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func sumWeights(d DiscreteDist) float64 {
	var s float64
	for _, w := range d.Weights {
		s += w
	}
	return s
}

func TestDiscreteUniformDistWeights(t *testing.T) {
	d := DiscreteUniformDist(1, 3)
	if len(d.Vals) != 3 {
		t.Fatalf("expected 3 values, got %v", d.Vals)
	}
	if !almostEqual(sumWeights(d), 1, 1e-9) {
		t.Fatalf("weights should sum to 1, got %v", d.Weights)
	}
	for _, w := range d.Weights {
		if !almostEqual(w, 1.0/3, 1e-9) {
			t.Fatalf("expected uniform 1/3 weights, got %v", d.Weights)
		}
	}
}

func TestBernoulliDistWeights(t *testing.T) {
	d := BernoulliDist(0.3)
	if !almostEqual(sumWeights(d), 1, 1e-9) {
		t.Fatalf("weights should sum to 1, got %v", d.Weights)
	}
	if !almostEqual(d.Weights[1], 0.3, 1e-9) {
		t.Fatalf("P(1) should be 0.3, got %v", d.Weights[1])
	}
}

func TestBinomialDistWeights(t *testing.T) {
	d := BinomialDist(3, 0.5)
	if len(d.Vals) != 4 {
		t.Fatalf("expected 4 values (0..3), got %v", d.Vals)
	}
	if !almostEqual(sumWeights(d), 1, 1e-9) {
		t.Fatalf("weights should sum to 1, got %v", d.Weights)
	}
	// symmetric at p=0.5: P(1) == P(2)
	if !almostEqual(d.Weights[1], d.Weights[2], 1e-9) {
		t.Fatalf("expected symmetric binomial weights, got %v", d.Weights)
	}
}

func TestPbranchFirstObservationSetsDenominatorToOne(t *testing.T) {
	e := New(DefaultConfig())
	e.RegisterRandomVar(0, DiscreteUniformDist(1, 3))

	state := vm.NewSymState()
	state.PathConstraints = []*sym.Sym{sym.Eq(sym.Any(0), sym.ConFloat(1))}

	next := e.pbranch(state)
	if !next.HasObservedPCond {
		t.Fatal("expected HasObservedPCond to be set")
	}
	if next.P.Den.CanonicalString() != sym.ConFloat(1).CanonicalString() {
		t.Fatalf("expected denominator 1 on first observation, got %s", next.P.Den.CanonicalString())
	}
	if state.HasObservedPCond {
		t.Fatal("pbranch must not mutate its argument")
	}
}

func TestPbranchRefinesOnSecondObservation(t *testing.T) {
	e := New(DefaultConfig())
	e.RegisterRandomVar(0, DiscreteUniformDist(1, 3))

	state := vm.NewSymState()
	state.PathConstraints = []*sym.Sym{sym.Eq(sym.Any(0), sym.ConFloat(1))}
	state = e.pbranch(state)

	state.PathConstraints = append(state.PathConstraints, sym.Lt(sym.Any(1), sym.ConFloat(2)))
	refined := e.pbranch(state)

	// (c1/1) * ((c1 && c2)/c1) cancels the prior conjunction c1.
	wantDen := sym.ConFloat(1).CanonicalString()
	if refined.P.Den.CanonicalString() != wantDen {
		t.Fatalf("expected the prior conjunction to cancel out of the denominator, got %s want %s", refined.P.Den.CanonicalString(), wantDen)
	}
	wantNum := conjunctionOf(state.PathConstraints).CanonicalString()
	if refined.P.Num.CanonicalString() != wantNum {
		t.Fatalf("expected numerator to be the refined conjunction, got %s want %s", refined.P.Num.CanonicalString(), wantNum)
	}
}

func TestMarginalizeFallsBackWithoutRandomVars(t *testing.T) {
	p := sym.SymProb{Num: sym.ConFloat(2), Den: sym.ConFloat(4)}
	got := Marginalize(p, sym.Params{}, 1e-6, map[int]DiscreteDist{})
	if !almostEqual(got, 0.5, 1e-9) {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestMarginalizeWeightsByJointProbability(t *testing.T) {
	// var_0 is Bernoulli(0.25); num = (var_0 == 1), den = SCon(1). The
	// marginalised expectation of the indicator is exactly 0.25.
	num := sym.Eq(sym.Any(0), sym.ConFloat(1))
	den := sym.ConFloat(1)
	p := sym.SymProb{Num: num, Den: den}

	randomVars := map[int]DiscreteDist{0: BernoulliDist(0.25)}
	got := Marginalize(p, sym.Params{}, 1e-6, randomVars)
	if !almostEqual(got, 0.25, 1e-9) {
		t.Fatalf("expected 0.25, got %v", got)
	}
}

// montyHostDoor returns the door the host reveals: not the contestant's
// choice, not the car; when both remaining doors qualify (car == choice)
// the lower-numbered one is picked, matching the deterministic
// tie-break the compiled decision tree below encodes.
func montyHostDoor(car, choice int) int {
	for _, d := range []int{1, 2, 3} {
		if d != choice && d != car {
			return d
		}
	}
	return 0
}

// montyRemainingDoor is the door neither chosen nor revealed by the
// host: the one a switching contestant ends up with.
func montyRemainingDoor(choice, host int) int {
	for _, d := range []int{1, 2, 3} {
		if d != choice && d != host {
			return d
		}
	}
	return 0
}

// montyHallSource builds a flat if/else-if chain over every
// (car_door, choice) combination, each computing final_choice from
// the pinned door_switch, followed by a comparison against car_door
// that sets result to 1 or 0.
func montyHallSource() string {
	var b strings.Builder
	doors := []int{1, 2, 3}
	first := true
	for _, car := range doors {
		for _, choice := range doors {
			host := montyHostDoor(car, choice)
			switched := montyRemainingDoor(choice, host)
			cond := fmt.Sprintf("car_door == %d && choice == %d", car, choice)
			body := fmt.Sprintf(
				"{ if (door_switch == 1) { final_choice = %d; } else { final_choice = %d; } }",
				switched, choice,
			)
			if first {
				fmt.Fprintf(&b, "if (%s) %s\n", cond, body)
				first = false
			} else {
				fmt.Fprintf(&b, "else if (%s) %s\n", cond, body)
			}
		}
	}
	b.WriteString("if (final_choice == car_door) { result = 1; } else { result = 0; }\n")
	return b.String()
}

func runMontyHall(t *testing.T, doorSwitch int) float64 {
	t.Helper()
	src := montyHallSource()
	res, err := lang.Compile(src)
	if err != nil {
		t.Fatalf("compile monty hall source: %v\n%s", err, src)
	}

	carID := res.Vars.Intern("car_door")
	choiceID := res.Vars.Intern("choice")
	doorSwitchID := res.Vars.Intern("door_switch")
	resultID := res.Vars.Intern("result")

	e := New(DefaultConfig())
	e.RegisterRandomVar(carID, DiscreteUniformDist(1, 3))
	e.RegisterRandomVar(choiceID, DiscreteUniformDist(1, 3))

	init := vm.NewSymState()
	init.SetConcreteVal(doorSwitchID, float32(doorSwitch))

	e.Run(res.Program, nil, init, 4096)

	var expected float64
	params := sym.Params{}
	for pc := 0; pc < len(res.Program); pc++ {
		expected += e.ProbTable.ExpectedValue(pc, resultID, params, e.Config.Optimizer.Eps, e.RandomVars)
	}
	return expected
}

func TestMontyHallNoSwitchExpectedValueOneThird(t *testing.T) {
	got := runMontyHall(t, 0)
	if !almostEqual(got, 1.0/3, 1e-6) {
		t.Fatalf("expected 1/3, got %v", got)
	}
}

func TestMontyHallSwitchExpectedValueTwoThirds(t *testing.T) {
	got := runMontyHall(t, 1)
	if !almostEqual(got, 2.0/3, 1e-6) {
		t.Fatalf("expected 2/3, got %v", got)
	}
}
