package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-saga/internal/games/saga/core"
)

// deadlockRows has no run of three and no swap that makes one.
var deadlockRows = []string{
	"ABCABC",
	"BCABCA",
	"CABCAB",
	"ABCABC",
	"BCABCA",
	"CABCAB",
}

func mustGrid(t *testing.T, rows []string) *core.Grid {
	t.Helper()
	g, err := core.NewGridFromRows(rows)
	if err != nil {
		t.Fatalf("NewGridFromRows failed: %v", err)
	}
	return g
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name string
		rows []string
		a, b core.Pos
		code int
	}{
		{
			name: "run left of B",
			rows: []string{"AAFDEF", "EFAEFD", "FDEFDE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 1), b: core.P(2, 0), code: 3,
		},
		{
			name: "run right of B",
			rows: []string{"DEFAAF", "EFAEFD", "FDEFDE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 1), b: core.P(2, 0), code: 1,
		},
		{
			name: "run below B",
			rows: []string{"DEFDEF", "EFDEFD", "FAEFDE", "DEADEF", "EFAEFD", "FDEFDE"},
			a:    core.P(1, 2), b: core.P(2, 2), code: 2,
		},
		{
			name: "run above B",
			rows: []string{"DEADEF", "EFAEFD", "FAEFDE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(1, 2), b: core.P(2, 2), code: 4,
		},
		{
			name: "centred row",
			rows: []string{"DAFAEF", "EFAEFD", "FDEFDE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 1), b: core.P(2, 0), code: 5,
		},
		{
			name: "centred column",
			rows: []string{"DEFDEF", "EFAEFD", "FAEFDE", "DEADEF", "EFDEFD", "FDEFDE"},
			a:    core.P(1, 2), b: core.P(2, 2), code: 6,
		},
		{
			name: "five in a row",
			rows: []string{"AAFAAF", "EFAEFD", "FDEFDE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 1), b: core.P(2, 0), code: 8,
		},
		{
			name: "five in a column",
			rows: []string{"DEADEF", "EFAEFD", "FAEFDE", "DEADEF", "EFAEFD", "FDEFDE"},
			a:    core.P(1, 2), b: core.P(2, 2), code: 7,
		},
		{
			name: "four with B third",
			rows: []string{"AAFAEF", "EFAEFD", "FDEFDE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 1), b: core.P(2, 0), code: 300,
		},
		{
			name: "four with B second",
			rows: []string{"DAFAAF", "EFAEFD", "FDEFDE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 1), b: core.P(2, 0), code: 100,
		},
		{
			name: "four down",
			rows: []string{"DEFDEF", "EFAEFD", "FAEFDE", "DEADEF", "EFAEFD", "FDEFDE"},
			a:    core.P(1, 2), b: core.P(2, 2), code: 200,
		},
		{
			name: "right run with arm below",
			rows: []string{"DEFDEF", "EFAEFD", "FDEAAE", "DEADEF", "EFAEFD", "FDEFDE"},
			a:    core.P(2, 1), b: core.P(2, 2), code: 16,
		},
		{
			name: "run right of A",
			rows: []string{"DEADEF", "EFDAAD", "FDEFDE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 1), b: core.P(2, 0), code: -1,
		},
		{
			name: "run below A",
			rows: []string{"DEFDEF", "EFAEFD", "FDEFDE", "DEADEF", "EFAEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(2, 1), code: -2,
		},
		{
			name: "run right with arm up",
			rows: []string{"DEFAEF", "EFDAFD", "FDABAA", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(3, 2), code: 15,
		},
		{
			name: "run right with centred arm",
			rows: []string{"DEFDEF", "EFDAFD", "FDABAA", "DEFAEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(3, 2), code: 17,
		},
		{
			name: "right and down arms resolve as run right",
			rows: []string{"DEFDEF", "EFDEFD", "FAAAAE", "DEADEF", "EFAEFD", "FDEFDE"},
			a:    core.P(1, 2), b: core.P(2, 2), code: 16,
		},
		{
			name: "run down with arm left",
			rows: []string{"DEFDEF", "EFDEFD", "FDAFDE", "AABDEF", "EFAEFD", "FDAFDE"},
			a:    core.P(2, 2), b: core.P(2, 3), code: 26,
		},
		{
			name: "run down with centred arm",
			rows: []string{"DEFDEF", "EFDEFD", "FDAFDE", "DABAEF", "EFAEFD", "FDAFDE"},
			a:    core.P(2, 2), b: core.P(2, 3), code: 27,
		},
		{
			name: "run left with arm up",
			rows: []string{"DEADEF", "EFAEFD", "AAAFDE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 1), b: core.P(2, 2), code: 35,
		},
		{
			name: "run up with centred arm",
			rows: []string{"DEADEF", "EFAEFD", "FABADE", "DEADEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 3), b: core.P(2, 2), code: 47,
		},
		{
			name: "four up",
			rows: []string{"DEFAEF", "EFDAFD", "FDABDE", "DEFAEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(3, 2), code: 400,
		},
		{
			name: "run left of A",
			rows: []string{"DEFDEF", "EFAEFD", "AABFDE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(2, 1), code: -3,
		},
		{
			name: "run above A",
			rows: []string{"DEADEF", "EFAEFD", "FDBFDE", "DEADEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(2, 3), code: -4,
		},
		{
			name: "centred row at A",
			rows: []string{"DEFDEF", "EFAEFD", "FABADE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(2, 1), code: -5,
		},
		{
			name: "centred column at A",
			rows: []string{"DEFDEF", "EFAEFD", "FDBADE", "DEADEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(3, 2), code: -6,
		},
		{
			name: "five in a column at A",
			rows: []string{"DEADEF", "EFAEFD", "FABFDE", "DEADEF", "EFAEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(1, 2), code: -7,
		},
		{
			name: "five in a row at A",
			rows: []string{"DEFDEF", "EFAEFD", "AABAAE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(2, 1), code: -8,
		},
		{
			name: "run right of A with arm up",
			rows: []string{"DEADEF", "EFAEFD", "FDBAAE", "DEADEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(2, 3), code: -15,
		},
		{
			name: "run right of A with arm down",
			rows: []string{"DEFDEF", "EFDEFD", "FABAAE", "DEADEF", "EFAEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(1, 2), code: -16,
		},
		{
			name: "run right of A with centred arm",
			rows: []string{"DEFDEF", "EFAEFD", "FABAAE", "DEADEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(1, 2), code: -17,
		},
		{
			name: "run below A with arm left",
			rows: []string{"DEFDEF", "EFDEFD", "AABADE", "DEADEF", "EFAEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(3, 2), code: -26,
		},
		{
			name: "run below A with centred arm",
			rows: []string{"DEFDEF", "EFAEFD", "FABADE", "DEADEF", "EFAEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(2, 1), code: -27,
		},
		{
			name: "run left of A with arm up",
			rows: []string{"DEADEF", "EFAEFD", "AABFDE", "DEADEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(2, 3), code: -35,
		},
		{
			name: "run left of A with centred arm",
			rows: []string{"DEFDEF", "EFAEFD", "AABADE", "DEADEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(3, 2), code: -37,
		},
		{
			name: "run above A with centred arm",
			rows: []string{"DEADEF", "EFAEFD", "FABADE", "DEADEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(2, 3), code: -47,
		},
		{
			name: "four right of A",
			rows: []string{"DEFDEF", "EFDEFD", "FABAAE", "DEADEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(2, 3), code: -100,
		},
		{
			name: "four down at A",
			rows: []string{"DEFDEF", "EFAEFD", "FDBADE", "DEADEF", "EFAEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(3, 2), code: -200,
		},
		{
			name: "four left of A",
			rows: []string{"DEFDEF", "EFAEFD", "AABADE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(2, 1), code: -300,
		},
		{
			name: "four up at A",
			rows: []string{"DEADEF", "EFAEFD", "FABFDE", "DEADEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 2), b: core.P(1, 2), code: -400,
		},
		{
			name: "no pattern",
			rows: []string{"AEFDEF", "EFAEFD", "FDEFDE", "DEFDEF", "EFDEFD", "FDEFDE"},
			a:    core.P(2, 1), b: core.P(2, 0), code: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGrid(t, tc.rows)
			got := core.Classify(g, tc.a, tc.b)
			if got.Code() != tc.code {
				t.Errorf("Classify(%v, %v) = %v (code %d), expected code %d", tc.a, tc.b, got, got.Code(), tc.code)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	rows := []string{"AAFAAF", "EFAEFD", "FDEFDE", "DEFDEF", "EFDEFD", "FDEFDE"}
	g := mustGrid(t, rows)
	before := g.String()

	first := core.Classify(g, core.P(2, 1), core.P(2, 0))
	second := core.Classify(g, core.P(2, 1), core.P(2, 0))

	if first != second {
		t.Errorf("Classify not deterministic: %v then %v", first, second)
	}
	if g.String() != before {
		t.Errorf("Classify modified the grid:\n%s\nexpected:\n%s", g.String(), before)
	}
}

func TestClassifyOffGridProbes(t *testing.T) {
	// Corner swaps read cells outside the grid on two sides.
	g := mustGrid(t, []string{"AB", "BA"})
	if s := core.Classify(g, core.P(0, 0), core.P(1, 0)); !s.IsZero() {
		t.Errorf("Classify on 2x2 = %v, expected none", s)
	}
	if s := core.Classify(g, core.P(1, 1), core.P(1, 1)); !s.IsZero() {
		t.Errorf("in-place Classify on 2x2 = %v, expected none", s)
	}
}

func TestClassifyEmptyCells(t *testing.T) {
	g := mustGrid(t, []string{"A.A", "DAE"})
	// The empty cell never matches, even when swapped into place.
	if s := core.Classify(g, core.P(1, 1), core.P(1, 0)); s.Code() != 5 {
		t.Errorf("Classify = %v, expected centred row at B", s)
	}
	if s := core.Classify(g, core.P(1, 0), core.P(1, 0)); !s.IsZero() {
		t.Errorf("in-place Classify of empty cell = %v, expected none", s)
	}
}

func TestFindMoveDeadlock(t *testing.T) {
	g := mustGrid(t, deadlockRows)
	if m, ok := core.FindMove(g); ok {
		t.Errorf("FindMove = %v, expected none", m)
	}
	if m, ok := core.FindMatch(g); ok {
		t.Errorf("FindMatch = %v, expected none", m)
	}
}

func TestFindMove(t *testing.T) {
	g := mustGrid(t, []string{"AAFDEF", "EFAEFD", "FDEFDE", "DEFDEF", "EFDEFD", "FDEFDE"})
	m, ok := core.FindMove(g)
	if !ok {
		t.Fatal("FindMove found nothing")
	}
	if !m.A.Adjacent(m.B) {
		t.Errorf("FindMove = %v, expected adjacent cells", m)
	}
	if s := core.Classify(g, m.A, m.B); s.IsZero() {
		t.Errorf("Classify(%v) = none for a found move", m)
	}
}

func TestFindMatch(t *testing.T) {
	g := mustGrid(t, []string{"DEFDEF", "EAAAFD", "FDEFDE"})
	m, ok := core.FindMatch(g)
	if !ok {
		t.Fatal("FindMatch found nothing")
	}
	if m.A != m.B {
		t.Errorf("FindMatch = %v, expected an in-place move", m)
	}
	if m.A.Row != 1 || m.A.Col < 1 || m.A.Col > 3 {
		t.Errorf("FindMatch = %v, expected a cell of the run on row 1", m)
	}
}
