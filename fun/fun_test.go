package fun

import (
	"errors"
	"testing"
)

func TestRangeEval_Boundaries(t *testing.T) {
	r := Range{Low: 10, High: 20}

	tests := []struct {
		seed int
		want bool
	}{
		{9, false},
		{10, true},
		{15, true},
		{20, true},
		{21, false},
	}
	for _, tt := range tests {
		if got := r.Eval(tt.seed); got != tt.want {
			t.Errorf("Range{10,20}.Eval(%d) = %v, want %v", tt.seed, got, tt.want)
		}
	}
}

func TestCompareEval(t *testing.T) {
	tests := []struct {
		op      Op
		operand int
		seed    int
		want    bool
	}{
		{OpEq, 5, 5, true},
		{OpEq, 5, 6, false},
		{OpLT, 5, 4, true},
		{OpLT, 5, 5, false},
		{OpGT, 5, 6, true},
		{OpGT, 5, 5, false},
		{OpLE, 5, 5, true},
		{OpLE, 5, 6, false},
		{OpGE, 5, 5, true},
		{OpGE, 5, 4, false},
	}
	for _, tt := range tests {
		c := Compare{Op: tt.op, Operand: tt.operand}
		if got := c.Eval(tt.seed); got != tt.want {
			t.Errorf("Compare{%s %d}.Eval(%d) = %v, want %v", tt.op, tt.operand, tt.seed, got, tt.want)
		}
	}
}

func TestParse_Range(t *testing.T) {
	rule, err := Parse([]any{"range", 3.0, 7.0})
	if err != nil {
		t.Fatalf("Parse range: %v", err)
	}
	r, ok := rule.(Range)
	if !ok {
		t.Fatalf("expected Range, got %T", rule)
	}
	if r.Low != 3 || r.High != 7 {
		t.Errorf("got bounds %d..%d, want 3..7", r.Low, r.High)
	}
}

func TestParse_Compare(t *testing.T) {
	rule, err := Parse([]any{"<=", 12.0})
	if err != nil {
		t.Fatalf("Parse compare: %v", err)
	}
	c, ok := rule.(Compare)
	if !ok {
		t.Fatalf("expected Compare, got %T", rule)
	}
	if c.Op != OpLE || c.Operand != 12 {
		t.Errorf("got %s %d, want <= 12", c.Op, c.Operand)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  []any
	}{
		{"unknown operator", []any{"!=", 4.0}},
		{"range wrong arity", []any{"range", 1.0}},
		{"compare wrong arity", []any{"<", 1.0, 2.0}},
		{"non-integer operand", []any{"<", "five"}},
		{"fractional operand", []any{"=", 2.5}},
		{"empty", []any{}},
		{"operator not a string", []any{4.0, 5.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if err == nil {
				t.Fatalf("Parse(%v) succeeded, want error", tt.raw)
			}
			var me *MalformedExpressionError
			if !errors.As(err, &me) {
				t.Errorf("error type %T, want *MalformedExpressionError", err)
			}
		})
	}
}

func TestParseDest(t *testing.T) {
	rule, room, err := ParseDest([]any{"range", 0.0, 49.0, "cellar"})
	if err != nil {
		t.Fatalf("ParseDest: %v", err)
	}
	if room != "cellar" {
		t.Errorf("room = %q, want cellar", room)
	}
	if !rule.Eval(25) || rule.Eval(50) {
		t.Error("parsed rule has wrong bounds")
	}

	if _, _, err := ParseDest([]any{"range", 0.0, 49.0}); err == nil {
		t.Error("ParseDest without room id succeeded, want error")
	}
	if _, _, err := ParseDest([]any{">", "ten", "cellar"}); err == nil {
		t.Error("ParseDest with bad operand succeeded, want error")
	}
}
