// Package fun implements the fun-value rule mini-language: small
// conditional expressions evaluated against the playthrough's fun value.
// Rules arrive as JSON arrays (["range", lo, hi] or ["<", n]) and are
// parsed into an AST at load time, so evaluation can never fail.
package fun

import (
	"fmt"
	"strings"
)

// Op is a comparison operator in a fun-value rule.
type Op string

const (
	OpEq Op = "="
	OpLT Op = "<"
	OpGT Op = ">"
	OpLE Op = "<="
	OpGE Op = ">="
)

// Rule is a parsed fun-value condition.
type Rule interface {
	// Eval reports whether the rule holds for the given fun value.
	Eval(seed int) bool
}

// Range matches fun values between Low and High, inclusive on both ends.
type Range struct {
	Low, High int
}

// Eval implements Rule.
func (r Range) Eval(seed int) bool {
	return r.Low <= seed && seed <= r.High
}

// Compare matches fun values by integer comparison against Operand.
type Compare struct {
	Op      Op
	Operand int
}

// Eval implements Rule.
func (c Compare) Eval(seed int) bool {
	switch c.Op {
	case OpEq:
		return seed == c.Operand
	case OpLT:
		return seed < c.Operand
	case OpGT:
		return seed > c.Operand
	case OpLE:
		return seed <= c.Operand
	case OpGE:
		return seed >= c.Operand
	}
	// Unreachable: Parse rejects unknown operators.
	return false
}

// MalformedExpressionError reports a fun-value rule that does not parse.
// It is always a load-time failure; rules that survive loading are valid.
type MalformedExpressionError struct {
	Raw    []any
	Reason string
}

func (e *MalformedExpressionError) Error() string {
	return fmt.Sprintf("malformed fun-value rule %v: %s", e.Raw, e.Reason)
}

// Parse decodes a presence-style rule array: ["range", lo, hi] or
// [op, operand] with op one of = < > <= >=.
func Parse(raw []any) (Rule, error) {
	if len(raw) < 2 {
		return nil, &MalformedExpressionError{Raw: raw, Reason: "too few elements"}
	}
	head, ok := raw[0].(string)
	if !ok {
		return nil, &MalformedExpressionError{Raw: raw, Reason: "first element must be an operator string"}
	}

	if head == "range" {
		if len(raw) != 3 {
			return nil, &MalformedExpressionError{Raw: raw, Reason: "range takes exactly two bounds"}
		}
		lo, ok1 := toInt(raw[1])
		hi, ok2 := toInt(raw[2])
		if !ok1 || !ok2 {
			return nil, &MalformedExpressionError{Raw: raw, Reason: "range bounds must be integers"}
		}
		return Range{Low: lo, High: hi}, nil
	}

	op := Op(head)
	switch op {
	case OpEq, OpLT, OpGT, OpLE, OpGE:
	default:
		return nil, &MalformedExpressionError{Raw: raw, Reason: fmt.Sprintf("unknown operator %q", head)}
	}
	if len(raw) != 2 {
		return nil, &MalformedExpressionError{Raw: raw, Reason: "comparison takes exactly one operand"}
	}
	operand, ok := toInt(raw[1])
	if !ok {
		return nil, &MalformedExpressionError{Raw: raw, Reason: "operand must be an integer"}
	}
	return Compare{Op: op, Operand: operand}, nil
}

// ParseDest decodes a destination-style rule array, which is a presence
// rule with a trailing room id: ["range", lo, hi, "room"] or
// [op, operand, "room"].
func ParseDest(raw []any) (Rule, string, error) {
	if len(raw) < 2 {
		return nil, "", &MalformedExpressionError{Raw: raw, Reason: "too few elements"}
	}
	room, ok := raw[len(raw)-1].(string)
	if !ok || room == "" {
		return nil, "", &MalformedExpressionError{Raw: raw, Reason: "last element must be a room id"}
	}
	rule, err := Parse(raw[:len(raw)-1])
	if err != nil {
		return nil, "", err
	}
	return rule, room, nil
}

// String renders a rule back in its source form, for diagnostics.
func String(r Rule) string {
	switch v := r.(type) {
	case Range:
		return fmt.Sprintf("range %d..%d", v.Low, v.High)
	case Compare:
		return fmt.Sprintf("%s %d", v.Op, v.Operand)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", r))
}

// toInt converts a decoded JSON number to int. JSON numbers arrive as
// float64; only whole values are accepted.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
