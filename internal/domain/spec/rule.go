// Package spec implements the specification bounded context: the tolerance
// rule variants, the evaluator that turns a numeric measurement into a
// verdict, and the resolver that selects the applicable rule for a
// (model, test-type) pair.  All pass/fail business rules live here;
// persistence and caching are handled by separate repository adapters.
package spec

import (
	"encoding/json"
	"fmt"

	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// Rule is the sealed sum type over the four tolerance rule variants.
// Pass applies the variant's boundary test; Describe renders the bounds for
// audit display.  The interval semantics are deliberately asymmetric:
// Fixed and Range use closed intervals, Max and Min use strict inequality,
// so a measurement exactly at a hard ceiling or floor fails.
type Rule interface {
	// Kind returns the variant discriminator.
	Kind() ltypes.RuleKind

	// Pass reports whether the measurement satisfies the rule.
	Pass(result float64) bool

	// Describe renders the rule's bounds for audit display.
	Describe() string

	sealed()
}

// Fixed passes iff target-tolerance <= result <= target+tolerance.
type Fixed struct {
	Target    float64 `json:"target"`
	Tolerance float64 `json:"tolerance"`
}

func (r Fixed) Kind() ltypes.RuleKind { return ltypes.RuleFixed }

func (r Fixed) Pass(result float64) bool {
	return result >= r.Target-r.Tolerance && result <= r.Target+r.Tolerance
}

func (r Fixed) Describe() string {
	return fmt.Sprintf("%.2f ± %.2f", r.Target, r.Tolerance)
}

func (r Fixed) sealed() {}

// Range passes iff min <= result <= max, both boundaries inclusive.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) Kind() ltypes.RuleKind { return ltypes.RuleRange }

func (r Range) Pass(result float64) bool {
	return result >= r.Min && result <= r.Max
}

func (r Range) Describe() string {
	return fmt.Sprintf("entre %.2f e %.2f", r.Min, r.Max)
}

func (r Range) sealed() {}

// Max passes iff result < max.  The boundary itself fails.
type Max struct {
	Limit float64 `json:"limit"`
}

func (r Max) Kind() ltypes.RuleKind { return ltypes.RuleMax }

func (r Max) Pass(result float64) bool {
	return result < r.Limit
}

func (r Max) Describe() string {
	return fmt.Sprintf("máximo %.2f", r.Limit)
}

func (r Max) sealed() {}

// Min passes iff result > min.  The boundary itself fails.
type Min struct {
	Limit float64 `json:"limit"`
}

func (r Min) Kind() ltypes.RuleKind { return ltypes.RuleMin }

func (r Min) Pass(result float64) bool {
	return result > r.Limit
}

func (r Min) Describe() string {
	return fmt.Sprintf("mínimo %.2f", r.Limit)
}

func (r Min) sealed() {}

// BuildRule reconstructs a Rule from its discriminator and stored parameters.
// It is the single decoding point used by the repository and cache layers so
// that every variant is matched exhaustively in one place.  Parameters are
// pointers because the backing columns are nullable; a variant whose required
// parameter is absent is a malformed entry, not a zero-valued rule.
func BuildRule(kind ltypes.RuleKind, target, tolerance, min, max *float64) (Rule, error) {
	missing := func(param string) error {
		return errors.New(errors.ErrCodeRuleInvalid,
			fmt.Sprintf("rule kind %q requires parameter %q", kind, param))
	}
	switch kind {
	case ltypes.RuleFixed:
		if target == nil {
			return nil, missing("target")
		}
		if tolerance == nil {
			return nil, missing("tolerance")
		}
		return Fixed{Target: *target, Tolerance: *tolerance}, nil
	case ltypes.RuleRange:
		if min == nil {
			return nil, missing("min")
		}
		if max == nil {
			return nil, missing("max")
		}
		return Range{Min: *min, Max: *max}, nil
	case ltypes.RuleMax:
		if max == nil {
			return nil, missing("max")
		}
		return Max{Limit: *max}, nil
	case ltypes.RuleMin:
		if min == nil {
			return nil, missing("min")
		}
		return Min{Limit: *min}, nil
	default:
		return nil, errors.New(errors.ErrCodeRuleInvalid, fmt.Sprintf("unknown rule kind %q", kind))
	}
}

// Entry binds a rule to the test-type name it governs within a rule-set or a
// legacy per-model specification.
type Entry struct {
	TestTypeName string
	Rule         Rule
}

// entryJSON is the flat wire representation used for cache serialization.
// Parameters are pointers so an absent bound and a zero-valued bound stay
// distinguishable across the round trip.
type entryJSON struct {
	TestTypeName string          `json:"tipo_teste"`
	Kind         ltypes.RuleKind `json:"kind"`
	Target       *float64        `json:"target,omitempty"`
	Tolerance    *float64        `json:"tolerance,omitempty"`
	Min          *float64        `json:"min,omitempty"`
	Max          *float64        `json:"max,omitempty"`
}

// MarshalJSON flattens the rule variant into a tagged representation.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := entryJSON{TestTypeName: e.TestTypeName}
	switch r := e.Rule.(type) {
	case Fixed:
		out.Kind, out.Target, out.Tolerance = ltypes.RuleFixed, &r.Target, &r.Tolerance
	case Range:
		out.Kind, out.Min, out.Max = ltypes.RuleRange, &r.Min, &r.Max
	case Max:
		out.Kind, out.Max = ltypes.RuleMax, &r.Limit
	case Min:
		out.Kind, out.Min = ltypes.RuleMin, &r.Limit
	default:
		return nil, errors.New(errors.ErrCodeRuleInvalid, "entry has no rule")
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the rule variant from the tagged representation.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var in entryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	rule, err := BuildRule(in.Kind, in.Target, in.Tolerance, in.Min, in.Max)
	if err != nil {
		return err
	}
	e.TestTypeName = in.TestTypeName
	e.Rule = rule
	return nil
}
