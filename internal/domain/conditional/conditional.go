// Package conditional evaluates question visibility rules against the
// current response set.
package conditional

import (
	"github.com/talentflow/talentflow/internal/domain/model"
)

// Responses maps question id to the current answer. Answers are either a
// string (single-valued questions) or a []string (multi-choice).
type Responses map[string]any

// Visible reports whether q should be shown given the current responses.
//
// A question without a conditional rule is always visible. The rule's
// QuestionID nominally names another question, but seeded data is known to
// carry a section id there instead; both are supported: the referenced
// response is looked up by question id first, and when no question with
// that id exists in the assessment, every question belonging to the named
// section is consulted and the first answered one is used. An unresolvable
// or unanswered reference hides the question (a gate with no input stays
// closed).
func Visible(q model.Question, all []model.Question, responses Responses) bool {
	if q.Conditional == nil {
		return true
	}
	rule := q.Conditional

	value, ok := lookup(rule.QuestionID, all, responses)
	if !ok {
		return false
	}
	return match(rule, value)
}

// lookup resolves the rule reference to a response value.
func lookup(ref string, all []model.Question, responses Responses) (any, bool) {
	for _, other := range all {
		if other.ID == ref {
			v, ok := responses[other.ID]
			return v, ok
		}
	}
	// Section-id fallback: first answered question in the referenced section.
	for _, other := range all {
		if other.SectionID == ref {
			if v, ok := responses[other.ID]; ok {
				return v, true
			}
		}
	}
	return nil, false
}

// match applies the rule operator to the resolved response value.
func match(rule *model.ConditionalRule, value any) bool {
	switch rule.Operator {
	case model.OpEquals:
		return len(rule.Value) > 0 && asString(value) == rule.Value[0]
	case model.OpNotEquals:
		return len(rule.Value) > 0 && asString(value) != rule.Value[0]
	case model.OpIncludes:
		return containsAny(asStrings(value), rule.Value)
	case model.OpNotIncludes:
		return !containsAny(asStrings(value), rule.Value)
	}
	return false
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{vv}
	}
	return nil
}

func containsAny(haystack, needles []string) bool {
	for _, n := range needles {
		for _, h := range haystack {
			if h == n {
				return true
			}
		}
	}
	return false
}
