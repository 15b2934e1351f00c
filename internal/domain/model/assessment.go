package model

import "time"

// QuestionType enumerates the six supported question kinds.
type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single-choice"
	QuestionMultiChoice  QuestionType = "multi-choice"
	QuestionShortText    QuestionType = "short-text"
	QuestionLongText     QuestionType = "long-text"
	QuestionNumeric      QuestionType = "numeric"
	QuestionFileUpload   QuestionType = "file-upload"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionSingleChoice, QuestionMultiChoice, QuestionShortText,
		QuestionLongText, QuestionNumeric, QuestionFileUpload:
		return true
	}
	return false
}

// QuestionOption is one selectable choice of a choice question.
type QuestionOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ValidationRule holds per-type input constraints.
type ValidationRule struct {
	Required  bool   `json:"required,omitempty"`
	MinLength int    `json:"minLength,omitempty"`
	MaxLength int    `json:"maxLength,omitempty"`
	Min       *int   `json:"min,omitempty"`
	Max       *int   `json:"max,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

// ConditionalRule gates a question's visibility on another response value.
//
// QuestionID nominally references a question in the same section, but seeded
// data is known to carry a section id in this field instead. Visibility
// evaluation supports both lookups; see the conditional package.
type ConditionalRule struct {
	QuestionID string   `json:"questionId"`
	Operator   Operator `json:"operator"`
	Value      []string `json:"value"` // single-valued rules use one element
}

// Operator enumerates conditional comparison operators.
type Operator string

const (
	OpEquals      Operator = "==="
	OpNotEquals   Operator = "!=="
	OpIncludes    Operator = "includes"
	OpNotIncludes Operator = "not-includes"
)

// Question is a leaf of the assessment tree.
type Question struct {
	ID          string           `json:"id"`
	SectionID   string           `json:"sectionId"`
	Type        QuestionType     `json:"type"`
	Label       string           `json:"label"`
	Description string           `json:"description,omitempty"`
	Options     []QuestionOption `json:"options,omitempty"`
	Validation  *ValidationRule  `json:"validation,omitempty"`
	Conditional *ConditionalRule `json:"conditional,omitempty"`
	Order       int              `json:"order"`
}

// Section groups an ordered run of questions.
type Section struct {
	ID           string `json:"id"`
	AssessmentID string `json:"assessmentId"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Order        int    `json:"order"`
}

// Assessment is the root of the form tree for one job. Sections and
// Questions are ordered sequences; the whole tree is saved atomically.
type Assessment struct {
	ID          string     `json:"id"`
	JobID       string     `json:"jobId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Sections    []Section  `json:"sections"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// AssessmentResponse records one candidate's submitted answers, keyed by
// question id.
type AssessmentResponse struct {
	ID           string         `json:"id"`
	AssessmentID string         `json:"assessmentId"`
	CandidateID  string         `json:"candidateId"`
	Answers      map[string]any `json:"answers"`
	SubmittedAt  time.Time      `json:"submittedAt"`
}
