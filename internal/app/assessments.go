package app

import (
	"sync"

	"github.com/talentflow/talentflow/internal/domain/model"
)

// AssessmentContainer holds the builder's working copy of one assessment
// tree plus the preview pane's in-progress responses. The tree is edited
// entirely in memory until an explicit save persists it.
type AssessmentContainer struct {
	mu sync.RWMutex

	assessment *model.Assessment
	sections   []model.Section
	questions  []model.Question
	responses  map[string]any

	previewMode bool
	isLoading   bool
	errMsg      string
	errSeq      uint64
}

// NewAssessmentContainer builds an empty container.
func NewAssessmentContainer() *AssessmentContainer {
	return &AssessmentContainer{responses: make(map[string]any)}
}

// Assessment returns the loaded assessment root, if any.
func (c *AssessmentContainer) Assessment() (model.Assessment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.assessment == nil {
		return model.Assessment{}, false
	}
	return *c.assessment, true
}

// Sections returns a copy of the working section list.
func (c *AssessmentContainer) Sections() []model.Section {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// Questions returns a copy of the working question list.
func (c *AssessmentContainer) Questions() []model.Question {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Responses returns a copy of the preview responses keyed by question id.
func (c *AssessmentContainer) Responses() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]any, len(c.responses))
	for k, v := range c.responses {
		out[k] = v
	}
	return out
}

// PreviewMode reports whether the builder shows the live preview.
func (c *AssessmentContainer) PreviewMode() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.previewMode
}

// IsLoading reports the loading flag.
func (c *AssessmentContainer) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isLoading
}

// Err returns the visible error message, empty when none.
func (c *AssessmentContainer) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

// SetAssessment loads a tree into the container: root, sections, and
// questions swap together.
func (c *AssessmentContainer) SetAssessment(a model.Assessment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := a
	c.assessment = &cp
	c.sections = append(a.Sections[:0:0], a.Sections...)
	c.questions = append(a.Questions[:0:0], a.Questions...)
}

// Tree assembles the current working copy back into one assessment value
// for saving. Returns false when nothing is loaded.
func (c *AssessmentContainer) Tree() (model.Assessment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.assessment == nil {
		return model.Assessment{}, false
	}
	a := *c.assessment
	a.Sections = append(a.Sections[:0:0], c.sections...)
	a.Questions = append(a.Questions[:0:0], c.questions...)
	return a, true
}

// AddSection appends a section to the working tree.
func (c *AssessmentContainer) AddSection(s model.Section) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sections = append(c.sections, s)
}

// UpdateSection applies a merge to the section with the given id.
func (c *AssessmentContainer) UpdateSection(id string, apply func(*model.Section)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.sections {
		if c.sections[i].ID == id {
			apply(&c.sections[i])
			return
		}
	}
}

// DeleteSection removes a section and every question belonging to it.
func (c *AssessmentContainer) DeleteSection(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.sections {
		if c.sections[i].ID == id {
			c.sections = append(c.sections[:i], c.sections[i+1:]...)
			break
		}
	}
	kept := c.questions[:0]
	for _, q := range c.questions {
		if q.SectionID != id {
			kept = append(kept, q)
		}
	}
	c.questions = kept
}

// AddQuestion appends a question to the working tree.
func (c *AssessmentContainer) AddQuestion(q model.Question) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.questions = append(c.questions, q)
}

// UpdateQuestion applies a merge to the question with the given id.
func (c *AssessmentContainer) UpdateQuestion(id string, apply func(*model.Question)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.questions {
		if c.questions[i].ID == id {
			apply(&c.questions[i])
			return
		}
	}
}

// DeleteQuestion removes a question from the working tree.
func (c *AssessmentContainer) DeleteQuestion(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.questions {
		if c.questions[i].ID == id {
			c.questions = append(c.questions[:i], c.questions[i+1:]...)
			return
		}
	}
}

// ReorderSections swaps the whole ordered section list.
func (c *AssessmentContainer) ReorderSections(sections []model.Section) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sections = append(sections[:0:0], sections...)
}

// ReorderQuestions swaps the whole ordered question list.
func (c *AssessmentContainer) ReorderQuestions(questions []model.Question) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.questions = append(questions[:0:0], questions...)
}

// SetResponse records a preview answer for one question.
func (c *AssessmentContainer) SetResponse(questionID string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[questionID] = value
}

// ClearResponses wipes the preview answers.
func (c *AssessmentContainer) ClearResponses() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses = make(map[string]any)
}

// SetPreviewMode toggles the live preview.
func (c *AssessmentContainer) SetPreviewMode(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.previewMode = v
}

// SetLoading sets the loading flag.
func (c *AssessmentContainer) SetLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isLoading = v
}

// SetError surfaces an error message; see JobsContainer.SetError for the
// token contract.
func (c *AssessmentContainer) SetError(msg string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errSeq++
	c.errMsg = msg
	return c.errSeq
}

// ClearError clears the error if token still identifies the visible one.
func (c *AssessmentContainer) ClearError(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == 0 || token == c.errSeq {
		c.errMsg = ""
	}
}

// Reset returns the container to its initial empty state.
func (c *AssessmentContainer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assessment = nil
	c.sections = nil
	c.questions = nil
	c.responses = make(map[string]any)
	c.previewMode = false
	c.isLoading = false
	c.errMsg = ""
}
