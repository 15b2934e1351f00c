package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/talentflow/talentflow/internal/domain/model"
)

// Row types mirror the domain models with storage concerns attached:
// secondary indexes on the natural keys and JSON columns for nested data.
// "order" is kept out of column names to avoid quoting a SQL keyword.

type jobRow struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Status      string `gorm:"index;not null"`
	Tags        datatypes.JSON
	SortOrder   int `gorm:"index"`
	Description string
	Location    string
	Department  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (jobRow) TableName() string { return "jobs" }

type candidateRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"index;not null"`
	Stage     string `gorm:"index;not null"`
	JobID     string `gorm:"index"`
	Phone     string
	AppliedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (candidateRow) TableName() string { return "candidates" }

type timelineRow struct {
	ID          string `gorm:"primaryKey"`
	CandidateID string `gorm:"index;not null"`
	FromStage   *string
	ToStage     string    `gorm:"not null"`
	ChangedAt   time.Time `gorm:"index"`
	Note        string
}

func (timelineRow) TableName() string { return "candidate_timeline" }

type noteRow struct {
	ID          string `gorm:"primaryKey"`
	CandidateID string `gorm:"index;not null"`
	Content     string `gorm:"not null"`
	Mentions    datatypes.JSON
	CreatedAt   time.Time `gorm:"index"`
}

func (noteRow) TableName() string { return "candidate_notes" }

type assessmentRow struct {
	ID          string `gorm:"primaryKey"`
	JobID       string `gorm:"uniqueIndex;not null"`
	Title       string
	Description string
	Sections    datatypes.JSON
	Questions   datatypes.JSON
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (assessmentRow) TableName() string { return "assessments" }

type responseRow struct {
	ID           string `gorm:"primaryKey"`
	AssessmentID string `gorm:"index:idx_response_lookup,priority:1;not null"`
	CandidateID  string `gorm:"index:idx_response_lookup,priority:2;not null"`
	Answers      datatypes.JSON
	SubmittedAt  time.Time `gorm:"index"`
}

func (responseRow) TableName() string { return "assessment_responses" }

// toJSON marshals v into a JSON column value.
func toJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json column: %w", err)
	}
	return datatypes.JSON(b), nil
}

// fromJSON unmarshals a JSON column into out, tolerating empty columns.
func fromJSON(data datatypes.JSON, out any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}

func jobToRow(j model.Job) (jobRow, error) {
	tags, err := toJSON(j.Tags)
	if err != nil {
		return jobRow{}, err
	}
	return jobRow{
		ID:          j.ID,
		Title:       j.Title,
		Slug:        j.Slug,
		Status:      string(j.Status),
		Tags:        tags,
		SortOrder:   j.Order,
		Description: j.Description,
		Location:    j.Location,
		Department:  j.Department,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}, nil
}

func rowToJob(r jobRow) (model.Job, error) {
	var tags []string
	if err := fromJSON(r.Tags, &tags); err != nil {
		return model.Job{}, err
	}
	return model.Job{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Status:      model.JobStatus(r.Status),
		Tags:        tags,
		Order:       r.SortOrder,
		Description: r.Description,
		Location:    r.Location,
		Department:  r.Department,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

func candidateToRow(c model.Candidate) candidateRow {
	return candidateRow{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Stage:     string(c.Stage),
		JobID:     c.JobID,
		Phone:     c.Phone,
		AppliedAt: c.AppliedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func rowToCandidate(r candidateRow) model.Candidate {
	return model.Candidate{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Stage:     model.Stage(r.Stage),
		JobID:     r.JobID,
		Phone:     r.Phone,
		AppliedAt: r.AppliedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func timelineToRow(e model.TimelineEntry) timelineRow {
	var from *string
	if e.FromStage != nil {
		s := string(*e.FromStage)
		from = &s
	}
	return timelineRow{
		ID:          e.ID,
		CandidateID: e.CandidateID,
		FromStage:   from,
		ToStage:     string(e.ToStage),
		ChangedAt:   e.ChangedAt,
		Note:        e.Note,
	}
}

func rowToTimeline(r timelineRow) model.TimelineEntry {
	var from *model.Stage
	if r.FromStage != nil {
		s := model.Stage(*r.FromStage)
		from = &s
	}
	return model.TimelineEntry{
		ID:          r.ID,
		CandidateID: r.CandidateID,
		FromStage:   from,
		ToStage:     model.Stage(r.ToStage),
		ChangedAt:   r.ChangedAt,
		Note:        r.Note,
	}
}

func noteToRow(n model.Note) (noteRow, error) {
	mentions, err := toJSON(n.Mentions)
	if err != nil {
		return noteRow{}, err
	}
	return noteRow{
		ID:          n.ID,
		CandidateID: n.CandidateID,
		Content:     n.Content,
		Mentions:    mentions,
		CreatedAt:   n.CreatedAt,
	}, nil
}

func rowToNote(r noteRow) (model.Note, error) {
	var mentions []string
	if err := fromJSON(r.Mentions, &mentions); err != nil {
		return model.Note{}, err
	}
	return model.Note{
		ID:          r.ID,
		CandidateID: r.CandidateID,
		Content:     r.Content,
		Mentions:    mentions,
		CreatedAt:   r.CreatedAt,
	}, nil
}

func assessmentToRow(a model.Assessment) (assessmentRow, error) {
	sections, err := toJSON(a.Sections)
	if err != nil {
		return assessmentRow{}, err
	}
	questions, err := toJSON(a.Questions)
	if err != nil {
		return assessmentRow{}, err
	}
	return assessmentRow{
		ID:          a.ID,
		JobID:       a.JobID,
		Title:       a.Title,
		Description: a.Description,
		Sections:    sections,
		Questions:   questions,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}, nil
}

func rowToAssessment(r assessmentRow) (model.Assessment, error) {
	var sections []model.Section
	if err := fromJSON(r.Sections, &sections); err != nil {
		return model.Assessment{}, err
	}
	var questions []model.Question
	if err := fromJSON(r.Questions, &questions); err != nil {
		return model.Assessment{}, err
	}
	return model.Assessment{
		ID:          r.ID,
		JobID:       r.JobID,
		Title:       r.Title,
		Description: r.Description,
		Sections:    sections,
		Questions:   questions,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

func responseToRow(resp model.AssessmentResponse) (responseRow, error) {
	answers, err := toJSON(resp.Answers)
	if err != nil {
		return responseRow{}, err
	}
	return responseRow{
		ID:           resp.ID,
		AssessmentID: resp.AssessmentID,
		CandidateID:  resp.CandidateID,
		Answers:      answers,
		SubmittedAt:  resp.SubmittedAt,
	}, nil
}

func rowToResponse(r responseRow) (model.AssessmentResponse, error) {
	var answers map[string]any
	if err := fromJSON(r.Answers, &answers); err != nil {
		return model.AssessmentResponse{}, err
	}
	return model.AssessmentResponse{
		ID:           r.ID,
		AssessmentID: r.AssessmentID,
		CandidateID:  r.CandidateID,
		Answers:      answers,
		SubmittedAt:  r.SubmittedAt,
	}, nil
}
