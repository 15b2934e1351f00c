// Package seed populates an empty store with a realistic data set: jobs
// with dense display orders, a large candidate pool spread across stages,
// and assessment trees for the first few jobs.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/talentflow/talentflow/internal/adapters/repository"
	"github.com/talentflow/talentflow/internal/domain/model"
	"github.com/talentflow/talentflow/pkg/logger"
)

// Params controls the size of the generated data set.
type Params struct {
	Jobs        int
	Candidates  int
	Assessments int
	// Seed drives the generator rng so repeated runs against a wiped
	// store produce the same shape. Zero falls back to a time seed.
	Seed int64
}

var jobTitles = []string{
	"Senior Frontend Developer", "Backend Engineer", "Full Stack Developer",
	"DevOps Engineer", "Product Manager", "UX Designer", "Data Scientist",
	"Engineering Manager", "QA Engineer", "Mobile Developer",
	"Site Reliability Engineer", "Security Engineer", "Machine Learning Engineer",
	"Technical Writer", "Solutions Architect", "Platform Engineer",
	"Data Engineer", "Engineering Intern", "Staff Engineer",
	"Developer Advocate", "Cloud Architect", "Systems Analyst",
	"Database Administrator", "Scrum Master", "CTO",
}

var jobTags = []string{
	"remote", "full-time", "part-time", "contract", "senior", "junior",
	"urgent", "hybrid", "onsite",
}

var departments = []string{"Engineering", "Product", "Design", "Data", "Infrastructure"}

var locations = []string{"Remote", "New York", "San Francisco", "London", "Berlin", "Toronto"}

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael",
	"Linda", "William", "Elizabeth", "David", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen", "Aisha",
	"Omar", "Priya", "Wei", "Sofia", "Mateo", "Yuki", "Amara",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Patel", "Kim", "Nguyen", "Chen", "Okafor", "Tanaka",
}

// Ensure fills the store when it is empty. A store that already holds
// jobs is left untouched, so restarts keep user edits.
func Ensure(ctx context.Context, store repository.Store, p Params) error {
	count, err := store.CountJobs(ctx)
	if err != nil {
		return fmt.Errorf("seed: count jobs: %w", err)
	}
	if count > 0 {
		logger.Get().Debug(ctx, "store already populated, skipping seed",
			logger.Int("jobs", count))
		return nil
	}

	src := p.Seed
	if src == 0 {
		src = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(src))
	now := time.Now().UTC()

	jobs := generateJobs(rng, p.Jobs, now)
	for _, j := range jobs {
		if err := store.CreateJob(ctx, j); err != nil {
			return fmt.Errorf("seed: create job: %w", err)
		}
	}

	candidates, entries := generateCandidates(rng, jobs, p.Candidates, now)
	if err := store.CreateCandidates(ctx, candidates); err != nil {
		return fmt.Errorf("seed: create candidates: %w", err)
	}
	for _, e := range entries {
		if err := store.AppendTimeline(ctx, e); err != nil {
			return fmt.Errorf("seed: append timeline: %w", err)
		}
	}

	for i, a := range generateAssessments(jobs, p.Assessments, now) {
		if err := store.PutAssessment(ctx, a); err != nil {
			return fmt.Errorf("seed: put assessment %d: %w", i, err)
		}
	}

	logger.Get().Info(ctx, "seeded store",
		logger.Int("jobs", len(jobs)),
		logger.Int("candidates", len(candidates)),
		logger.Int("assessments", min(p.Assessments, len(jobs))))
	return nil
}

func generateJobs(rng *rand.Rand, n int, now time.Time) []model.Job {
	if n > len(jobTitles) {
		n = len(jobTitles)
	}
	jobs := make([]model.Job, 0, n)
	for i := 0; i < n; i++ {
		title := jobTitles[i]
		status := model.JobActive
		if rng.Float64() < 0.3 {
			status = model.JobArchived
		}
		tags := pickTags(rng)
		created := now.Add(-time.Duration(rng.Intn(90*24)) * time.Hour)
		jobs = append(jobs, model.Job{
			ID:          uuid.NewString(),
			Title:       title,
			Slug:        model.Slugify(title),
			Status:      status,
			Tags:        tags,
			Order:       i,
			Description: fmt.Sprintf("We are looking for a %s to join our team.", title),
			Location:    locations[rng.Intn(len(locations))],
			Department:  departments[rng.Intn(len(departments))],
			CreatedAt:   created,
			UpdatedAt:   created,
		})
	}
	return jobs
}

func pickTags(rng *rand.Rand) []string {
	count := 1 + rng.Intn(3)
	seen := make(map[string]bool, count)
	tags := make([]string, 0, count)
	for len(tags) < count {
		t := jobTags[rng.Intn(len(jobTags))]
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	return tags
}

func generateCandidates(rng *rand.Rand, jobs []model.Job, n int, now time.Time) ([]model.Candidate, []model.TimelineEntry) {
	stages := model.Stages()
	candidates := make([]model.Candidate, 0, n)
	entries := make([]model.TimelineEntry, 0, n)
	for i := 0; i < n; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		name := first + " " + last
		stage := stages[rng.Intn(len(stages))]
		applied := now.Add(-time.Duration(rng.Intn(60*24)) * time.Hour)
		c := model.Candidate{
			ID:        uuid.NewString(),
			Name:      name,
			Email:     fmt.Sprintf("%s.%s%d@example.com", lower(first), lower(last), i),
			Stage:     stage,
			JobID:     jobs[rng.Intn(len(jobs))].ID,
			AppliedAt: applied,
			UpdatedAt: applied,
		}
		candidates = append(candidates, c)
		entries = append(entries, model.TimelineEntry{
			ID:          uuid.NewString(),
			CandidateID: c.ID,
			FromStage:   nil,
			ToStage:     stage,
			ChangedAt:   applied,
		})
	}
	return candidates, entries
}

func lower(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// generateAssessments builds one form tree per job for the first n jobs.
// Each tree has three sections and a dozen questions covering every
// question type, including a conditional follow-up.
func generateAssessments(jobs []model.Job, n int, now time.Time) []model.Assessment {
	if n > len(jobs) {
		n = len(jobs)
	}
	out := make([]model.Assessment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, buildAssessment(jobs[i], now))
	}
	return out
}

func buildAssessment(job model.Job, now time.Time) model.Assessment {
	aID := uuid.NewString()
	sections := []model.Section{
		{ID: uuid.NewString(), AssessmentID: aID, Title: "Background", Description: "Tell us about your experience.", Order: 0},
		{ID: uuid.NewString(), AssessmentID: aID, Title: "Technical Skills", Order: 1},
		{ID: uuid.NewString(), AssessmentID: aID, Title: "Logistics", Order: 2},
	}

	yesNo := []model.QuestionOption{
		{ID: uuid.NewString(), Label: "Yes", Value: "yes"},
		{ID: uuid.NewString(), Label: "No", Value: "no"},
	}
	required := &model.ValidationRule{Required: true}
	minZero, maxFifty := 0, 50

	questions := []model.Question{
		{
			ID: uuid.NewString(), SectionID: sections[0].ID, Type: model.QuestionSingleChoice,
			Label: "Do you have prior experience in this role?", Options: yesNo,
			Validation: required, Order: 0,
		},
		{
			ID: uuid.NewString(), SectionID: sections[0].ID, Type: model.QuestionShortText,
			Label: "What attracted you to this position?", Order: 1,
			Validation: &model.ValidationRule{Required: true, MaxLength: 200},
		},
		{
			ID: uuid.NewString(), SectionID: sections[0].ID, Type: model.QuestionLongText,
			Label: "Describe a project you are proud of.", Order: 2,
			Validation: &model.ValidationRule{MaxLength: 2000},
		},
		{
			// Follow-up shown only when the opening question was answered
			// "no". The rule references the section id, matching the data
			// the evaluation layer is built to tolerate.
			ID: uuid.NewString(), SectionID: sections[0].ID, Type: model.QuestionLongText,
			Label: "What transferable skills would you bring?", Order: 3,
			Conditional: &model.ConditionalRule{
				QuestionID: sections[0].ID,
				Operator:   model.OpEquals,
				Value:      []string{"no"},
			},
		},
		{
			ID: uuid.NewString(), SectionID: sections[1].ID, Type: model.QuestionMultiChoice,
			Label: "Which technologies have you worked with?", Order: 0,
			Options: []model.QuestionOption{
				{ID: uuid.NewString(), Label: "Go", Value: "go"},
				{ID: uuid.NewString(), Label: "TypeScript", Value: "typescript"},
				{ID: uuid.NewString(), Label: "Python", Value: "python"},
				{ID: uuid.NewString(), Label: "Rust", Value: "rust"},
			},
			Validation: required,
		},
		{
			ID: uuid.NewString(), SectionID: sections[1].ID, Type: model.QuestionNumeric,
			Label: "Years of professional experience", Order: 1,
			Validation: &model.ValidationRule{Required: true, Min: &minZero, Max: &maxFifty},
		},
		{
			ID: uuid.NewString(), SectionID: sections[1].ID, Type: model.QuestionShortText,
			Label: "Link to a code sample or portfolio", Order: 2,
		},
		{
			ID: uuid.NewString(), SectionID: sections[1].ID, Type: model.QuestionFileUpload,
			Label: "Upload your resume", Order: 3, Validation: required,
		},
		{
			ID: uuid.NewString(), SectionID: sections[2].ID, Type: model.QuestionSingleChoice,
			Label: "Are you authorized to work in this location?", Options: yesNo,
			Validation: required, Order: 0,
		},
		{
			ID: uuid.NewString(), SectionID: sections[2].ID, Type: model.QuestionShortText,
			Label: "Expected salary range", Order: 1,
		},
		{
			ID: uuid.NewString(), SectionID: sections[2].ID, Type: model.QuestionShortText,
			Label: "Earliest start date", Order: 2,
		},
	}

	return model.Assessment{
		ID:          aID,
		JobID:       job.ID,
		Title:       job.Title + " Assessment",
		Description: "Screening questions for the " + job.Title + " opening.",
		Sections:    sections,
		Questions:   questions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
