package backend

import (
	"context"
	"fmt"

	"github.com/talentflow/talentflow/internal/domain/model"
	"github.com/talentflow/talentflow/pkg/logger"
)

// AssessmentForJob fetches the assessment tree for a job. Returns
// ErrNotFound when no assessment has been built yet; the caller decides
// whether to synthesize a fresh one.
func (b *Backend) AssessmentForJob(ctx context.Context, jobID string) (model.Assessment, error) {
	if err := b.delay(ctx); err != nil {
		return model.Assessment{}, err
	}

	a, err := b.store.AssessmentForJob(ctx, jobID)
	if err != nil {
		return model.Assessment{}, b.translateStore(endpointGetAssessment, err)
	}
	return a, nil
}

// SaveAssessment replaces the whole tree for a job. The tree was edited
// entirely client-side; this is the explicit save that persists it.
func (b *Backend) SaveAssessment(ctx context.Context, jobID string, a model.Assessment) (model.Assessment, error) {
	if err := b.delay(ctx); err != nil {
		return model.Assessment{}, err
	}
	if b.faults.shouldFail(endpointSaveAssessment) {
		return model.Assessment{}, fail(endpointSaveAssessment)
	}

	a.JobID = jobID
	if a.ID == "" {
		a.ID = b.newID()
	}
	now := b.now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	if err := b.store.PutAssessment(ctx, a); err != nil {
		return model.Assessment{}, fmt.Errorf("%s: %w", endpointSaveAssessment, err)
	}

	b.debugf(ctx, "assessment saved",
		logger.String("job", jobID),
		logger.Int("sections", len(a.Sections)),
		logger.Int("questions", len(a.Questions)),
	)
	return a, nil
}

// SubmitResponse records a candidate's answers for the job's assessment.
func (b *Backend) SubmitResponse(ctx context.Context, jobID, candidateID string, answers map[string]any) (model.AssessmentResponse, error) {
	if err := b.delay(ctx); err != nil {
		return model.AssessmentResponse{}, err
	}
	if b.faults.shouldFail(endpointSubmitResponse) {
		return model.AssessmentResponse{}, fail(endpointSubmitResponse)
	}

	a, err := b.store.AssessmentForJob(ctx, jobID)
	if err != nil {
		return model.AssessmentResponse{}, b.translateStore(endpointSubmitResponse, err)
	}

	resp := model.AssessmentResponse{
		ID:           b.newID(),
		AssessmentID: a.ID,
		CandidateID:  candidateID,
		Answers:      answers,
		SubmittedAt:  b.now(),
	}
	if err := b.store.PutResponse(ctx, resp); err != nil {
		return model.AssessmentResponse{}, fmt.Errorf("%s: %w", endpointSubmitResponse, err)
	}
	return resp, nil
}

// ResponseFor looks up a candidate's previously submitted response.
func (b *Backend) ResponseFor(ctx context.Context, assessmentID, candidateID string) (model.AssessmentResponse, error) {
	if err := b.delay(ctx); err != nil {
		return model.AssessmentResponse{}, err
	}

	resp, err := b.store.ResponseFor(ctx, assessmentID, candidateID)
	if err != nil {
		return model.AssessmentResponse{}, b.translateStore(endpointSubmitResponse, err)
	}
	return resp, nil
}
