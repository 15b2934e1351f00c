package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/talentflow/talentflow/internal/domain/model"
	"github.com/talentflow/talentflow/pkg/metrics"
)

// GormStore implements Store over a sqlite database file.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// Open opens (creating if needed) the sqlite database at path and migrates
// the five collections. ":memory:" yields a throwaway in-process store.
func Open(ctx context.Context, path string, opts ...Option) (*GormStore, error) {
	cfg := newOpenConfig(opts...)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(cfg.gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	// A single connection keeps ":memory:" databases alive across calls
	// and sidesteps SQLITE_BUSY on concurrent writes.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.WithContext(ctx).AutoMigrate(
		&jobRow{},
		&candidateRow{},
		&timelineRow{},
		&noteRow{},
		&assessmentRow{},
		&responseRow{},
	); err != nil {
		return nil, fmt.Errorf("migrate store schema: %w", err)
	}

	return &GormStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("resolve sql handle: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close sqlite store: %w", err)
	}
	return nil
}

// observeRead records read latency for the metrics dashboard.
func observeRead(start time.Time) {
	metrics.RecordStoreReadLatency(float64(time.Since(start).Milliseconds()))
}

func observeWrite(start time.Time) {
	metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
}

// translate maps GORM errors to this package's sentinels.
func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// --- Jobs ---

func (s *GormStore) ListJobs(ctx context.Context) ([]model.Job, error) {
	defer observeRead(time.Now())

	var rows []jobRow
	if err := s.db.WithContext(ctx).Order("sort_order asc").Find(&rows).Error; err != nil {
		return nil, translate("list jobs", err)
	}
	jobs := make([]model.Job, 0, len(rows))
	for _, r := range rows {
		j, err := rowToJob(r)
		if err != nil {
			return nil, fmt.Errorf("list jobs: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (s *GormStore) GetJob(ctx context.Context, id string) (model.Job, error) {
	defer observeRead(time.Now())

	var row jobRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return model.Job{}, translate("get job", err)
	}
	return rowToJob(row)
}

func (s *GormStore) GetJobBySlug(ctx context.Context, slug string) (model.Job, error) {
	defer observeRead(time.Now())

	var row jobRow
	if err := s.db.WithContext(ctx).First(&row, "slug = ?", slug).Error; err != nil {
		return model.Job{}, translate("get job by slug", err)
	}
	return rowToJob(row)
}

func (s *GormStore) CreateJob(ctx context.Context, job model.Job) error {
	defer observeWrite(time.Now())

	row, err := jobToRow(job)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create job: %w", ErrConflict)
		}
		return translate("create job", err)
	}
	return nil
}

func (s *GormStore) UpdateJob(ctx context.Context, job model.Job) error {
	defer observeWrite(time.Now())

	row, err := jobToRow(job)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	res := s.db.WithContext(ctx).Model(&jobRow{}).Where("id = ?", job.ID).
		Select("*").Omit("id", "created_at").Updates(row)
	if res.Error != nil {
		return translate("update job", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update job: %w", ErrNotFound)
	}
	return nil
}

func (s *GormStore) PutJobs(ctx context.Context, jobs []model.Job) error {
	defer observeWrite(time.Now())

	rows := make([]jobRow, 0, len(jobs))
	for _, j := range jobs {
		row, err := jobToRow(j)
		if err != nil {
			return fmt.Errorf("put jobs: %w", err)
		}
		rows = append(rows, row)
	}

	// Single transaction: the reorder write is all-or-nothing.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Save(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translate("put jobs", err)
	}
	return nil
}

func (s *GormStore) CountJobs(ctx context.Context) (int, error) {
	defer observeRead(time.Now())

	var count int64
	if err := s.db.WithContext(ctx).Model(&jobRow{}).Count(&count).Error; err != nil {
		return 0, translate("count jobs", err)
	}
	return int(count), nil
}

// --- Candidates ---

func (s *GormStore) ListCandidates(ctx context.Context) ([]model.Candidate, error) {
	defer observeRead(time.Now())

	var rows []candidateRow
	if err := s.db.WithContext(ctx).Order("applied_at asc").Find(&rows).Error; err != nil {
		return nil, translate("list candidates", err)
	}
	out := make([]model.Candidate, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowToCandidate(r))
	}
	return out, nil
}

func (s *GormStore) GetCandidate(ctx context.Context, id string) (model.Candidate, error) {
	defer observeRead(time.Now())

	var row candidateRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return model.Candidate{}, translate("get candidate", err)
	}
	return rowToCandidate(row), nil
}

func (s *GormStore) CreateCandidate(ctx context.Context, c model.Candidate) error {
	defer observeWrite(time.Now())

	row := candidateToRow(c)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate("create candidate", err)
	}
	return nil
}

func (s *GormStore) CreateCandidates(ctx context.Context, cs []model.Candidate) error {
	defer observeWrite(time.Now())

	rows := make([]candidateRow, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, candidateToRow(c))
	}
	// Batched insert keeps seeding a thousand candidates fast.
	if err := s.db.WithContext(ctx).CreateInBatches(rows, 200).Error; err != nil {
		return translate("create candidates", err)
	}
	return nil
}

func (s *GormStore) UpdateCandidate(ctx context.Context, c model.Candidate) error {
	defer observeWrite(time.Now())

	row := candidateToRow(c)
	res := s.db.WithContext(ctx).Model(&candidateRow{}).Where("id = ?", c.ID).
		Select("*").Omit("id", "applied_at").Updates(row)
	if res.Error != nil {
		return translate("update candidate", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update candidate: %w", ErrNotFound)
	}
	return nil
}

// --- Timeline ---

func (s *GormStore) TimelineFor(ctx context.Context, candidateID string) ([]model.TimelineEntry, error) {
	defer observeRead(time.Now())

	var rows []timelineRow
	err := s.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("changed_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, translate("timeline", err)
	}
	out := make([]model.TimelineEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowToTimeline(r))
	}
	return out, nil
}

func (s *GormStore) AppendTimeline(ctx context.Context, entry model.TimelineEntry) error {
	defer observeWrite(time.Now())

	row := timelineToRow(entry)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate("append timeline", err)
	}
	return nil
}

// --- Notes ---

func (s *GormStore) NotesFor(ctx context.Context, candidateID string) ([]model.Note, error) {
	defer observeRead(time.Now())

	var rows []noteRow
	err := s.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, translate("notes", err)
	}
	out := make([]model.Note, 0, len(rows))
	for _, r := range rows {
		n, err := rowToNote(r)
		if err != nil {
			return nil, fmt.Errorf("notes: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *GormStore) AppendNote(ctx context.Context, note model.Note) error {
	defer observeWrite(time.Now())

	row, err := noteToRow(note)
	if err != nil {
		return fmt.Errorf("append note: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate("append note", err)
	}
	return nil
}

// --- Assessments ---

func (s *GormStore) AssessmentForJob(ctx context.Context, jobID string) (model.Assessment, error) {
	defer observeRead(time.Now())

	var row assessmentRow
	if err := s.db.WithContext(ctx).First(&row, "job_id = ?", jobID).Error; err != nil {
		return model.Assessment{}, translate("assessment for job", err)
	}
	return rowToAssessment(row)
}

func (s *GormStore) PutAssessment(ctx context.Context, a model.Assessment) error {
	defer observeWrite(time.Now())

	row, err := assessmentToRow(a)
	if err != nil {
		return fmt.Errorf("put assessment: %w", err)
	}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return translate("put assessment", err)
	}
	return nil
}

func (s *GormStore) PutResponse(ctx context.Context, r model.AssessmentResponse) error {
	defer observeWrite(time.Now())

	row, err := responseToRow(r)
	if err != nil {
		return fmt.Errorf("put response: %w", err)
	}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return translate("put response", err)
	}
	return nil
}

func (s *GormStore) ResponseFor(ctx context.Context, assessmentID, candidateID string) (model.AssessmentResponse, error) {
	defer observeRead(time.Now())

	var row responseRow
	err := s.db.WithContext(ctx).
		First(&row, "assessment_id = ? AND candidate_id = ?", assessmentID, candidateID).Error
	if err != nil {
		return model.AssessmentResponse{}, translate("response for", err)
	}
	return rowToResponse(row)
}
