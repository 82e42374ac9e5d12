package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codegrader/codegrader-api/internal/models"
)

// ErrDuplicateSubmission indicates the user already submitted for the assignment.
var ErrDuplicateSubmission = errors.New("submission already exists")

// SubmissionRepository defines data operations for scored submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	List(ctx context.Context) ([]models.Submission, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Submission, error)
	GetByAssignmentAndUser(ctx context.Context, assignmentID, userID uint) (models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

// Create inserts the submission, relying on the composite unique index to
// reject duplicates atomically. Two racing submissions from the same user
// resolve to exactly one stored row; the loser sees ErrDuplicateSubmission.
func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "assignment_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(submission)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrDuplicateSubmission
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDuplicateSubmission
	}
	return nil
}

func (r *submissionRepository) List(ctx context.Context) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) ListByUser(ctx context.Context, userID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) GetByAssignmentAndUser(ctx context.Context, assignmentID, userID uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("assignment_id = ?", assignmentID).
		Where("user_id = ?", userID).
		First(&submission).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}
