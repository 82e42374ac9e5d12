package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/codegrader/codegrader-api/internal/dto"
	"github.com/codegrader/codegrader-api/internal/models"
	"github.com/codegrader/codegrader-api/internal/repository"
	"github.com/codegrader/codegrader-api/pkg/ai"
)

var (
	// ErrSubmissionExists indicates the user already submitted for this assignment.
	ErrSubmissionExists = errors.New("submission already exists for this assignment")
	// ErrInvalidFileEncoding indicates the uploaded file is not valid UTF-8 text.
	ErrInvalidFileEncoding = errors.New("Invalid file format. Please upload a valid text file.")
)

// ScoringError wraps a failure from the AI scorer so handlers can surface the
// underlying message to the caller.
type ScoringError struct {
	Err error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("Error scoring submission: %v", e.Err)
}

func (e *ScoringError) Unwrap() error {
	return e.Err
}

// SubmissionService exposes the scoring workflow and submission queries.
type SubmissionService interface {
	Submit(ctx context.Context, assignmentID, userID uint, fileBytes []byte) (dto.SubmissionResponse, error)
	ListAll(ctx context.Context) ([]dto.SubmissionResponse, error)
	ListByUser(ctx context.Context, userID uint) ([]dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
	scorer      ai.Scorer
	scoreLimit  time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService builds the scoring workflow service. scoreLimit bounds
// the outbound AI call; zero disables the limit.
func NewSubmissionService(submissions repository.SubmissionRepository, assignments repository.AssignmentRepository, users repository.UserRepository, scorer ai.Scorer, scoreLimit time.Duration, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: submissions,
		assignments: assignments,
		users:       users,
		scorer:      scorer,
		scoreLimit:  scoreLimit,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

// Submit validates, scores, and persists one submission for the given user.
// The duplicate rule is enforced by the store's conflict-aware insert, so a
// failed persist leaves no row behind and the user may submit again.
func (s *submissionService) Submit(ctx context.Context, assignmentID, userID uint, fileBytes []byte) (dto.SubmissionResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	// Fast-path duplicate check so a repeat submitter never burns an AI call.
	// The conflict-aware insert below remains the authoritative guard.
	if _, err := s.submissions.GetByAssignmentAndUser(ctx, assignmentID, userID); err == nil {
		return dto.SubmissionResponse{}, ErrSubmissionExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubmissionResponse{}, err
	}

	if !utf8.Valid(fileBytes) {
		return dto.SubmissionResponse{}, ErrInvalidFileEncoding
	}
	code := string(fileBytes)

	scoreCtx := ctx
	if s.scoreLimit > 0 {
		var cancel context.CancelFunc
		scoreCtx, cancel = context.WithTimeout(ctx, s.scoreLimit)
		defer cancel()
	}

	result, err := s.scorer.Score(scoreCtx, ai.ScoreInput{Code: code, Criteria: assignment.Criteria})
	if err != nil {
		s.logger.Error().Err(err).Uint("assignment_id", assignmentID).Uint("user_id", userID).Msg("scoring failed")
		return dto.SubmissionResponse{}, &ScoringError{Err: err}
	}

	submission := models.Submission{
		AssignmentID:     assignmentID,
		UserID:           userID,
		Score:            result.Score,
		Feedback:         result.Feedback,
		Strengths:        datatypes.NewJSONSlice(result.Strengths),
		Weakpoints:       datatypes.NewJSONSlice(result.Weakpoints),
		CheatingDetected: result.CheatingDetected,
		CheatingReason:   result.CheatingReason,
		Reasoning:        result.Reasoning,
		CreatedAt:        s.now(),
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		if errors.Is(err, repository.ErrDuplicateSubmission) {
			return dto.SubmissionResponse{}, ErrSubmissionExists
		}
		return dto.SubmissionResponse{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	submission.User = user

	s.logger.Info().
		Uint("assignment_id", assignmentID).
		Uint("user_id", userID).
		Int("score", result.Score).
		Bool("cheating_detected", result.CheatingDetected).
		Msg("submission scored")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) ListAll(ctx context.Context) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissions.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) ListByUser(ctx context.Context, userID uint) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}
