package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/codegrader/codegrader-api/internal/models"
	"github.com/codegrader/codegrader-api/internal/repository"
	"github.com/codegrader/codegrader-api/pkg/ai"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type memoryUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uint]models.User), nextID: 1}
}

func (m *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if user.MatricNumber != nil && existing.MatricNumber != nil && *existing.MatricNumber == *user.MatricNumber {
			return repository.ErrDuplicateMatric
		}
	}
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.users[m.nextID] = *user
	m.nextID++
	return nil
}

func (m *memoryUserRepo) GetByID(ctx context.Context, id uint) (models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memoryUserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

type memoryAssignmentRepo struct {
	assignments map[uint]models.Assignment
	nextID      uint
}

func newMemoryAssignmentRepo() *memoryAssignmentRepo {
	return &memoryAssignmentRepo{assignments: make(map[uint]models.Assignment), nextID: 1}
}

func (m *memoryAssignmentRepo) List(ctx context.Context) ([]models.Assignment, error) {
	results := make([]models.Assignment, 0, len(m.assignments))
	for id := uint(1); id < m.nextID; id++ {
		if assignment, ok := m.assignments[id]; ok {
			results = append(results, assignment)
		}
	}
	return results, nil
}

func (m *memoryAssignmentRepo) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	assignment, ok := m.assignments[id]
	if !ok {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (m *memoryAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	assignment.ID = m.nextID
	assignment.CreatedAt = time.Now()
	assignment.UpdatedAt = time.Now()
	m.assignments[m.nextID] = *assignment
	m.nextID++
	return nil
}

func (m *memoryAssignmentRepo) Update(ctx context.Context, assignment *models.Assignment) error {
	if _, ok := m.assignments[assignment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	assignment.UpdatedAt = time.Now()
	m.assignments[assignment.ID] = *assignment
	return nil
}

func (m *memoryAssignmentRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, id)
	return nil
}

type submissionKey struct {
	assignmentID uint
	userID       uint
}

type memorySubmissionRepo struct {
	submissions map[submissionKey]models.Submission
	nextID      uint
}

func newMemorySubmissionRepo() *memorySubmissionRepo {
	return &memorySubmissionRepo{submissions: make(map[submissionKey]models.Submission), nextID: 1}
}

func (m *memorySubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	key := submissionKey{submission.AssignmentID, submission.UserID}
	if _, ok := m.submissions[key]; ok {
		return repository.ErrDuplicateSubmission
	}
	submission.ID = m.nextID
	m.submissions[key] = *submission
	m.nextID++
	return nil
}

func (m *memorySubmissionRepo) List(ctx context.Context) ([]models.Submission, error) {
	results := make([]models.Submission, 0, len(m.submissions))
	for _, submission := range m.submissions {
		results = append(results, submission)
	}
	return results, nil
}

func (m *memorySubmissionRepo) ListByUser(ctx context.Context, userID uint) ([]models.Submission, error) {
	results := make([]models.Submission, 0)
	for _, submission := range m.submissions {
		if submission.UserID == userID {
			results = append(results, submission)
		}
	}
	return results, nil
}

func (m *memorySubmissionRepo) GetByAssignmentAndUser(ctx context.Context, assignmentID, userID uint) (models.Submission, error) {
	submission, ok := m.submissions[submissionKey{assignmentID, userID}]
	if !ok {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return submission, nil
}

type stubScorer struct {
	result ai.ScoreResult
	err    error
	calls  int
	input  ai.ScoreInput
}

func (s *stubScorer) Score(ctx context.Context, input ai.ScoreInput) (ai.ScoreResult, error) {
	s.calls++
	s.input = input
	if s.err != nil {
		return ai.ScoreResult{}, s.err
	}
	return s.result, nil
}
