package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/codegrader/codegrader-api/internal/dto"
)

func newAssignmentService(repo *memoryAssignmentRepo, cache *redis.Client) AssignmentService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewAssignmentService(repo, validate, cache, time.Minute, testLogger())
}

func TestAssignmentServiceCreateAndGet(t *testing.T) {
	repo := newMemoryAssignmentRepo()
	svc := newAssignmentService(repo, nil)

	created, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:       "Factorial",
		Description: "Implement factorial",
		Criteria:    "must define factorial(n)",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "must define factorial(n)", fetched.Criteria)
}

func TestAssignmentServiceCreateValidation(t *testing.T) {
	repo := newMemoryAssignmentRepo()
	svc := newAssignmentService(repo, nil)

	_, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{Title: "x"})
	require.Error(t, err)
}

func TestAssignmentServicePartialUpdate(t *testing.T) {
	repo := newMemoryAssignmentRepo()
	svc := newAssignmentService(repo, nil)

	created, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:       "Original",
		Description: "original description",
		Criteria:    "original criteria",
	})
	require.NoError(t, err)

	newTitle := "Renamed"
	updated, err := svc.Update(context.Background(), created.ID, dto.AssignmentUpdateRequest{Title: &newTitle})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)
	require.Equal(t, "original description", updated.Description, "absent field must not be cleared")
	require.Equal(t, "original criteria", updated.Criteria, "absent field must not be cleared")

	newCriteria := "stricter criteria"
	updated, err = svc.Update(context.Background(), created.ID, dto.AssignmentUpdateRequest{Criteria: &newCriteria})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)
	require.Equal(t, "stricter criteria", updated.Criteria)
}

func TestAssignmentServiceUpdateMissing(t *testing.T) {
	repo := newMemoryAssignmentRepo()
	svc := newAssignmentService(repo, nil)

	title := "whatever"
	_, err := svc.Update(context.Background(), 99, dto.AssignmentUpdateRequest{Title: &title})
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestAssignmentServiceDelete(t *testing.T) {
	repo := newMemoryAssignmentRepo()
	svc := newAssignmentService(repo, nil)

	created, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:       "Doomed",
		Description: "to be removed",
		Criteria:    "n/a",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrAssignmentNotFound)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestAssignmentServiceGetUsesCache(t *testing.T) {
	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { cache.Close() })

	repo := newMemoryAssignmentRepo()
	svc := newAssignmentService(repo, cache)

	created, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:       "Cached Get",
		Description: "cache me",
		Criteria:    "n/a",
	})
	require.NoError(t, err)

	first, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Cached Get", first.Title)

	// Mutate the row behind the cache's back; reads must still serve the
	// cached entry.
	row, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	row.Title = "Changed Directly"
	require.NoError(t, repo.Update(context.Background(), &row))

	second, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Cached Get", second.Title, "get should be served from cache")

	// A write through the service invalidates the entry.
	newTitle := "Renamed"
	_, err = svc.Update(context.Background(), created.ID, dto.AssignmentUpdateRequest{Title: &newTitle})
	require.NoError(t, err)

	third, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", third.Title)

	// So does deletion; the stale entry must not shadow the 404.
	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestAssignmentServiceListUsesCache(t *testing.T) {
	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { cache.Close() })

	repo := newMemoryAssignmentRepo()
	svc := newAssignmentService(repo, cache)

	created, err := svc.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:       "Cached",
		Description: "cache me",
		Criteria:    "n/a",
	})
	require.NoError(t, err)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Remove the row behind the cache's back; the cached list must still serve it.
	require.NoError(t, repo.Delete(context.Background(), created.ID))

	second, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1, "list should be served from cache")

	// A write through the service invalidates the cached list.
	_, err = svc.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:       "Fresh",
		Description: "new entry",
		Criteria:    "n/a",
	})
	require.NoError(t, err)

	third, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, third, 1)
	require.Equal(t, "Fresh", third[0].Title)
}
