// Package tasks implements task CRUD and the pending/completed state machine
// over a repository of record and an advisory cache.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/taskhub/taskhub/internal/models"
	"github.com/taskhub/taskhub/internal/repo"
	"github.com/taskhub/taskhub/internal/sanitize"
)

const (
	// MaxListSize bounds List to a finite snapshot; no pagination cursor.
	MaxListSize = 100

	// TitleMaxLen is the upper bound on task titles, in runes.
	TitleMaxLen = 100

	// storeTimeout bounds each repository call.
	storeTimeout = 5 * time.Second
)

var (
	// ErrValidation is returned when the task input shape is bad, e.g. an
	// empty or over-long title.
	ErrValidation = errors.New("invalid task input")

	// ErrInvalidID is returned when the id is not a well-formed task identifier.
	ErrInvalidID = errors.New("invalid task id")

	// ErrNotFound is returned when no task has the given id.
	ErrNotFound = errors.New("task not found")
)

// Repository is the persistence surface the service needs. *repo.TaskRepo
// satisfies it; tests use in-memory fakes.
type Repository interface {
	Create(ctx context.Context, title, description string) (models.Task, error)
	Get(ctx context.Context, id int) (models.Task, error)
	List(ctx context.Context, limit int) ([]models.Task, error)
	ToggleStatus(ctx context.Context, id int) (models.TaskStatus, error)
	Delete(ctx context.Context, id int) error
}

// Cache is the advisory accelerator in front of the repository. Implementations
// must never surface failures: a broken cache only costs latency.
type Cache interface {
	Get(ctx context.Context, id int) (models.Task, bool)
	Put(ctx context.Context, task models.Task)
	Invalidate(ctx context.Context, id int)
}

type Service struct {
	repo  Repository
	cache Cache
}

func NewService(r Repository, c Cache) *Service {
	return &Service{repo: r, cache: c}
}

// List returns up to MaxListSize tasks as a finite snapshot.
func (s *Service) List(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	tasks, err := s.repo.List(ctx, MaxListSize)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Create sanitizes and validates the input, persists a new pending task, and
// write-through populates the cache. The returned task carries the
// store-assigned id.
func (s *Service) Create(ctx context.Context, title, description string) (models.Task, error) {
	title = sanitize.Clean(title)
	description = sanitize.Clean(description)

	if n := utf8.RuneCountInString(title); n == 0 || n > TitleMaxLen {
		return models.Task{}, ErrValidation
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	task, err := s.repo.Create(ctx, title, description)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.cache.Put(ctx, task)
	return task, nil
}

// Get looks the task up in the cache first and falls back to the repository,
// repopulating the cache on a miss.
func (s *Service) Get(ctx context.Context, id string) (models.Task, error) {
	taskID, err := parseID(id)
	if err != nil {
		return models.Task{}, err
	}

	if task, ok := s.cache.Get(ctx, taskID); ok {
		return task, nil
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	task, err := s.repo.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, repo.ErrTaskNotFound) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}

	s.cache.Put(ctx, task)
	return task, nil
}

// ToggleStatus flips pending <-> completed and returns the new status. The
// flip is atomic in the store, so concurrent toggles on one id never lose an
// update. The cached entry is invalidated so readers never see a stale status.
func (s *Service) ToggleStatus(ctx context.Context, id string) (models.TaskStatus, error) {
	taskID, err := parseID(id)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	status, err := s.repo.ToggleStatus(ctx, taskID)
	if err != nil {
		if errors.Is(err, repo.ErrTaskNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("toggle task: %w", err)
	}

	s.cache.Invalidate(ctx, taskID)
	return status, nil
}

// Delete removes the task and drops its cache entry.
func (s *Service) Delete(ctx context.Context, id string) error {
	taskID, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repo.ErrTaskNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}

	s.cache.Invalidate(ctx, taskID)
	return nil
}

func parseID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return 0, ErrInvalidID
	}
	return n, nil
}
