package tasks

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/taskhub/taskhub/internal/models"
	"github.com/taskhub/taskhub/internal/repo"
)

// fakeRepo is an in-memory Repository. The mutex makes ToggleStatus atomic,
// mirroring the conditional UPDATE the real repository runs.
type fakeRepo struct {
	mu     sync.Mutex
	byID   map[int]models.Task
	nextID int

	gets int // repository Get calls, to observe read-through behavior
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[int]models.Task), nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, title, description string) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := models.Task{ID: f.nextID, Title: title, Description: description, Status: models.StatusPending}
	f.byID[t.ID] = t
	f.nextID++
	return t, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	t, ok := f.byID[id]
	if !ok {
		return models.Task{}, repo.ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeRepo) List(ctx context.Context, limit int) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Task
	for id := 1; id < f.nextID && len(out) < limit; id++ {
		if t, ok := f.byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) ToggleStatus(ctx context.Context, id int) (models.TaskStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return "", repo.ErrTaskNotFound
	}
	t.Status = t.Status.Toggle()
	f.byID[id] = t
	return t.Status, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repo.ErrTaskNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeCache is an in-memory Cache recording puts and invalidations.
type fakeCache struct {
	mu          sync.Mutex
	byID        map[int]models.Task
	puts        int
	invalidates int
}

func newFakeCache() *fakeCache {
	return &fakeCache{byID: make(map[int]models.Task)}
}

func (f *fakeCache) Get(ctx context.Context, id int) (models.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	return t, ok
}

func (f *fakeCache) Put(ctx context.Context, task models.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[task.ID] = task
	f.puts++
}

func (f *fakeCache) Invalidate(ctx context.Context, id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	f.invalidates++
}

func TestService_Create_Boundaries(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("empty title: got %v, want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, strings.Repeat("x", 101), ""); !errors.Is(err, ErrValidation) {
		t.Errorf("101-char title: got %v, want ErrValidation", err)
	}

	task, err := svc.Create(ctx, "x", "")
	if err != nil {
		t.Fatalf("1-char title: %v", err)
	}
	if task.Status != models.StatusPending {
		t.Errorf("new task status = %q, want pending", task.Status)
	}
	if task.ID == 0 {
		t.Error("new task should carry a store-assigned id")
	}

	if _, err := svc.Create(ctx, strings.Repeat("y", 100), ""); err != nil {
		t.Errorf("100-char title: %v", err)
	}
}

func TestService_Create_Sanitizes(t *testing.T) {
	fr := newFakeRepo()
	svc := NewService(fr, newFakeCache())

	task, err := svc.Create(context.Background(), `<script>alert(1)</script>buy milk`, `<b>2</b> liters`)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Title != "buy milk" {
		t.Errorf("title = %q, want markup stripped", task.Title)
	}
	if task.Description != "2 liters" {
		t.Errorf("description = %q, want markup stripped", task.Description)
	}
}

func TestService_Create_WritesThroughCache(t *testing.T) {
	fc := newFakeCache()
	svc := NewService(newFakeRepo(), fc)

	task, err := svc.Create(context.Background(), "buy milk", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cached, ok := fc.Get(context.Background(), task.ID); !ok || cached.Title != "buy milk" {
		t.Error("created task should be in the cache")
	}
}

func TestService_Get_ReadThrough(t *testing.T) {
	fr := newFakeRepo()
	fc := newFakeCache()
	svc := NewService(fr, fc)
	ctx := context.Background()

	task, err := svc.Create(ctx, "buy milk", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := strconv.Itoa(task.ID)

	// Drop the cache entry: the next Get must fall back to the repository
	// and repopulate the cache.
	fc.Invalidate(ctx, task.ID)

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != task.ID {
		t.Errorf("got task %d, want %d", got.ID, task.ID)
	}
	if fr.gets != 1 {
		t.Errorf("repository gets = %d, want 1", fr.gets)
	}
	if _, ok := fc.Get(ctx, task.ID); !ok {
		t.Error("cache should be repopulated after a miss")
	}

	// Cached now: another Get must not touch the repository.
	if _, err := svc.Get(ctx, id); err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if fr.gets != 1 {
		t.Errorf("repository gets after cache hit = %d, want still 1", fr.gets)
	}
}

func TestService_Toggle_Lifecycle(t *testing.T) {
	fr := newFakeRepo()
	fc := newFakeCache()
	svc := NewService(fr, fc)
	ctx := context.Background()

	task, err := svc.Create(ctx, "buy milk", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := strconv.Itoa(task.ID)

	status, err := svc.ToggleStatus(ctx, id)
	if err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	if status != models.StatusCompleted {
		t.Errorf("first toggle = %q, want completed", status)
	}
	if _, ok := fc.Get(ctx, task.ID); ok {
		t.Error("toggle should invalidate the cache entry")
	}

	// Toggling twice returns to the original status.
	status, err = svc.ToggleStatus(ctx, id)
	if err != nil {
		t.Fatalf("second ToggleStatus: %v", err)
	}
	if status != models.StatusPending {
		t.Errorf("second toggle = %q, want pending", status)
	}

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.ToggleStatus(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("toggle after delete: got %v, want ErrNotFound", err)
	}
}

func TestService_InvalidID(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache())
	ctx := context.Background()

	for _, bad := range []string{"", "abc", "1.5", "-3", "0"} {
		if _, err := svc.ToggleStatus(ctx, bad); !errors.Is(err, ErrInvalidID) {
			t.Errorf("ToggleStatus(%q): got %v, want ErrInvalidID", bad, err)
		}
		if err := svc.Delete(ctx, bad); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Delete(%q): got %v, want ErrInvalidID", bad, err)
		}
		if _, err := svc.Get(ctx, bad); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Get(%q): got %v, want ErrInvalidID", bad, err)
		}
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache())

	if err := svc.Delete(context.Background(), "12345"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete missing: got %v, want ErrNotFound", err)
	}
}

func TestService_ConcurrentToggles(t *testing.T) {
	fr := newFakeRepo()
	svc := NewService(fr, newFakeCache())
	ctx := context.Background()

	task, err := svc.Create(ctx, "contended", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := strconv.Itoa(task.ID)

	const toggles = 50
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ToggleStatus(ctx, id); err != nil {
				t.Errorf("ToggleStatus: %v", err)
			}
		}()
	}
	wg.Wait()

	final, err := fr.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("Get final: %v", err)
	}
	if !final.Status.Valid() {
		t.Fatalf("final status %q is not a legal status", final.Status)
	}
	// An even number of atomic toggles lands back on pending; a lost update
	// would leave it on completed.
	if final.Status != models.StatusPending {
		t.Errorf("final status = %q after %d toggles, want pending", final.Status, toggles)
	}
}
