package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taskhub/taskhub/internal/models"
)

// ==========================
// TaskRepo
// ==========================
type TaskRepo struct {
	DB *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{DB: db}
}

// ==========================
// Create Task
// ==========================

// Create inserts a new pending task. The id is assigned by the store; any id
// the client supplied never reaches this point.
func (r *TaskRepo) Create(ctx context.Context, title, description string) (models.Task, error) {
	var task models.Task
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO tasks (title, description, status)
		 VALUES ($1, $2, 'pending')
		 RETURNING id, title, description, status, created_at`,
		title, description,
	).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.CreatedAt,
	)
	return task, err
}

// ==========================
// Get Task By ID
// ==========================

func (r *TaskRepo) Get(ctx context.Context, id int) (models.Task, error) {
	var task models.Task
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, title, description, status, created_at
		 FROM tasks
		 WHERE id = $1`,
		id,
	).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	return task, err
}

// ==========================
// List Tasks
// ==========================

func (r *TaskRepo) List(ctx context.Context, limit int) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, description, status, created_at
		 FROM tasks ORDER BY id LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ==========================
// Toggle Status
// ==========================

// ToggleStatus flips pending <-> completed in a single conditional UPDATE, so
// two concurrent toggles on the same id serialize in the store and neither
// overwrites the other with a stale read.
func (r *TaskRepo) ToggleStatus(ctx context.Context, id int) (models.TaskStatus, error) {
	var status models.TaskStatus
	err := r.DB.QueryRowContext(ctx,
		`UPDATE tasks
		 SET status = CASE WHEN status = 'pending' THEN 'completed' ELSE 'pending' END
		 WHERE id = $1
		 RETURNING status`,
		id,
	).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrTaskNotFound
	}
	return status, err
}

// ==========================
// Delete Task
// ==========================

func (r *TaskRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTaskNotFound
	}

	return nil
}
