package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/tideline/internal/capacity"
)

func (s *Store) CreateTask(day, title string, complexity capacity.Complexity, kind capacity.Kind) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: empty title", ErrInvalidTask)
	}
	if _, err := capacity.ParseComplexity(string(complexity)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}
	if _, err := capacity.ParseKind(string(kind)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, fmt.Errorf("%w: day %q", ErrInvalidTask, day)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO tasks (day, title, complexity, kind, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		day, title, complexity, kind, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

const taskColumns = `id, day, title, complexity, kind, completed, created_at, updated_at`

func scanTask(row scanner) (Task, error) {
	var t Task
	var complexity, kind, createdAt, updatedAt string
	var completed int
	if err := row.Scan(&t.ID, &t.Day, &t.Title, &complexity, &kind, &completed, &createdAt, &updatedAt); err != nil {
		return t, err
	}
	t.Complexity = capacity.Complexity(complexity)
	t.Kind = capacity.Kind(kind)
	t.Completed = completed == 1
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return t, nil
}

func (s *Store) GetTask(id int64) (*Task, error) {
	t, err := scanTask(s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return &t, nil
}

// ListTasks returns a day's tasks, open ones first, then in creation order.
func (s *Store) ListTasks(day string) ([]Task, error) {
	rows, err := s.db.Query(`SELECT `+taskColumns+` FROM tasks WHERE day = ? ORDER BY completed, id`, day)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) SetTaskCompleted(id int64, completed bool) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE tasks SET completed = ?, updated_at = ? WHERE id = ?`, boolInt(completed), now, id,
	)
	if err != nil {
		return fmt.Errorf("complete task %d: %w", id, err)
	}
	return expectOne(res, "task", id)
}

func (s *Store) DeleteTask(id int64) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return expectOne(res, "task", id)
}
