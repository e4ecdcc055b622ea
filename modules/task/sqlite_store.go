package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/abhinxvz/task-mng/domain/task"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// taskRecord is the row layout of the tasks table.
type taskRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false"`
	Title       string    `gorm:"size:500;not null"`
	Description string    `gorm:"size:2000;not null"`
	DueDate     string    `gorm:"size:10;not null"`
	Completed   bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for taskRecord.
func (taskRecord) TableName() string {
	return "tasks"
}

// sequence is a named monotonic counter. Ids are drawn from it rather than
// from the tasks table so deleted ids are never handed out again.
type sequence struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int64  `gorm:"not null"`
}

// TableName returns the table name for sequence.
func (sequence) TableName() string {
	return "sequences"
}

const taskSequence = "tasks"

// SQLiteStore persists tasks with GORM on SQLite.
type SQLiteStore struct {
	db   *gorm.DB
	opts storeOptions
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens the database file at path. Writes are serialized over a
// single connection.
func OpenSQLite(path string, debug bool) (*gorm.DB, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// NewSQLiteStore runs migrations and returns a store backed by db.
func NewSQLiteStore(db *gorm.DB, opts ...Option) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&taskRecord{}, &sequence{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &SQLiteStore{db: db, opts: applyOptions(opts)}, nil
}

// List returns all tasks ordered by id, which is creation order.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Task, error) {
	var records []taskRecord
	if err := s.db.WithContext(ctx).Order("id asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	result := make([]domain.Task, 0, len(records))
	for _, rec := range records {
		t, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, nil
}

// Create validates the draft and inserts it under the next sequence value.
func (s *SQLiteStore) Create(ctx context.Context, draft domain.Draft) (domain.Task, error) {
	if err := draft.Validate(); err != nil {
		return domain.Task{}, err
	}

	t := draft.Build(s.opts.now())
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, taskSequence)
		if err != nil {
			return err
		}
		t.ID = id

		rec := toRecord(t)
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// Update merges the patch into the stored row.
func (s *SQLiteStore) Update(ctx context.Context, id int64, patch domain.Patch) (domain.Task, error) {
	return s.mutate(ctx, id, patch.Apply)
}

// ToggleComplete flips the completed flag.
func (s *SQLiteStore) ToggleComplete(ctx context.Context, id int64) (domain.Task, error) {
	return s.mutate(ctx, id, func(t *domain.Task) {
		t.Completed = !t.Completed
	})
}

// Delete removes a row.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&taskRecord{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func (s *SQLiteStore) mutate(ctx context.Context, id int64, fn func(*domain.Task)) (domain.Task, error) {
	var result domain.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec taskRecord
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &domain.NotFoundError{ID: id}
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		t, err := rec.toDomain()
		if err != nil {
			return err
		}
		fn(&t)

		updated := toRecord(t)
		if err := tx.Save(&updated).Error; err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		result = t
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return result, nil
}

func nextID(tx *gorm.DB, name string) (int64, error) {
	seq := sequence{Name: name}
	if err := tx.FirstOrCreate(&seq, sequence{Name: name}).Error; err != nil {
		return 0, fmt.Errorf("failed to read sequence %s: %w", name, err)
	}

	seq.Value++
	if err := tx.Model(&sequence{}).Where("name = ?", name).Update("value", seq.Value).Error; err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return seq.Value, nil
}

func toRecord(t domain.Task) taskRecord {
	return taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.String(),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
}

func (r taskRecord) toDomain() (domain.Task, error) {
	var due domain.Date
	if r.DueDate != "" {
		parsed, err := domain.ParseDate(r.DueDate)
		if err != nil {
			return domain.Task{}, fmt.Errorf("task %d has a malformed due date: %w", r.ID, err)
		}
		due = parsed
	}
	return domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     due,
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt.UTC(),
	}, nil
}
