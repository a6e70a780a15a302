package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	models "github.com/devteams/devteams-server/models/system"
	"github.com/uptrace/bun"
)

type JobRepo struct {
	db *bun.DB
}

func NewJobRepo(db *bun.DB) *JobRepo {
	return &JobRepo{db: db}
}

func (c *JobRepo) AddJob(ctx context.Context, job models.Job) error {
	if job.Details == nil {
		job.Details = make([]map[string]string, 0)
	}
	_, err := c.db.NewInsert().Model(&job).Exec(ctx)
	return err
}

func (c *JobRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	job := new(models.Job)
	err := c.db.NewSelect().Model(job).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// UpdateJob sets the status and appends jobItem to the details when it is not
// empty.
func (c *JobRepo) UpdateJob(ctx context.Context, id string, jobItem map[string]string, status string) error {
	return c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		job := new(models.Job)
		if err := tx.NewSelect().Model(job).Where("id = ?", id).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		if len(jobItem) > 0 {
			job.Details = append(job.Details, jobItem)
		}
		job.Status = status
		job.UpdatedAt = time.Now().UTC()

		_, err := tx.NewUpdate().Model(job).Column("details", "status", "updated_at").WherePK().Exec(ctx)
		return err
	})
}
