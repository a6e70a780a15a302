package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	models "github.com/devteams/devteams-server/models/userdata"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/uptrace/bun"
)

type ProfileRepo struct {
	db *bun.DB
}

func NewProfileRepo(db *bun.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// CreateForUser makes sure the user has a profile. Running it twice for the
// same user leaves a single profile.
func (c *ProfileRepo) CreateForUser(ctx context.Context, userId int64) (*models.Profile, error) {
	existing, err := c.GetByUser(ctx, userId)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	profile := &models.Profile{
		UserId:    userId,
		CreatedAt: time.Now().UTC(),
	}

	_, err = c.db.NewInsert().Model(profile).Exec(ctx)
	if utils.IsUniqueViolation(err) {
		return c.GetByUser(ctx, userId)
	}
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (c *ProfileRepo) GetByUser(ctx context.Context, userId int64) (*models.Profile, error) {
	profile := new(models.Profile)
	err := c.db.NewSelect().Model(profile).Where("user_id = ?", userId).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}
