package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	models "github.com/devteams/devteams-server/models/userdata"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/uptrace/bun"
)

type UserRepo struct {
	db *bun.DB
}

func NewUserRepo(db *bun.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (c *UserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	err := c.db.NewSelect().Model(&users).OrderExpr(`"user"."id" ASC`).Scan(ctx)
	return users, err
}

func (c *UserRepo) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user := new(models.User)

	err := c.db.NewSelect().Model(user).Where(`"user"."id" = ?`, id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (c *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := new(models.User)

	err := c.db.NewSelect().Model(user).Where(`"user"."username" = ?`, username).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (c *UserRepo) UsernameTaken(ctx context.Context, username string, excludeId int64) (bool, error) {
	return c.db.NewSelect().Model((*models.User)(nil)).Where("username = ?", username).Where("id != ?", excludeId).Exists(ctx)
}

func (c *UserRepo) EmailTaken(ctx context.Context, email string, excludeId int64) (bool, error) {
	return c.db.NewSelect().Model((*models.User)(nil)).Where("email = ?", email).Where("id != ?", excludeId).Exists(ctx)
}

// AddUser expects user.Password to be hashed already.
func (c *UserRepo) AddUser(ctx context.Context, user *models.User) error {
	_, err := c.db.NewInsert().Model(user).Exec(ctx)
	if utils.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

// UpdateUser writes the given columns of user.
func (c *UserRepo) UpdateUser(ctx context.Context, user *models.User, columns []string) error {
	if len(columns) == 0 {
		return nil
	}

	res, err := c.db.NewUpdate().Model(user).Column(columns...).WherePK().Exec(ctx)
	if utils.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *UserRepo) DeleteUser(ctx context.Context, id int64) error {
	return c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model(new(models.Profile)).Where("user_id = ?", id).Exec(ctx); err != nil {
			return err
		}

		return deleteRow(ctx, tx, new(models.User), id)
	})
}
