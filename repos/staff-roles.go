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

type StaffRoleRepo struct {
	db *bun.DB
}

func NewStaffRoleRepo(db *bun.DB) *StaffRoleRepo {
	return &StaffRoleRepo{db: db}
}

func (c *StaffRoleRepo) ListRoles(ctx context.Context) ([]models.StaffRole, error) {
	roles := make([]models.StaffRole, 0)
	err := c.db.NewSelect().Model(&roles).OrderExpr("id ASC").Scan(ctx)
	return roles, err
}

func (c *StaffRoleRepo) GetRole(ctx context.Context, id int64) (*models.StaffRole, error) {
	role := new(models.StaffRole)
	err := c.db.NewSelect().Model(role).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (c *StaffRoleRepo) AddRole(ctx context.Context, role *models.StaffRole) error {
	_, err := c.db.NewInsert().Model(role).Exec(ctx)
	if utils.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

// DeleteRole detaches the role from its users before removing it.
func (c *StaffRoleRepo) DeleteRole(ctx context.Context, id int64) error {
	return c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(new(models.User)).Set("staff_role_id = NULL").Where("staff_role_id = ?", id).Exec(ctx); err != nil {
			return err
		}

		return deleteRow(ctx, tx, new(models.StaffRole), id)
	})
}
