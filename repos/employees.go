package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/devteams/devteams-server/models/employee"
	"github.com/devteams/devteams-server/models/project"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/uptrace/bun"
)

type EmployeeRepo struct {
	db *bun.DB
}

func NewEmployeeRepo(db *bun.DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

func (c *EmployeeRepo) ListDevelopers(ctx context.Context) ([]employee.Developer, error) {
	developers := make([]employee.Developer, 0)
	err := c.db.NewSelect().Model(&developers).OrderExpr("id ASC").Scan(ctx)
	return developers, err
}

func (c *EmployeeRepo) GetDeveloper(ctx context.Context, id int64) (*employee.Developer, error) {
	developer := new(employee.Developer)
	err := c.db.NewSelect().Model(developer).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return developer, nil
}

// DevelopersByIds returns the developers that exist among ids, in no
// particular order.
func (c *EmployeeRepo) DevelopersByIds(ctx context.Context, ids []int64) ([]employee.Developer, error) {
	developers := make([]employee.Developer, 0)
	if len(ids) == 0 {
		return developers, nil
	}

	err := c.db.NewSelect().Model(&developers).Where("id IN (?)", bun.In(ids)).Scan(ctx)
	return developers, err
}

func (c *EmployeeRepo) AddDeveloper(ctx context.Context, developer *employee.Developer) error {
	_, err := c.db.NewInsert().Model(developer).Column("first_name", "last_name", "email").Exec(ctx)
	return err
}

// UpdateDeveloper writes the personal columns only. Team slots change through
// the team endpoints.
func (c *EmployeeRepo) UpdateDeveloper(ctx context.Context, developer *employee.Developer) error {
	res, err := c.db.NewUpdate().Model(developer).Column("first_name", "last_name", "email").WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDeveloper removes the developer from every developer list and deletes
// the teams it leads, since a team cannot exist without its lead.
func (c *EmployeeRepo) DeleteDeveloper(ctx context.Context, id int64) error {
	return c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		teams := make([]project.Team, 0)
		if err := tx.NewSelect().Model(&teams).Column("id").Where("team_lead_id = ?", id).Scan(ctx); err != nil {
			return err
		}

		for _, team := range teams {
			if err := deleteTeam(ctx, tx, team.Id); err != nil {
				return err
			}
		}

		if _, err := tx.NewDelete().Model(new(project.TeamToDeveloper)).Where("developer_id = ?", id).Exec(ctx); err != nil {
			return err
		}

		return deleteRow(ctx, tx, new(employee.Developer), id)
	})
}

func (c *EmployeeRepo) ListProjectManagers(ctx context.Context) ([]employee.ProjectManager, error) {
	managers := make([]employee.ProjectManager, 0)
	err := c.db.NewSelect().Model(&managers).OrderExpr("id ASC").Scan(ctx)
	return managers, err
}

func (c *EmployeeRepo) GetProjectManager(ctx context.Context, id int64) (*employee.ProjectManager, error) {
	manager := new(employee.ProjectManager)
	err := c.db.NewSelect().Model(manager).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return manager, nil
}

func (c *EmployeeRepo) AddProjectManager(ctx context.Context, manager *employee.ProjectManager) error {
	_, err := c.db.NewInsert().Model(manager).Column("first_name", "last_name", "email").Exec(ctx)
	return err
}

func (c *EmployeeRepo) UpdateProjectManager(ctx context.Context, manager *employee.ProjectManager) error {
	res, err := c.db.NewUpdate().Model(manager).Column("first_name", "last_name", "email").WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProjectManager deletes the teams the manager runs along with it.
func (c *EmployeeRepo) DeleteProjectManager(ctx context.Context, id int64) error {
	return c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		teams := make([]project.Team, 0)
		if err := tx.NewSelect().Model(&teams).Column("id").Where("project_manager_id = ?", id).Scan(ctx); err != nil {
			return err
		}

		for _, id := range utils.MapList(&teams, func(t *project.Team) int64 { return t.Id }) {
			if err := deleteTeam(ctx, tx, id); err != nil {
				return err
			}
		}

		return deleteRow(ctx, tx, new(employee.ProjectManager), id)
	})
}

func deleteRow(ctx context.Context, db bun.IDB, model interface{}, id int64) error {
	res, err := db.NewDelete().Model(model).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
