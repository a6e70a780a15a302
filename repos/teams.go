package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/devteams/devteams-server/membership"
	"github.com/devteams/devteams-server/models/employee"
	"github.com/devteams/devteams-server/models/project"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

type TeamRepo struct {
	db *bun.DB
}

func NewTeamRepo(db *bun.DB) *TeamRepo {
	return &TeamRepo{db: db}
}

func (c *TeamRepo) ListTeams(ctx context.Context) ([]project.Team, error) {
	teams := make([]project.Team, 0)
	err := c.db.NewSelect().Model(&teams).Relation("TeamLead").Relation("ProjectManager").OrderExpr(`"team"."id" ASC`).Scan(ctx)
	if err != nil {
		return nil, err
	}

	ptrs := make([]*project.Team, len(teams))
	for i := range teams {
		ptrs[i] = &teams[i]
	}

	return teams, loadDevelopers(ctx, c.db, ptrs)
}

func (c *TeamRepo) GetTeam(ctx context.Context, id int64) (*project.Team, error) {
	return getTeam(ctx, c.db, id)
}

func (c *TeamRepo) TeamNameTaken(ctx context.Context, name string, excludeId int64) (bool, error) {
	return c.db.NewSelect().Model((*project.Team)(nil)).Where("team_name = ?", name).Where("id != ?", excludeId).Exists(ctx)
}

// CreateTeam inserts the team and reconciles all of its slots in one
// transaction. update must carry a lead and a project manager.
func (c *TeamRepo) CreateTeam(ctx context.Context, name string, update membership.Update) (*project.Team, error) {
	if update.TeamLead == nil || update.ProjectManager == nil {
		return nil, ErrIncomplete
	}

	var created *project.Team
	err := c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		team := &project.Team{
			TeamName:         name,
			TeamLeadId:       update.TeamLead.Id,
			ProjectManagerId: update.ProjectManager.Id,
		}
		if _, err := tx.NewInsert().Model(team).Exec(ctx); err != nil {
			return err
		}

		if _, err := membership.Reconcile(ctx, tx, team, update); err != nil {
			return err
		}

		var err error
		created, err = getTeam(ctx, tx, team.Id)
		return err
	})
	if err != nil {
		return nil, translateTeamError(err)
	}

	log.Info().Int64("team", created.Id).Str("name", created.TeamName).Msg("Team created")
	return created, nil
}

// UpdateTeam renames the team when name is set and reconciles the slots named
// in update, all in one transaction.
func (c *TeamRepo) UpdateTeam(ctx context.Context, id int64, name *string, update membership.Update) (*project.Team, error) {
	var updated *project.Team
	err := c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		team := new(project.Team)
		q := tx.NewSelect().Model(team).Where(`"team"."id" = ?`, id)
		if tx.Dialect().Name() == dialect.PG {
			q = q.For("UPDATE")
		}
		if err := q.Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		if name != nil && *name != team.TeamName {
			if _, err := tx.NewUpdate().Model(team).Set("team_name = ?", *name).Where("id = ?", id).Exec(ctx); err != nil {
				return err
			}
		}

		if _, err := membership.Reconcile(ctx, tx, team, update); err != nil {
			return err
		}

		var err error
		updated, err = getTeam(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, translateTeamError(err)
	}

	return updated, nil
}

func (c *TeamRepo) DeleteTeam(ctx context.Context, id int64) error {
	return c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return deleteTeam(ctx, tx, id)
	})
}

func deleteTeam(ctx context.Context, db bun.IDB, id int64) error {
	if err := membership.Release(ctx, db, id); err != nil {
		return err
	}

	res, err := db.NewDelete().Model(new(project.Team)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	log.Info().Int64("team", id).Msg("Team deleted")
	return nil
}

func getTeam(ctx context.Context, db bun.IDB, id int64) (*project.Team, error) {
	team := new(project.Team)
	err := db.NewSelect().Model(team).Relation("TeamLead").Relation("ProjectManager").Where(`"team"."id" = ?`, id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return team, loadDevelopers(ctx, db, []*project.Team{team})
}

// loadDevelopers fills Team.Developers in list order.
func loadDevelopers(ctx context.Context, db bun.IDB, teams []*project.Team) error {
	if len(teams) == 0 {
		return nil
	}

	byId := make(map[int64]*project.Team, len(teams))
	for _, t := range teams {
		t.Developers = make([]employee.Developer, 0)
		byId[t.Id] = t
	}

	rows := make([]project.TeamToDeveloper, 0)
	err := db.NewSelect().Model(&rows).
		Relation("Developer").
		Where(`"team_developer"."team_id" IN (?)`, bun.In(utils.MapList(&teams, func(t **project.Team) int64 { return (*t).Id }))).
		OrderExpr(`"team_developer"."position" ASC`).
		Scan(ctx)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if row.Developer == nil {
			continue
		}
		t := byId[row.TeamId]
		t.Developers = append(t.Developers, *row.Developer)
	}

	return nil
}

func translateTeamError(err error) error {
	if utils.IsUniqueViolation(err) {
		if strings.Contains(err.Error(), "team_name") {
			return ErrTeamNameTaken
		}
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
