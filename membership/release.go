package membership

import (
	"context"

	"github.com/devteams/devteams-server/models/employee"
	"github.com/devteams/devteams-server/models/project"
	"github.com/uptrace/bun"
)

// Release clears every back-reference pointing at the team and drops its
// developer list. It runs before the team row is deleted.
func Release(ctx context.Context, db bun.IDB, teamId int64) error {
	res, err := db.NewUpdate().Model(new(employee.Developer)).
		Set("lead_team_id = NULL").
		Where("lead_team_id = ?", teamId).
		Exec(ctx)
	if err != nil {
		return err
	}
	countWrites(SlotLead, OpDetach, res)

	res, err = db.NewUpdate().Model(new(employee.Developer)).
		Set("team_id = NULL").
		Where("team_id = ?", teamId).
		Exec(ctx)
	if err != nil {
		return err
	}
	countWrites(SlotDeveloper, OpDetach, res)

	res, err = db.NewUpdate().Model(new(employee.ProjectManager)).
		Set("team_id = NULL").
		Where("team_id = ?", teamId).
		Exec(ctx)
	if err != nil {
		return err
	}
	countWrites(SlotManager, OpDetach, res)

	_, err = db.NewDelete().Model(new(project.TeamToDeveloper)).Where("team_id = ?", teamId).Exec(ctx)
	return err
}
