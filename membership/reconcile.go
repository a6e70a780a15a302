// Package membership keeps a team's slots (lead, project manager, developers)
// and the back-references stored on developers and project managers in
// agreement. Every function takes a bun.IDB so it runs inside the caller's
// transaction.
package membership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/devteams/devteams-server/models/employee"
	"github.com/devteams/devteams-server/models/project"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
)

// ErrMemberGone is returned when a referenced developer or project manager
// disappeared between validation and reconciliation.
var ErrMemberGone = errors.New("team member no longer exists")

// Update lists the slots to rewrite. A nil TeamLead or ProjectManager leaves
// that slot alone; Developers replaces the whole developer list when
// HasDevelopers is set, an empty list included.
type Update struct {
	TeamLead       *employee.Developer
	ProjectManager *employee.ProjectManager
	Developers     []employee.Developer
	HasDevelopers  bool
}

func (u Update) Empty() bool {
	return u.TeamLead == nil && u.ProjectManager == nil && !u.HasDevelopers
}

// Reconcile applies update to the persisted team and writes the back-references
// needed for the other side of each relation to agree with it.
func Reconcile(ctx context.Context, db bun.IDB, team *project.Team, update Update) (*project.Team, error) {
	if update.TeamLead != nil {
		if err := assignLead(ctx, db, team, update.TeamLead); err != nil {
			return nil, fmt.Errorf("team lead: %w", err)
		}
	}

	if update.ProjectManager != nil {
		if err := assignManager(ctx, db, team, update.ProjectManager); err != nil {
			return nil, fmt.Errorf("project manager: %w", err)
		}
	}

	if update.HasDevelopers {
		if err := replaceDevelopers(ctx, db, team, update.Developers); err != nil {
			return nil, fmt.Errorf("developers: %w", err)
		}
	}

	return team, nil
}

func refresh(ctx context.Context, db bun.IDB, model interface{}) error {
	err := db.NewSelect().Model(model).WherePK().Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMemberGone
	}
	return err
}

func assignLead(ctx context.Context, db bun.IDB, team *project.Team, lead *employee.Developer) error {
	if err := refresh(ctx, db, lead); err != nil {
		return err
	}

	previous := team.TeamLeadId
	if previous != 0 && previous != lead.Id {
		res, err := db.NewUpdate().Model(new(employee.Developer)).
			Set("lead_team_id = NULL").
			Where("id = ?", previous).
			Where("lead_team_id = ?", team.Id).
			Exec(ctx)
		if err != nil {
			return err
		}
		countWrites(SlotLead, OpDetach, res)

		log.Debug().Int64("team", team.Id).Int64("developer", previous).Msg("Released previous team lead")
	}

	if previous != lead.Id {
		if _, err := db.NewUpdate().Model(new(project.Team)).
			Set("team_lead_id = ?", lead.Id).
			Where("id = ?", team.Id).
			Exec(ctx); err != nil {
			return err
		}
	}

	if lead.LeadTeamId == nil || *lead.LeadTeamId != team.Id {
		if lead.LeadTeamId != nil {
			// The other team keeps pointing at this developer: its lead
			// column cannot be emptied.
			log.Warn().Int64("team", team.Id).Int64("developer", lead.Id).Int64("previous_team", *lead.LeadTeamId).Msg("Team lead claimed from another team")
		}

		res, err := db.NewUpdate().Model(new(employee.Developer)).
			Set("lead_team_id = ?", team.Id).
			Where("id = ?", lead.Id).
			Exec(ctx)
		if err != nil {
			return err
		}
		countWrites(SlotLead, OpAttach, res)
	}

	teamId := team.Id
	lead.LeadTeamId = &teamId
	team.TeamLeadId = lead.Id
	team.TeamLead = lead

	return nil
}

func assignManager(ctx context.Context, db bun.IDB, team *project.Team, manager *employee.ProjectManager) error {
	if err := refresh(ctx, db, manager); err != nil {
		return err
	}

	previous := team.ProjectManagerId
	if previous != 0 && previous != manager.Id {
		res, err := db.NewUpdate().Model(new(employee.ProjectManager)).
			Set("team_id = NULL").
			Where("id = ?", previous).
			Where("team_id = ?", team.Id).
			Exec(ctx)
		if err != nil {
			return err
		}
		countWrites(SlotManager, OpDetach, res)

		log.Debug().Int64("team", team.Id).Int64("project_manager", previous).Msg("Released previous project manager")
	}

	if previous != manager.Id {
		if _, err := db.NewUpdate().Model(new(project.Team)).
			Set("project_manager_id = ?", manager.Id).
			Where("id = ?", team.Id).
			Exec(ctx); err != nil {
			return err
		}
	}

	if manager.TeamId == nil || *manager.TeamId != team.Id {
		if manager.TeamId != nil {
			log.Warn().Int64("team", team.Id).Int64("project_manager", manager.Id).Int64("previous_team", *manager.TeamId).Msg("Project manager claimed from another team")
		}

		res, err := db.NewUpdate().Model(new(employee.ProjectManager)).
			Set("team_id = ?", team.Id).
			Where("id = ?", manager.Id).
			Exec(ctx)
		if err != nil {
			return err
		}
		countWrites(SlotManager, OpAttach, res)
	}

	teamId := team.Id
	manager.TeamId = &teamId
	team.ProjectManagerId = manager.Id
	team.ProjectManager = manager

	return nil
}

func replaceDevelopers(ctx context.Context, db bun.IDB, team *project.Team, developers []employee.Developer) error {
	wanted := dedupe(developers)

	current := make([]employee.Developer, 0)
	if err := db.NewSelect().Model(&current).Column("id").Where("team_id = ?", team.Id).Scan(ctx); err != nil {
		return err
	}

	currentIds := make(map[int64]bool, len(current))
	for _, d := range current {
		currentIds[d.Id] = true
	}

	wantedIds := make(map[int64]bool, len(wanted))
	attach := make([]int64, 0)
	for _, d := range wanted {
		wantedIds[d.Id] = true
		if !currentIds[d.Id] {
			attach = append(attach, d.Id)
		}
	}

	detach := make([]int64, 0)
	for _, d := range current {
		if !wantedIds[d.Id] {
			detach = append(detach, d.Id)
		}
	}

	if len(detach) > 0 {
		res, err := db.NewUpdate().Model(new(employee.Developer)).
			Set("team_id = NULL").
			Where("id IN (?)", bun.In(detach)).
			Where("team_id = ?", team.Id).
			Exec(ctx)
		if err != nil {
			return err
		}
		countWrites(SlotDeveloper, OpDetach, res)
	}

	if len(attach) > 0 {
		// A developer belongs to one team's list at a time.
		if _, err := db.NewDelete().Model(new(project.TeamToDeveloper)).
			Where("developer_id IN (?)", bun.In(attach)).
			Where("team_id != ?", team.Id).
			Exec(ctx); err != nil {
			return err
		}

		res, err := db.NewUpdate().Model(new(employee.Developer)).
			Set("team_id = ?", team.Id).
			Where("id IN (?)", bun.In(attach)).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n != int64(len(attach)) {
			return ErrMemberGone
		}
		countWrites(SlotDeveloper, OpAttach, res)
	}

	if err := writeDeveloperList(ctx, db, team.Id, wanted); err != nil {
		return err
	}

	log.Debug().Int64("team", team.Id).Int("attached", len(attach)).Int("detached", len(detach)).Msg("Replaced team developers")

	teamId := team.Id
	for i := range wanted {
		wanted[i].TeamId = &teamId
	}
	team.Developers = wanted

	return nil
}

// writeDeveloperList rewrites the ordered join rows unless they already match.
func writeDeveloperList(ctx context.Context, db bun.IDB, teamId int64, developers []employee.Developer) error {
	existing := make([]project.TeamToDeveloper, 0)
	if err := db.NewSelect().Model(&existing).Where("team_id = ?", teamId).OrderExpr("position ASC").Scan(ctx); err != nil {
		return err
	}

	if len(existing) == len(developers) {
		same := true
		for i := range existing {
			if existing[i].DeveloperId != developers[i].Id {
				same = false
				break
			}
		}
		if same {
			return nil
		}
	}

	if _, err := db.NewDelete().Model(new(project.TeamToDeveloper)).Where("team_id = ?", teamId).Exec(ctx); err != nil {
		return err
	}

	if len(developers) == 0 {
		return nil
	}

	rows := make([]project.TeamToDeveloper, len(developers))
	for i, d := range developers {
		rows[i] = project.TeamToDeveloper{
			TeamId:      teamId,
			DeveloperId: d.Id,
			Position:    i,
		}
	}

	_, err := db.NewInsert().Model(&rows).Exec(ctx)
	return err
}

func dedupe(developers []employee.Developer) []employee.Developer {
	seen := make([]int64, 0, len(developers))
	out := make([]employee.Developer, 0, len(developers))
	for _, d := range developers {
		if utils.IsInList(d.Id, &seen) > -1 {
			continue
		}
		seen = append(seen, d.Id)
		out = append(out, d)
	}
	return out
}
