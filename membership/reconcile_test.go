package membership_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/devteams/devteams-server/membership"
	"github.com/devteams/devteams-server/models/employee"
	"github.com/devteams/devteams-server/models/project"
	"github.com/devteams/devteams-server/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type fixture struct {
	db       *bun.DB
	devs     []*employee.Developer
	managers []*employee.ProjectManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{db: testutil.NewDB(t)}
	ctx := context.Background()

	for i := 1; i <= 6; i++ {
		d := &employee.Developer{FirstName: fmt.Sprintf("Dev%d", i), LastName: "Test"}
		_, err := f.db.NewInsert().Model(d).Exec(ctx)
		require.NoError(t, err)
		f.devs = append(f.devs, d)
	}

	for i := 1; i <= 2; i++ {
		m := &employee.ProjectManager{FirstName: fmt.Sprintf("Pm%d", i), LastName: "Test"}
		_, err := f.db.NewInsert().Model(m).Exec(ctx)
		require.NoError(t, err)
		f.managers = append(f.managers, m)
	}

	return f
}

// dev returns a fresh copy of developer n (1-based), as the handlers would
// load it.
func (f *fixture) dev(t *testing.T, n int) *employee.Developer {
	t.Helper()
	d := &employee.Developer{Id: f.devs[n-1].Id}
	require.NoError(t, f.db.NewSelect().Model(d).WherePK().Scan(context.Background()))
	return d
}

func (f *fixture) manager(t *testing.T, n int) *employee.ProjectManager {
	t.Helper()
	m := &employee.ProjectManager{Id: f.managers[n-1].Id}
	require.NoError(t, f.db.NewSelect().Model(m).WherePK().Scan(context.Background()))
	return m
}

func (f *fixture) devList(t *testing.T, ns ...int) []employee.Developer {
	t.Helper()
	out := make([]employee.Developer, 0, len(ns))
	for _, n := range ns {
		out = append(out, *f.dev(t, n))
	}
	return out
}

func (f *fixture) create(t *testing.T, name string, lead, manager int, developers ...int) *project.Team {
	t.Helper()
	ctx := context.Background()

	team := &project.Team{
		TeamName:         name,
		TeamLeadId:       f.devs[lead-1].Id,
		ProjectManagerId: f.managers[manager-1].Id,
	}

	update := membership.Update{
		TeamLead:       f.dev(t, lead),
		ProjectManager: f.manager(t, manager),
		Developers:     f.devList(t, developers...),
		HasDevelopers:  true,
	}

	err := f.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(team).Exec(ctx); err != nil {
			return err
		}
		_, err := membership.Reconcile(ctx, tx, team, update)
		return err
	})
	require.NoError(t, err)

	return team
}

func (f *fixture) reconcile(t *testing.T, teamId int64, update membership.Update) error {
	t.Helper()
	ctx := context.Background()

	return f.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		team := &project.Team{Id: teamId}
		if err := tx.NewSelect().Model(team).WherePK().Scan(ctx); err != nil {
			return err
		}
		_, err := membership.Reconcile(ctx, tx, team, update)
		return err
	})
}

func (f *fixture) team(t *testing.T, id int64) *project.Team {
	t.Helper()
	team := &project.Team{Id: id}
	require.NoError(t, f.db.NewSelect().Model(team).WherePK().Scan(context.Background()))
	return team
}

// members returns the ordered developer list of team.
func (f *fixture) members(t *testing.T, teamId int64) []int64 {
	t.Helper()
	rows := make([]project.TeamToDeveloper, 0)
	require.NoError(t, f.db.NewSelect().Model(&rows).Where("team_id = ?", teamId).OrderExpr("position ASC").Scan(context.Background()))

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.DeveloperId
	}
	return ids
}

func (f *fixture) ids(ns ...int) []int64 {
	out := make([]int64, len(ns))
	for i, n := range ns {
		out[i] = f.devs[n-1].Id
	}
	return out
}

// assertSymmetric checks that every slot of every team agrees with the
// back-references stored on developers and project managers.
func (f *fixture) assertSymmetric(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	teams := make([]project.Team, 0)
	require.NoError(t, f.db.NewSelect().Model(&teams).Scan(ctx))

	developers := make([]employee.Developer, 0)
	require.NoError(t, f.db.NewSelect().Model(&developers).Scan(ctx))

	managers := make([]employee.ProjectManager, 0)
	require.NoError(t, f.db.NewSelect().Model(&managers).Scan(ctx))

	for _, team := range teams {
		leads := 0
		for _, d := range developers {
			if d.LeadTeamId != nil && *d.LeadTeamId == team.Id {
				leads++
				assert.Equal(t, team.TeamLeadId, d.Id, "lead back-reference of %d", d.Id)
			}
		}
		assert.LessOrEqual(t, leads, 1)

		for _, m := range managers {
			if m.TeamId != nil && *m.TeamId == team.Id {
				assert.Equal(t, team.ProjectManagerId, m.Id)
			}
		}

		listed := make(map[int64]bool)
		for _, id := range f.members(t, team.Id) {
			listed[id] = true
		}
		for _, d := range developers {
			claimed := d.TeamId != nil && *d.TeamId == team.Id
			assert.Equal(t, listed[d.Id], claimed, "developer %d in team %d", d.Id, team.Id)
		}
	}
}

func TestScenarioA_CreateSetsEveryBackReference(t *testing.T) {
	f := newFixture(t)

	team := f.create(t, "X", 1, 1, 2, 3)

	require.Equal(t, team.Id, *f.dev(t, 1).LeadTeamId)
	require.Nil(t, f.dev(t, 1).TeamId)
	require.Equal(t, team.Id, *f.manager(t, 1).TeamId)
	require.Equal(t, team.Id, *f.dev(t, 2).TeamId)
	require.Equal(t, team.Id, *f.dev(t, 3).TeamId)
	require.Equal(t, f.ids(2, 3), f.members(t, team.Id))

	f.assertSymmetric(t)
}

func TestScenarioB_LeadChangeKeepsDevelopers(t *testing.T) {
	f := newFixture(t)
	team := f.create(t, "X", 1, 1, 2, 3)

	require.NoError(t, f.reconcile(t, team.Id, membership.Update{TeamLead: f.dev(t, 2)}))

	require.Nil(t, f.dev(t, 1).LeadTeamId)
	require.Equal(t, team.Id, *f.dev(t, 2).LeadTeamId)
	require.Equal(t, team.Id, *f.dev(t, 2).TeamId)
	require.Equal(t, f.devs[1].Id, f.team(t, team.Id).TeamLeadId)
	require.Equal(t, f.ids(2, 3), f.members(t, team.Id))

	f.assertSymmetric(t)
}

func TestScenarioC_ReplacingDevelopersLeavesLeadSlot(t *testing.T) {
	f := newFixture(t)
	team := f.create(t, "X", 1, 1, 2, 3)
	require.NoError(t, f.reconcile(t, team.Id, membership.Update{TeamLead: f.dev(t, 2)}))

	require.NoError(t, f.reconcile(t, team.Id, membership.Update{
		Developers:    f.devList(t, 4, 5),
		HasDevelopers: true,
	}))

	require.Nil(t, f.dev(t, 2).TeamId)
	require.Nil(t, f.dev(t, 3).TeamId)
	require.Equal(t, team.Id, *f.dev(t, 4).TeamId)
	require.Equal(t, team.Id, *f.dev(t, 5).TeamId)
	require.Equal(t, team.Id, *f.dev(t, 2).LeadTeamId)
	require.Equal(t, f.ids(4, 5), f.members(t, team.Id))

	f.assertSymmetric(t)
}

func TestScenarioD_EmptyListDetachesAll(t *testing.T) {
	f := newFixture(t)
	team := f.create(t, "X", 1, 1, 2, 3)

	require.NoError(t, f.reconcile(t, team.Id, membership.Update{
		Developers:    []employee.Developer{},
		HasDevelopers: true,
	}))

	require.Nil(t, f.dev(t, 2).TeamId)
	require.Nil(t, f.dev(t, 3).TeamId)
	require.Empty(t, f.members(t, team.Id))
	require.Equal(t, team.Id, *f.dev(t, 1).LeadTeamId)

	f.assertSymmetric(t)
}

func TestAbsentDevelopersLeaveListAlone(t *testing.T) {
	f := newFixture(t)
	team := f.create(t, "X", 1, 1, 2, 3)

	require.NoError(t, f.reconcile(t, team.Id, membership.Update{ProjectManager: f.manager(t, 2)}))

	require.Equal(t, f.ids(2, 3), f.members(t, team.Id))
	require.Nil(t, f.manager(t, 1).TeamId)
	require.Equal(t, team.Id, *f.manager(t, 2).TeamId)

	f.assertSymmetric(t)
}

func TestReplacementIsIdempotent(t *testing.T) {
	f := newFixture(t)
	team := f.create(t, "X", 1, 1, 2, 3)

	before := membership.WritesFor(membership.SlotDeveloper, membership.OpAttach) + membership.WritesFor(membership.SlotDeveloper, membership.OpDetach)

	update := membership.Update{Developers: f.devList(t, 3, 2), HasDevelopers: true}
	require.NoError(t, f.reconcile(t, team.Id, update))
	require.NoError(t, f.reconcile(t, team.Id, update))

	after := membership.WritesFor(membership.SlotDeveloper, membership.OpAttach) + membership.WritesFor(membership.SlotDeveloper, membership.OpDetach)
	assert.Equal(t, before, after, "current set caused back-reference writes")

	require.Equal(t, f.ids(3, 2), f.members(t, team.Id))
	f.assertSymmetric(t)
}

func TestDuplicateDevelopersCollapse(t *testing.T) {
	f := newFixture(t)
	team := f.create(t, "X", 1, 1, 2, 3, 2)

	require.Equal(t, f.ids(2, 3), f.members(t, team.Id))
	f.assertSymmetric(t)
}

func TestDeveloperMayLeadOwnTeam(t *testing.T) {
	f := newFixture(t)
	team := f.create(t, "X", 2, 1, 2, 3)

	d := f.dev(t, 2)
	require.Equal(t, team.Id, *d.TeamId)
	require.Equal(t, team.Id, *d.LeadTeamId)

	f.assertSymmetric(t)
}

func TestDeveloperMovesBetweenTeamLists(t *testing.T) {
	f := newFixture(t)
	x := f.create(t, "X", 1, 1, 2, 3)
	y := f.create(t, "Y", 4, 2, 5)

	require.NoError(t, f.reconcile(t, y.Id, membership.Update{
		Developers:    f.devList(t, 5, 3),
		HasDevelopers: true,
	}))

	require.Equal(t, y.Id, *f.dev(t, 3).TeamId)
	require.Equal(t, f.ids(2), f.members(t, x.Id))
	require.Equal(t, f.ids(5, 3), f.members(t, y.Id))

	f.assertSymmetric(t)
}

func TestCrossTeamLeadClaim(t *testing.T) {
	f := newFixture(t)
	x := f.create(t, "X", 1, 1)
	y := f.create(t, "Y", 4, 2)

	require.NoError(t, f.reconcile(t, y.Id, membership.Update{TeamLead: f.dev(t, 1)}))

	require.Equal(t, y.Id, *f.dev(t, 1).LeadTeamId)
	require.Nil(t, f.dev(t, 4).LeadTeamId)
	require.Equal(t, f.devs[0].Id, f.team(t, y.Id).TeamLeadId)
	// X keeps its lead column.
	require.Equal(t, f.devs[0].Id, f.team(t, x.Id).TeamLeadId)

	require.NoError(t, f.reconcile(t, x.Id, membership.Update{TeamLead: f.dev(t, 6)}))
	require.Equal(t, y.Id, *f.dev(t, 1).LeadTeamId, "releasing X touched Y's lead")
	require.Equal(t, x.Id, *f.dev(t, 6).LeadTeamId)
}

func TestMissingMemberRollsBack(t *testing.T) {
	f := newFixture(t)
	team := f.create(t, "X", 1, 1, 2)

	ghost := employee.Developer{Id: 9999, FirstName: "No", LastName: "One"}
	err := f.reconcile(t, team.Id, membership.Update{
		TeamLead:      f.dev(t, 3),
		Developers:    []employee.Developer{*f.dev(t, 4), ghost},
		HasDevelopers: true,
	})
	require.ErrorIs(t, err, membership.ErrMemberGone)

	require.Equal(t, team.Id, *f.dev(t, 1).LeadTeamId)
	require.Nil(t, f.dev(t, 3).LeadTeamId)
	require.Nil(t, f.dev(t, 4).TeamId)
	require.Equal(t, f.ids(2), f.members(t, team.Id))

	f.assertSymmetric(t)
}

func TestRelease(t *testing.T) {
	f := newFixture(t)
	team := f.create(t, "X", 1, 1, 2, 3)

	ctx := context.Background()
	require.NoError(t, membership.Release(ctx, f.db, team.Id))

	require.Nil(t, f.dev(t, 1).LeadTeamId)
	require.Nil(t, f.dev(t, 2).TeamId)
	require.Nil(t, f.manager(t, 1).TeamId)
	require.Empty(t, f.members(t, team.Id))
}

func TestCrossTeamManagerClaim(t *testing.T) {
	f := newFixture(t)
	x := f.create(t, "X", 1, 1)
	y := f.create(t, "Y", 2, 2)

	require.NoError(t, f.reconcile(t, y.Id, membership.Update{ProjectManager: f.manager(t, 1)}))

	require.Equal(t, y.Id, *f.manager(t, 1).TeamId)
	require.Nil(t, f.manager(t, 2).TeamId)
	require.Equal(t, f.managers[0].Id, f.team(t, y.Id).ProjectManagerId)
	// X keeps its manager column.
	require.Equal(t, f.managers[0].Id, f.team(t, x.Id).ProjectManagerId)

	require.NoError(t, f.reconcile(t, x.Id, membership.Update{ProjectManager: f.manager(t, 2)}))
	require.Equal(t, y.Id, *f.manager(t, 1).TeamId, "releasing X touched Y's manager")
	require.Equal(t, x.Id, *f.manager(t, 2).TeamId)
}
