package serializers

import (
	"context"
	"errors"

	"github.com/devteams/devteams-server/membership"
	"github.com/devteams/devteams-server/models/employee"
	"github.com/devteams/devteams-server/repos"
	"github.com/go-playground/validator/v10"
)

// TeamInput is the request body of the team endpoints. A nil field was not
// sent.
type TeamInput struct {
	TeamName       *string  `json:"team_name" validate:"omitempty,min=1,max=200"`
	TeamLead       *int64   `json:"team_lead" validate:"omitempty,gt=0"`
	ProjectManager *int64   `json:"project_manager" validate:"omitempty,gt=0"`
	Developers     *[]int64 `json:"developers" validate:"omitempty,dive,gt=0"`
}

type TeamNames interface {
	TeamNameTaken(ctx context.Context, name string, excludeId int64) (bool, error)
}

type Employees interface {
	GetDeveloper(ctx context.Context, id int64) (*employee.Developer, error)
	GetProjectManager(ctx context.Context, id int64) (*employee.ProjectManager, error)
	DevelopersByIds(ctx context.Context, ids []int64) ([]employee.Developer, error)
}

type TeamSerializer struct {
	Validate  *validator.Validate
	Teams     TeamNames
	Employees Employees
}

func NewTeamSerializer(validate *validator.Validate, teams *repos.TeamRepo, employees *repos.EmployeeRepo) *TeamSerializer {
	return &TeamSerializer{
		Validate:  validate,
		Teams:     teams,
		Employees: employees,
	}
}

// ValidateCreate checks a new team. The developer list defaults to empty.
func (s *TeamSerializer) ValidateCreate(ctx context.Context, input *TeamInput) (string, membership.Update, error) {
	verr := structErrors(s.Validate, input)

	if input.TeamName == nil {
		verr.add("team_name", TagRequired, "")
	}
	if input.TeamLead == nil {
		verr.add("team_lead", TagRequired, "")
	}
	if input.ProjectManager == nil {
		verr.add("project_manager", TagRequired, "")
	}

	if input.Developers == nil {
		empty := make([]int64, 0)
		input.Developers = &empty
	}

	update, err := s.resolve(ctx, 0, input, verr)
	if err != nil {
		return "", membership.Update{}, err
	}

	return *input.TeamName, update, nil
}

// ValidateUpdate checks a change to team id. Only team_name is required, and
// only when partial is false.
func (s *TeamSerializer) ValidateUpdate(ctx context.Context, id int64, input *TeamInput, partial bool) (*string, membership.Update, error) {
	verr := structErrors(s.Validate, input)

	if !partial && input.TeamName == nil {
		verr.add("team_name", TagRequired, "")
	}

	update, err := s.resolve(ctx, id, input, verr)
	if err != nil {
		return nil, membership.Update{}, err
	}

	return input.TeamName, update, nil
}

// resolve loads every referenced employee and checks the name. Missing ids
// are added to verr, which is returned once all fields have been looked at.
func (s *TeamSerializer) resolve(ctx context.Context, teamId int64, input *TeamInput, verr *ValidationError) (membership.Update, error) {
	update := membership.Update{}

	if input.TeamName != nil && len(*input.TeamName) > 0 {
		taken, err := s.Teams.TeamNameTaken(ctx, *input.TeamName, teamId)
		if err != nil {
			return update, err
		}
		if taken {
			verr.add("team_name", TagUnique, *input.TeamName)
		}
	}

	if input.TeamLead != nil && *input.TeamLead > 0 {
		lead, err := s.Employees.GetDeveloper(ctx, *input.TeamLead)
		switch {
		case errors.Is(err, repos.ErrNotFound):
			verr.notFound("team_lead", *input.TeamLead)
		case err != nil:
			return update, err
		default:
			update.TeamLead = lead
		}
	}

	if input.ProjectManager != nil && *input.ProjectManager > 0 {
		manager, err := s.Employees.GetProjectManager(ctx, *input.ProjectManager)
		switch {
		case errors.Is(err, repos.ErrNotFound):
			verr.notFound("project_manager", *input.ProjectManager)
		case err != nil:
			return update, err
		default:
			update.ProjectManager = manager
		}
	}

	if input.Developers != nil {
		developers, err := s.resolveDevelopers(ctx, *input.Developers, verr)
		if err != nil {
			return update, err
		}
		update.Developers = developers
		update.HasDevelopers = true
	}

	return update, verr.orNil()
}

// resolveDevelopers returns the developers in the order of ids.
func (s *TeamSerializer) resolveDevelopers(ctx context.Context, ids []int64, verr *ValidationError) ([]employee.Developer, error) {
	found, err := s.Employees.DevelopersByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	byId := make(map[int64]employee.Developer, len(found))
	for _, d := range found {
		byId[d.Id] = d
	}

	developers := make([]employee.Developer, 0, len(ids))
	for _, id := range ids {
		d, ok := byId[id]
		if !ok {
			if id > 0 {
				verr.notFound("developers", id)
			}
			continue
		}
		developers = append(developers, d)
	}

	return developers, nil
}
