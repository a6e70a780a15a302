package serializers

import (
	"time"

	"github.com/devteams/devteams-server/models/employee"
	"github.com/devteams/devteams-server/models/project"
	models "github.com/devteams/devteams-server/models/userdata"
)

type TeamView struct {
	Id             int64                    `json:"pk"`
	TeamName       string                   `json:"team_name"`
	TeamLead       *employee.Developer      `json:"team_lead"`
	ProjectManager *employee.ProjectManager `json:"project_manager"`
	Developers     []employee.Developer     `json:"developers"`
}

func NewTeamView(team *project.Team) TeamView {
	developers := team.Developers
	if developers == nil {
		developers = make([]employee.Developer, 0)
	}

	return TeamView{
		Id:             team.Id,
		TeamName:       team.TeamName,
		TeamLead:       team.TeamLead,
		ProjectManager: team.ProjectManager,
		Developers:     developers,
	}
}

func NewTeamViews(teams []project.Team) []TeamView {
	views := make([]TeamView, len(teams))
	for i := range teams {
		views[i] = NewTeamView(&teams[i])
	}
	return views
}

type UserView struct {
	Id         int64     `json:"pk"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	StaffRole  *int64    `json:"staff_role"`
	DateJoined time.Time `json:"date_joined"`
}

func NewUserView(user *models.User) UserView {
	return UserView{
		Id:         user.Id,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		StaffRole:  user.StaffRoleId,
		DateJoined: user.CreatedAt,
	}
}

func NewUserViews(users []models.User) []UserView {
	views := make([]UserView, len(users))
	for i := range users {
		views[i] = NewUserView(&users[i])
	}
	return views
}
