package project

import (
	"github.com/devteams/devteams-server/models/employee"
	"github.com/uptrace/bun"
)

type Team struct {
	bun.BaseModel `bun:"table:teams,alias:team"`

	Id               int64                    `bun:",pk,autoincrement" json:"pk"`
	TeamName         string                   `bun:",notnull,unique" json:"team_name"`
	TeamLeadId       int64                    `bun:",notnull" json:"-"`
	TeamLead         *employee.Developer      `bun:"rel:belongs-to,join:team_lead_id=id" json:"team_lead"`
	ProjectManagerId int64                    `bun:",notnull" json:"-"`
	ProjectManager   *employee.ProjectManager `bun:"rel:belongs-to,join:project_manager_id=id" json:"project_manager"`
	Developers       []employee.Developer     `bun:"m2m:team_developers,join:Team=Developer" json:"developers"`
}
