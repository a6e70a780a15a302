package project

import (
	"github.com/devteams/devteams-server/models/employee"
	"github.com/uptrace/bun"
)

// TeamToDeveloper backs Team.Developers. Position keeps the order the
// developers were supplied in.
type TeamToDeveloper struct {
	bun.BaseModel `bun:"table:team_developers,alias:team_developer"`

	TeamId      int64               `bun:",pk"`
	Team        *Team               `bun:"rel:belongs-to,join:team_id=id"`
	DeveloperId int64               `bun:",pk"`
	Developer   *employee.Developer `bun:"rel:belongs-to,join:developer_id=id"`
	Position    int                 `bun:",notnull"`
}
