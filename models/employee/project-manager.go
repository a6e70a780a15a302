package employee

import "github.com/uptrace/bun"

type ProjectManager struct {
	bun.BaseModel `bun:"table:project_managers,alias:project_manager"`

	Id        int64  `bun:",pk,autoincrement" json:"pk"`
	FirstName string `bun:",notnull" json:"first_name"`
	LastName  string `bun:",notnull" json:"last_name"`
	Email     string `json:"email,omitempty"`
	TeamId    *int64 `bun:",unique" json:"team"`
}
