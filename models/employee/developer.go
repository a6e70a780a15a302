package employee

import "github.com/uptrace/bun"

// Developer can sit in two slots of a team at once: a plain member of the
// team's developers and its lead. Each slot keeps its own back-reference.
type Developer struct {
	bun.BaseModel `bun:"table:developers,alias:developer"`

	Id         int64  `bun:",pk,autoincrement" json:"pk"`
	FirstName  string `bun:",notnull" json:"first_name"`
	LastName   string `bun:",notnull" json:"last_name"`
	Email      string `json:"email,omitempty"`
	TeamId     *int64 `json:"team"`
	LeadTeamId *int64 `bun:",unique" json:"lead_of"`
}

func (d *Developer) String() string {
	return d.FirstName + " " + d.LastName
}
