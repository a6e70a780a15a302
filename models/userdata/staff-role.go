package userdata

import "github.com/uptrace/bun"

type StaffRole struct {
	bun.BaseModel `bun:"table:staff_roles,alias:staff_role"`

	Id          int64    `bun:",pk,autoincrement" json:"pk"`
	Name        string   `bun:",notnull,unique" json:"name"`
	Permissions []string `bun:",type:jsonb" json:"permissions"`
}
