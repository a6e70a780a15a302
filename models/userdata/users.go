package userdata

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:user"`

	Id          int64      `bun:",pk,autoincrement" json:"pk"`
	Username    string     `bun:",notnull,unique" json:"username"`
	Email       string     `bun:",notnull,unique" json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Password    string     `bun:",notnull" json:"-"`
	StaffRoleId *int64     `json:"staff_role"`
	StaffRole   *StaffRole `bun:"rel:belongs-to,join:staff_role_id=id" json:"-"`
	CreatedAt   time.Time  `bun:",notnull" json:"date_joined"`
}

func (user *User) ToMap() map[string]string {
	return map[string]string{
		"{{user.username}}":   user.Username,
		"{{user.email}}":      user.Email,
		"{{user.first_name}}": user.FirstName,
		"{{user.last_name}}":  user.LastName,
	}
}
