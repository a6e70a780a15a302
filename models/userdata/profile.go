package userdata

import (
	"time"

	"github.com/uptrace/bun"
)

// Profile is created asynchronously after its user.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:profile"`

	Id        int64     `bun:",pk,autoincrement" json:"pk"`
	UserId    int64     `bun:",notnull,unique" json:"user"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `bun:",notnull" json:"created_at"`
}
