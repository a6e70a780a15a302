package system

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	JobQueued = "queued"
	JobDone   = "done"
	JobFailed = "failed"
)

type Job struct {
	bun.BaseModel `bun:"table:jobs,alias:job"`

	Id        string              `bun:",pk" json:"id"`
	Service   string              `bun:",notnull" json:"service"`
	Item      string              `bun:",notnull" json:"item"`
	CreatedAt time.Time           `bun:",notnull" json:"created_at"`
	UpdatedAt time.Time           `bun:",notnull" json:"updated_at"`
	Status    string              `bun:",notnull" json:"status"`
	Details   []map[string]string `bun:",type:jsonb" json:"details"`
}
