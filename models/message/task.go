package message

import (
	"time"

	"github.com/uptrace/bun"
)

type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:task"`

	Id        int64     `bun:",pk,autoincrement" json:"pk"`
	Title     string    `bun:",notnull" json:"title"`
	Text      string    `json:"text"`
	SenderId  *int64    `json:"sender"`
	CreatedAt time.Time `bun:",notnull" json:"created_at"`
}

type CompletedTasks struct {
	bun.BaseModel `bun:"table:completed_tasks,alias:completed_tasks"`

	Id        int64     `bun:",pk,autoincrement" json:"pk"`
	Title     string    `bun:",notnull" json:"title"`
	Text      string    `json:"text"`
	SenderId  *int64    `json:"sender"`
	CreatedAt time.Time `bun:",notnull" json:"created_at"`
	Checked   bool      `bun:",notnull" json:"checked"`
	Tasks     []Task    `bun:"m2m:completed_tasks_tasks,join:CompletedTasks=Task" json:"tasks"`
}

type CompletedTasksToTask struct {
	bun.BaseModel `bun:"table:completed_tasks_tasks,alias:completed_tasks_task"`

	CompletedTasksId int64           `bun:",pk"`
	CompletedTasks   *CompletedTasks `bun:"rel:belongs-to,join:completed_tasks_id=id"`
	TaskId           int64           `bun:",pk"`
	Task             *Task           `bun:"rel:belongs-to,join:task_id=id"`
}
