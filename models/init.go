package models

import (
	"context"

	"github.com/devteams/devteams-server/models/employee"
	"github.com/devteams/devteams-server/models/message"
	"github.com/devteams/devteams-server/models/project"
	"github.com/devteams/devteams-server/models/system"
	"github.com/devteams/devteams-server/models/userdata"
	"github.com/uptrace/bun"
)

func InitModelRegistrations(db *bun.DB) {
	db.RegisterModel((*project.TeamToDeveloper)(nil))
	db.RegisterModel((*message.CompletedTasksToTask)(nil))
}

// CreateSchema creates every table that is missing. Columns, unique
// constraints and nullability come from the bun tags on the models.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*employee.Developer)(nil),
		(*employee.ProjectManager)(nil),
		(*project.Team)(nil),
		(*project.TeamToDeveloper)(nil),
		(*userdata.StaffRole)(nil),
		(*userdata.User)(nil),
		(*userdata.Profile)(nil),
		(*message.Task)(nil),
		(*message.CompletedTasks)(nil),
		(*message.CompletedTasksToTask)(nil),
		(*system.Job)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
