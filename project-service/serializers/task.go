package serializers

import (
	"context"
	"errors"

	"github.com/devteams/devteams-server/models/message"
	models "github.com/devteams/devteams-server/models/userdata"
	"github.com/devteams/devteams-server/repos"
	"github.com/go-playground/validator/v10"
)

type TaskInput struct {
	Title  *string `json:"title" validate:"omitempty,min=1,max=250"`
	Text   *string `json:"text" validate:"omitempty,max=10000"`
	Sender *int64  `json:"sender" validate:"omitempty,gt=0"`
}

type CompletedTasksInput struct {
	TaskInput
	Checked *bool    `json:"checked"`
	Tasks   *[]int64 `json:"tasks" validate:"omitempty,dive,gt=0"`
}

type SenderLookup interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

type TaskLookup interface {
	TasksByIds(ctx context.Context, ids []int64) ([]message.Task, error)
}

type TaskSerializer struct {
	Validate *validator.Validate
	Users    SenderLookup
	Tasks    TaskLookup
}

func NewTaskSerializer(validate *validator.Validate, users *repos.UserRepo, tasks *repos.TaskRepo) *TaskSerializer {
	return &TaskSerializer{
		Validate: validate,
		Users:    users,
		Tasks:    tasks,
	}
}

// ValidateTask writes input onto task and returns the changed columns.
func (s *TaskSerializer) ValidateTask(ctx context.Context, task *message.Task, input *TaskInput, partial bool) ([]string, error) {
	verr := structErrors(s.Validate, input)
	columns, err := s.applyTask(ctx, &task.Title, &task.Text, &task.SenderId, input, partial, verr)
	if err != nil {
		return nil, err
	}
	return columns, verr.orNil()
}

// ValidateCompleted writes input onto list. The returned task ids are nil
// when the list of tasks was not sent.
func (s *TaskSerializer) ValidateCompleted(ctx context.Context, list *message.CompletedTasks, input *CompletedTasksInput, partial bool) ([]string, []int64, error) {
	verr := structErrors(s.Validate, input)

	columns, err := s.applyTask(ctx, &list.Title, &list.Text, &list.SenderId, &input.TaskInput, partial, verr)
	if err != nil {
		return nil, nil, err
	}

	if input.Checked != nil {
		list.Checked = *input.Checked
		columns = append(columns, "checked")
	}

	var taskIds []int64
	if input.Tasks != nil {
		taskIds = make([]int64, 0, len(*input.Tasks))

		found, err := s.Tasks.TasksByIds(ctx, *input.Tasks)
		if err != nil {
			return nil, nil, err
		}
		exists := make(map[int64]bool, len(found))
		for _, t := range found {
			exists[t.Id] = true
		}

		for _, id := range *input.Tasks {
			if !exists[id] {
				if id > 0 {
					verr.notFound("tasks", id)
				}
				continue
			}
			taskIds = append(taskIds, id)
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, nil, err
	}
	return columns, taskIds, nil
}

func (s *TaskSerializer) applyTask(ctx context.Context, title, text *string, sender **int64, input *TaskInput, partial bool, verr *ValidationError) ([]string, error) {
	columns := make([]string, 0)

	if input.Title == nil && !partial {
		verr.add("title", TagRequired, "")
	}

	if input.Title != nil {
		*title = *input.Title
		columns = append(columns, "title")
	}

	if input.Text != nil {
		*text = *input.Text
		columns = append(columns, "text")
	}

	if input.Sender != nil && *input.Sender > 0 {
		_, err := s.Users.GetUser(ctx, *input.Sender)
		switch {
		case errors.Is(err, repos.ErrNotFound):
			verr.notFound("sender", *input.Sender)
		case err != nil:
			return nil, err
		default:
			id := *input.Sender
			*sender = &id
			columns = append(columns, "sender_id")
		}
	}

	return columns, nil
}

type StaffRoleInput struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Permissions []string `json:"permissions" validate:"dive,min=1,max=100"`
}

type RoleNames interface {
	ListRoles(ctx context.Context) ([]models.StaffRole, error)
}

// StaffRole checks that the name is free. The tags on input are expected to
// have been validated already.
func (input *StaffRoleInput) StaffRole(ctx context.Context, roles RoleNames) (*models.StaffRole, error) {
	verr := &ValidationError{}

	existing, err := roles.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	for _, role := range existing {
		if role.Name == input.Name {
			verr.add("name", TagUnique, input.Name)
			break
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}

	permissions := input.Permissions
	if permissions == nil {
		permissions = make([]string, 0)
	}

	return &models.StaffRole{
		Name:        input.Name,
		Permissions: permissions,
	}, nil
}
