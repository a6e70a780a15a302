package controllers

import (
	"github.com/devteams/devteams-server/models/message"
	"github.com/devteams/devteams-server/project-service/serializers"
	"github.com/devteams/devteams-server/repos"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
)

type TasksController struct {
	fx.In

	Repo       *repos.TaskRepo
	Serializer *serializers.TaskSerializer
}

func RegisterTasksController(r *utils.Router, c TasksController) {
	r.Get("/tasks", c.listTasks)
	r.Post("/tasks", c.createTask)
	r.Get("/tasks/:id", c.getTask)
	r.Put("/tasks/:id", c.updateTask(false))
	r.Patch("/tasks/:id", c.updateTask(true))
	r.Delete("/tasks/:id", c.deleteTask)

	r.Get("/completed-tasks", c.listCompleted)
	r.Post("/completed-tasks", c.createCompleted)
	r.Get("/completed-tasks/:id", c.getCompleted)
	r.Patch("/completed-tasks/:id", c.updateCompleted)
	r.Delete("/completed-tasks/:id", c.deleteCompleted)
}

func (r *TasksController) listTasks(c *fiber.Ctx) error {
	tasks, err := r.Repo.ListTasks(c.Context())
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(tasks)
}

func (r *TasksController) getTask(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	task, err := r.Repo.GetTask(c.Context(), id)
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(task)
}

func (r *TasksController) createTask(c *fiber.Ctx) error {
	input := new(serializers.TaskInput)
	if ok, err := utils.StandardBodyParse(c, r.Serializer.Validate, input); !ok {
		return err
	}

	task := new(message.Task)
	if _, err := r.Serializer.ValidateTask(c.Context(), task, input, false); err != nil {
		return standardError(c, err)
	}

	if err := r.Repo.AddTask(c.Context(), task); err != nil {
		return standardError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

func (r *TasksController) updateTask(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := standardId(c)
		if !ok {
			return err
		}

		task, err := r.Repo.GetTask(c.Context(), id)
		if err != nil {
			return standardError(c, err)
		}

		input := new(serializers.TaskInput)
		if ok, err := utils.StandardBodyParse(c, r.Serializer.Validate, input); !ok {
			return err
		}

		if _, err := r.Serializer.ValidateTask(c.Context(), task, input, partial); err != nil {
			return standardError(c, err)
		}

		if err := r.Repo.UpdateTask(c.Context(), task); err != nil {
			return standardError(c, err)
		}

		return c.JSON(task)
	}
}

func (r *TasksController) deleteTask(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	if err := r.Repo.DeleteTask(c.Context(), id); err != nil {
		return standardError(c, err)
	}

	return standardDeleted(c)
}

func (r *TasksController) listCompleted(c *fiber.Ctx) error {
	lists, err := r.Repo.ListCompleted(c.Context())
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(lists)
}

func (r *TasksController) getCompleted(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	list, err := r.Repo.GetCompleted(c.Context(), id)
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(list)
}

func (r *TasksController) createCompleted(c *fiber.Ctx) error {
	input := new(serializers.CompletedTasksInput)
	if ok, err := utils.StandardBodyParse(c, r.Serializer.Validate, input); !ok {
		return err
	}

	list := new(message.CompletedTasks)
	_, taskIds, err := r.Serializer.ValidateCompleted(c.Context(), list, input, false)
	if err != nil {
		return standardError(c, err)
	}

	created, err := r.Repo.AddCompleted(c.Context(), list, taskIds)
	if err != nil {
		return standardError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (r *TasksController) updateCompleted(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	list, err := r.Repo.GetCompleted(c.Context(), id)
	if err != nil {
		return standardError(c, err)
	}

	input := new(serializers.CompletedTasksInput)
	if ok, err := utils.StandardBodyParse(c, r.Serializer.Validate, input); !ok {
		return err
	}

	columns, taskIds, err := r.Serializer.ValidateCompleted(c.Context(), list, input, true)
	if err != nil {
		return standardError(c, err)
	}

	updated, err := r.Repo.UpdateCompleted(c.Context(), list, columns, taskIds)
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(updated)
}

func (r *TasksController) deleteCompleted(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	if err := r.Repo.DeleteCompleted(c.Context(), id); err != nil {
		return standardError(c, err)
	}

	return standardDeleted(c)
}
