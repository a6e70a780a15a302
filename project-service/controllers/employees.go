package controllers

import (
	"github.com/devteams/devteams-server/models/employee"
	"github.com/devteams/devteams-server/project-service/serializers"
	"github.com/devteams/devteams-server/repos"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
)

type EmployeesController struct {
	fx.In

	Repo     *repos.EmployeeRepo
	Validate *validator.Validate
}

func RegisterEmployeesController(r *utils.Router, c EmployeesController) {
	r.Get("/developers", c.listDevelopers)
	r.Post("/developers", c.createDeveloper)
	r.Get("/developers/:id", c.getDeveloper)
	r.Put("/developers/:id", c.updateDeveloper(false))
	r.Patch("/developers/:id", c.updateDeveloper(true))
	r.Delete("/developers/:id", c.deleteDeveloper)

	r.Get("/project-managers", c.listProjectManagers)
	r.Post("/project-managers", c.createProjectManager)
	r.Get("/project-managers/:id", c.getProjectManager)
	r.Put("/project-managers/:id", c.updateProjectManager(false))
	r.Patch("/project-managers/:id", c.updateProjectManager(true))
	r.Delete("/project-managers/:id", c.deleteProjectManager)
}

func (r *EmployeesController) listDevelopers(c *fiber.Ctx) error {
	developers, err := r.Repo.ListDevelopers(c.Context())
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(developers)
}

func (r *EmployeesController) getDeveloper(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	developer, err := r.Repo.GetDeveloper(c.Context(), id)
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(developer)
}

func (r *EmployeesController) createDeveloper(c *fiber.Ctx) error {
	input := new(serializers.EmployeeInput)
	if ok, err := standardParse(c, input); !ok {
		return err
	}

	developer := new(employee.Developer)
	if err := input.Developer(r.Validate, developer, false); err != nil {
		return standardError(c, err)
	}

	if err := r.Repo.AddDeveloper(c.Context(), developer); err != nil {
		return standardError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(developer)
}

func (r *EmployeesController) updateDeveloper(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := standardId(c)
		if !ok {
			return err
		}

		developer, err := r.Repo.GetDeveloper(c.Context(), id)
		if err != nil {
			return standardError(c, err)
		}

		input := new(serializers.EmployeeInput)
		if ok, err := standardParse(c, input); !ok {
			return err
		}

		if err := input.Developer(r.Validate, developer, partial); err != nil {
			return standardError(c, err)
		}

		if err := r.Repo.UpdateDeveloper(c.Context(), developer); err != nil {
			return standardError(c, err)
		}

		return c.JSON(developer)
	}
}

func (r *EmployeesController) deleteDeveloper(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	if err := r.Repo.DeleteDeveloper(c.Context(), id); err != nil {
		return standardError(c, err)
	}

	return standardDeleted(c)
}

func (r *EmployeesController) listProjectManagers(c *fiber.Ctx) error {
	managers, err := r.Repo.ListProjectManagers(c.Context())
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(managers)
}

func (r *EmployeesController) getProjectManager(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	manager, err := r.Repo.GetProjectManager(c.Context(), id)
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(manager)
}

func (r *EmployeesController) createProjectManager(c *fiber.Ctx) error {
	input := new(serializers.EmployeeInput)
	if ok, err := standardParse(c, input); !ok {
		return err
	}

	manager := new(employee.ProjectManager)
	if err := input.ProjectManager(r.Validate, manager, false); err != nil {
		return standardError(c, err)
	}

	if err := r.Repo.AddProjectManager(c.Context(), manager); err != nil {
		return standardError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(manager)
}

func (r *EmployeesController) updateProjectManager(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := standardId(c)
		if !ok {
			return err
		}

		manager, err := r.Repo.GetProjectManager(c.Context(), id)
		if err != nil {
			return standardError(c, err)
		}

		input := new(serializers.EmployeeInput)
		if ok, err := standardParse(c, input); !ok {
			return err
		}

		if err := input.ProjectManager(r.Validate, manager, partial); err != nil {
			return standardError(c, err)
		}

		if err := r.Repo.UpdateProjectManager(c.Context(), manager); err != nil {
			return standardError(c, err)
		}

		return c.JSON(manager)
	}
}

func (r *EmployeesController) deleteProjectManager(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	if err := r.Repo.DeleteProjectManager(c.Context(), id); err != nil {
		return standardError(c, err)
	}

	return standardDeleted(c)
}
