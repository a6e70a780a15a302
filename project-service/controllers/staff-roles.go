package controllers

import (
	"github.com/devteams/devteams-server/project-service/serializers"
	"github.com/devteams/devteams-server/repos"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
)

type StaffRolesController struct {
	fx.In

	Repo     *repos.StaffRoleRepo
	Validate *validator.Validate
}

func RegisterStaffRolesController(r *utils.Router, c StaffRolesController) {
	r.Get("/staff-roles", c.listRoles)
	r.Post("/staff-roles", c.createRole)
	r.Get("/staff-roles/:id", c.getRole)
	r.Delete("/staff-roles/:id", c.deleteRole)
}

func (r *StaffRolesController) listRoles(c *fiber.Ctx) error {
	roles, err := r.Repo.ListRoles(c.Context())
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(roles)
}

func (r *StaffRolesController) getRole(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	role, err := r.Repo.GetRole(c.Context(), id)
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(role)
}

func (r *StaffRolesController) createRole(c *fiber.Ctx) error {
	input := new(serializers.StaffRoleInput)
	if ok, err := utils.StandardBodyParse(c, r.Validate, input); !ok {
		return err
	}

	role, err := input.StaffRole(c.Context(), r.Repo)
	if err != nil {
		return standardError(c, err)
	}

	if err := r.Repo.AddRole(c.Context(), role); err != nil {
		return standardError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(role)
}

func (r *StaffRolesController) deleteRole(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	if err := r.Repo.DeleteRole(c.Context(), id); err != nil {
		return standardError(c, err)
	}

	return standardDeleted(c)
}
