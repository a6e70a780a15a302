package controllers

import (
	"github.com/devteams/devteams-server/project-service/serializers"
	"github.com/devteams/devteams-server/repos"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
)

type TeamsController struct {
	fx.In

	Repo       *repos.TeamRepo
	Serializer *serializers.TeamSerializer
}

func RegisterTeamsController(r *utils.Router, c TeamsController) {
	r.Get("/teams", c.listTeams)
	r.Post("/teams/create", c.createTeam)
	r.Get("/teams/:id", c.getTeam)
	r.Put("/teams/:id/update", c.updateTeam(false))
	r.Patch("/teams/:id/update", c.updateTeam(true))
	r.Delete("/teams/:id/delete", c.deleteTeam)
}

func (r *TeamsController) listTeams(c *fiber.Ctx) error {
	teams, err := r.Repo.ListTeams(c.Context())
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(serializers.NewTeamViews(teams))
}

func (r *TeamsController) getTeam(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	team, err := r.Repo.GetTeam(c.Context(), id)
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(serializers.NewTeamView(team))
}

func (r *TeamsController) createTeam(c *fiber.Ctx) error {
	input := new(serializers.TeamInput)
	if ok, err := standardParse(c, input); !ok {
		return err
	}

	name, update, err := r.Serializer.ValidateCreate(c.Context(), input)
	if err != nil {
		return standardError(c, err)
	}

	team, err := r.Repo.CreateTeam(c.Context(), name, update)
	if err != nil {
		return standardError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(serializers.NewTeamView(team))
}

func (r *TeamsController) updateTeam(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := standardId(c)
		if !ok {
			return err
		}

		if _, err := r.Repo.GetTeam(c.Context(), id); err != nil {
			return standardError(c, err)
		}

		input := new(serializers.TeamInput)
		if ok, err := standardParse(c, input); !ok {
			return err
		}

		name, update, err := r.Serializer.ValidateUpdate(c.Context(), id, input, partial)
		if err != nil {
			return standardError(c, err)
		}

		team, err := r.Repo.UpdateTeam(c.Context(), id, name, update)
		if err != nil {
			return standardError(c, err)
		}

		return c.JSON(serializers.NewTeamView(team))
	}
}

func (r *TeamsController) deleteTeam(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	if err := r.Repo.DeleteTeam(c.Context(), id); err != nil {
		return standardError(c, err)
	}

	return standardDeleted(c)
}
