package controllers

import (
	"github.com/devteams/devteams-server/repos"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
)

type JobsController struct {
	fx.In

	Repo *repos.JobRepo
}

func RegisterJobsController(r *utils.Router, c JobsController) {
	r.Get("/jobs/:id", c.getJob)
}

func (r *JobsController) getJob(c *fiber.Ctx) error {
	job, err := r.Repo.GetJob(c.Context(), c.Params("id"))
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(job)
}
