package controllers

import (
	"errors"

	"github.com/devteams/devteams-server/membership"
	"github.com/devteams/devteams-server/project-service/serializers"
	"github.com/devteams/devteams-server/repos"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// standardError writes the response for an error coming out of a serializer
// or a repo.
func standardError(c *fiber.Ctx, err error) error {
	var verr *serializers.ValidationError

	switch {
	case errors.As(err, &verr):
		return utils.StandardValidationError(c, verr.Errors)
	case errors.Is(err, repos.ErrNotFound):
		return utils.StandardNotFound(c)
	case errors.Is(err, repos.ErrTeamNameTaken),
		errors.Is(err, repos.ErrConflict),
		errors.Is(err, membership.ErrMemberGone):
		return utils.StandardConflict(c, err)
	default:
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("Request failed")
		return utils.StandardInternalError(c, err)
	}
}

// standardParse reads the body into input. ok is false when the response has
// already been written.
func standardParse(c *fiber.Ctx, input interface{}) (bool, error) {
	if err := c.BodyParser(input); err != nil {
		return false, utils.StandardCouldNotParse(c)
	}
	return true, nil
}

func standardId(c *fiber.Ctx) (int64, bool, error) {
	id, ok := utils.ParamId(c)
	if !ok {
		return 0, false, utils.StandardNotFound(c)
	}
	return id, true, nil
}

func standardDeleted(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
