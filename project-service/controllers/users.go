package controllers

import (
	"github.com/devteams/devteams-server/project-service/serializers"
	"github.com/devteams/devteams-server/project-service/tasks"
	"github.com/devteams/devteams-server/repos"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

type UsersController struct {
	fx.In

	Repo        *repos.UserRepo
	ProfileRepo *repos.ProfileRepo
	Serializer  *serializers.UserSerializer
	Dispatcher  *tasks.Dispatcher
}

type createUserResponse struct {
	serializers.UserView
	Job string `json:"job,omitempty"`
}

func RegisterUsersController(r *utils.Router, c UsersController) {
	r.Get("/users", c.listUsers)
	r.Post("/users/create", c.createUser)
	r.Get("/users/:id", c.getUser)
	r.Put("/users/:id/update", c.updateUser(false))
	r.Patch("/users/:id/update", c.updateUser(true))
	r.Delete("/users/:id/delete", c.deleteUser)
	r.Get("/users/:id/profile", c.getProfile)
}

func (r *UsersController) listUsers(c *fiber.Ctx) error {
	users, err := r.Repo.ListUsers(c.Context())
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(serializers.NewUserViews(users))
}

func (r *UsersController) getUser(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	user, err := r.Repo.GetUser(c.Context(), id)
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(serializers.NewUserView(user))
}

// createUser stores the user and queues the creation of its profile.
func (r *UsersController) createUser(c *fiber.Ctx) error {
	input := new(serializers.UserInput)
	if ok, err := standardParse(c, input); !ok {
		return err
	}

	user, err := r.Serializer.ValidateCreate(c.Context(), input)
	if err != nil {
		return standardError(c, err)
	}

	if err := r.Repo.AddUser(c.Context(), user); err != nil {
		return standardError(c, err)
	}

	jobId, err := r.Dispatcher.CreateProfile(c.Context(), user.Id)
	if err != nil {
		log.Error().Err(err).Int64("user", user.Id).Msg("Could not queue profile creation")
	}

	return c.Status(fiber.StatusCreated).JSON(createUserResponse{
		UserView: serializers.NewUserView(user),
		Job:      jobId,
	})
}

func (r *UsersController) updateUser(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := standardId(c)
		if !ok {
			return err
		}

		user, err := r.Repo.GetUser(c.Context(), id)
		if err != nil {
			return standardError(c, err)
		}

		input := new(serializers.UserInput)
		if ok, err := standardParse(c, input); !ok {
			return err
		}

		columns, err := r.Serializer.ValidateUpdate(c.Context(), user, input, partial)
		if err != nil {
			return standardError(c, err)
		}

		if err := r.Repo.UpdateUser(c.Context(), user, columns); err != nil {
			return standardError(c, err)
		}

		return c.JSON(serializers.NewUserView(user))
	}
}

func (r *UsersController) deleteUser(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	if err := r.Repo.DeleteUser(c.Context(), id); err != nil {
		return standardError(c, err)
	}

	return standardDeleted(c)
}

func (r *UsersController) getProfile(c *fiber.Ctx) error {
	id, ok, err := standardId(c)
	if !ok {
		return err
	}

	profile, err := r.ProfileRepo.GetByUser(c.Context(), id)
	if err != nil {
		return standardError(c, err)
	}

	return c.JSON(profile)
}
