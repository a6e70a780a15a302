package main

import (
	"context"
	"time"

	"github.com/devteams/devteams-server/models"
	"github.com/devteams/devteams-server/project-service/config"
	"github.com/devteams/devteams-server/project-service/controllers"
	"github.com/devteams/devteams-server/project-service/serializers"
	"github.com/devteams/devteams-server/project-service/tasks"
	"github.com/devteams/devteams-server/repos"
	"github.com/devteams/devteams-server/server-go"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"go.uber.org/fx"
)

func main() {

	opts := []fx.Option{}
	opts = append(opts, provideOptions()...)
	opts = append(opts, fx.Invoke(run))

	app := fx.New(opts...)

	app.Run()
}

func provideOptions() []fx.Option {
	return []fx.Option{
		fx.Provide(config.Parse),
		fx.Provide(config.LogConfig),
		fx.Invoke(utils.ConfigureLogger),
		fx.Provide(config.ServerConfig),
		fx.Provide(config.PostgresConfig),
		fx.Provide(config.RedisConfig),
		fx.Provide(utils.ProvidePostgres),
		fx.Provide(utils.ProvideRedis),
		fx.Provide(server.CreateServer),
		fx.Provide(utils.GetDefaultRouter),
		fx.Provide(utils.NewValidator),
		fx.Invoke(models.InitModelRegistrations),
		fx.Invoke(migrate),
		fx.Provide(repos.NewTeamRepo),
		fx.Provide(repos.NewEmployeeRepo),
		fx.Provide(repos.NewUserRepo),
		fx.Provide(repos.NewProfileRepo),
		fx.Provide(repos.NewStaffRoleRepo),
		fx.Provide(repos.NewTaskRepo),
		fx.Provide(repos.NewJobRepo),
		fx.Provide(serializers.NewTeamSerializer),
		fx.Provide(serializers.NewUserSerializer),
		fx.Provide(serializers.NewTaskSerializer),
		fx.Provide(tasks.ProvideMailer),
		fx.Provide(tasks.ProvideWorker),
		fx.Provide(tasks.ProvideQueue),
		fx.Provide(tasks.NewDispatcher),
		fx.Invoke(controllers.RegisterTeamsController),
		fx.Invoke(controllers.RegisterEmployeesController),
		fx.Invoke(controllers.RegisterUsersController),
		fx.Invoke(controllers.RegisterStaffRolesController),
		fx.Invoke(controllers.RegisterTasksController),
		fx.Invoke(controllers.RegisterJobsController),
	}
}

func migrate(db *bun.DB, config *config.Config) error {
	if !config.AutoMigrate {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := models.CreateSchema(ctx, db); err != nil {
		return err
	}

	log.Info().Msg("Schema up to date")
	return nil
}

func run(app *fiber.App, config *config.Config, db *bun.DB, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			errChan := make(chan error)

			go func() {
				errChan <- app.Listen(config.Port)
			}()

			select {
			case err := <-errChan:
				return err
			case <-time.After(100 * time.Millisecond):
				return nil
			}
		},
		OnStop: func(ctx context.Context) error {
			if err := app.Shutdown(); err != nil {
				return err
			}
			return db.Close()
		},
	})
}
