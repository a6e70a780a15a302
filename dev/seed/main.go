package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/devteams/devteams-server/models"
	"github.com/devteams/devteams-server/models/userdata"
	"github.com/devteams/devteams-server/project-service/config"
	"github.com/devteams/devteams-server/repos"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/rs/zerolog/log"
)

// Creates the schema, an admin staff role and an admin user for local work.
func main() {
	username := flag.String("username", "admin", "Admin username")
	email := flag.String("email", "admin@localhost", "Admin email")
	password := flag.String("password", "admin1234", "Admin password")

	cfg, _ := config.Parse()
	utils.ConfigureLogger(config.LogConfig(cfg))

	db, err := utils.ProvidePostgres(config.PostgresConfig(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to postgres")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	models.InitModelRegistrations(db)
	if err := models.CreateSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Could not create schema")
	}

	roles := repos.NewStaffRoleRepo(db)
	role := &userdata.StaffRole{Name: "admin", Permissions: []string{"*"}}
	if err := roles.AddRole(ctx, role); err != nil && !errors.Is(err, repos.ErrConflict) {
		log.Fatal().Err(err).Msg("Could not add admin role")
	}

	users := repos.NewUserRepo(db)
	if _, err := users.GetUserByUsername(ctx, *username); err == nil {
		log.Info().Str("username", *username).Msg("Admin already exists")
		return
	}

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not hash password")
	}

	admin := &userdata.User{
		Username:  *username,
		Email:     *email,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}
	if role.Id > 0 {
		admin.StaffRoleId = &role.Id
	}
	if err := users.AddUser(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("Could not add admin")
	}

	if _, err := repos.NewProfileRepo(db).CreateForUser(ctx, admin.Id); err != nil {
		log.Fatal().Err(err).Msg("Could not add admin profile")
	}

	log.Info().Str("username", admin.Username).Int64("id", admin.Id).Msg("Admin created")
}
