package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RamirezDiego7/ligatec/config"
	_ "github.com/RamirezDiego7/ligatec/docs"
	"github.com/RamirezDiego7/ligatec/internal/league"
	"github.com/RamirezDiego7/ligatec/internal/match"
	"github.com/RamirezDiego7/ligatec/internal/team"
	"github.com/RamirezDiego7/ligatec/internal/user"
	"github.com/RamirezDiego7/ligatec/routes"
)

// @title LigaTEC REST API
// @version 1.0
// @description Campus football league management: teams, join requests, divisions and match calendar.
// @host localhost:8088
// @BasePath /api
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := config.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{}, &user.RefreshToken{},
		&league.League{}, &league.Division{},
		&team.Team{}, &team.TeamMember{}, &team.JoinRequest{},
		&match.Match{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}
	log.Info().Msg("AutoMigrate successful")

	r := routes.SetupRoutes(cfg)

	log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("starting server")
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}
