package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mingu600/tapu-simu/internal/api"
	"github.com/mingu600/tapu-simu/internal/config"
	"github.com/mingu600/tapu-simu/internal/constants"
	"github.com/mingu600/tapu-simu/internal/dex"
	"github.com/mingu600/tapu-simu/internal/logging"
	"github.com/mingu600/tapu-simu/internal/service"
	"github.com/mingu600/tapu-simu/internal/storage"
)

func main() {
	env, err := config.ParseEnv()
	if err != nil {
		logging.Fatal("Invalid environment configuration", err, nil)
	}

	// Load game-data configuration (required). The engine has no built-in
	// move or species tables; everything comes from the config file.
	cfg, err := config.LoadConfig(env.ConfigPath)
	if err != nil {
		logging.Fatal("Missing or invalid game-data configuration", err, logging.Fields{
			"config_path": env.ConfigPath,
			"hint":        "point " + constants.EnvConfigPath + " at a tapu_config.json with 'move_list' and 'species_list' arrays and an optional server.address",
		})
	}
	d := dex.New(cfg.Moves, cfg.Species)

	db, err := storage.OpenAndMigrate(env.DBPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{
			"db_path": env.DBPath,
			"hint":    "set " + constants.EnvDBPath + " to a writable sqlite file path",
		})
	}
	repo := storage.NewSQLiteRepository(db)

	svc := service.NewBattleService(repo)
	// Background sweeper: drop sessions idle beyond the TTL so abandoned
	// battles do not accumulate forever.
	stopSweeper := svc.StartSessionSweeper(10*time.Minute, env.SessionTTL)
	defer stopSweeper()

	handler := api.NewBattleHandler(svc, d)

	router := gin.Default()
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.POST(constants.RouteBattles, handler.CreateBattle)
		apiRoutes.GET(constants.RouteBattleByID, handler.GetBattle)
		apiRoutes.GET(constants.RouteBattleLegalOptions, handler.LegalOptions)
		apiRoutes.POST(constants.RouteBattleInstructions, handler.GenerateInstructions)
		apiRoutes.POST(constants.RouteBattleApply, handler.ApplyInstructions)
		apiRoutes.GET(constants.RouteBattleState, handler.GetState)
		apiRoutes.PUT(constants.RouteBattleState, handler.ReplaceState)
		apiRoutes.GET(constants.RouteBattleWS, handler.WatchBattle)

		apiRoutes.GET(constants.RoutePokemon, handler.ListPokemon)
		apiRoutes.POST(constants.RoutePokemonCreateCustom, handler.CreateCustomPokemon)
		apiRoutes.GET(constants.RouteMoves, handler.ListMoves)
		apiRoutes.GET(constants.RouteVersion, api.Version)
	}

	addr := cfg.ServerAddress
	if env.Addr != "" {
		addr = env.Addr
	}
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
