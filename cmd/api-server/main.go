package main

import (
	"Forum/config"
	"Forum/pkg/database"
	"Forum/pkg/log"
	"Forum/pkg/server"
	"Forum/pkg/snowflake"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// .env 只在本地开发时存在
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "forum topics, comments and moderation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   fmt.Sprintf("configs/config.%s.yaml", env),
				EnvVars: []string{"APP_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http and websocket server",
				Action: func(ctx *cli.Context) error {
					cfg := load(ctx)
					return server.Run(ctx, InitServer(cfg))
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update tables",
				Action: func(ctx *cli.Context) error {
					cfg := load(ctx)
					if err := database.Migrate(database.NewDB(cfg)); err != nil {
						return fmt.Errorf("migrate: %w", err)
					}
					log.L.Info("migrate done")
					return nil
				},
			},
			{
				Name:  "import-legacy",
				Usage: "copy comentario_topico rows into comentarios_topicos",
				Action: func(ctx *cli.Context) error {
					cfg := load(ctx)
					n, err := InitLegacyImport(cfg).Import(ctx.Context)
					if err != nil {
						return err
					}
					log.L.Info("import-legacy done", zap.Int64("imported", n))
					return nil
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}

func load(ctx *cli.Context) *config.Config {
	cfg := config.New(ctx.String("config"))
	if cfg.Debug() {
		log.SetLevel(zapcore.DebugLevel)
	}
	if err := snowflake.SetNode(cfg.App.Node); err != nil {
		log.L.Fatal("snowflake node", zap.Int64("node", cfg.App.Node), zap.Error(err))
	}
	return cfg
}
