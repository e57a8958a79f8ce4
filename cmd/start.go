package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"schema-sync/core/loader"
	"schema-sync/core/logger"
	"schema-sync/core/middleware/auth"
	"schema-sync/core/middleware/rayid"
	"schema-sync/feature/apply"
	"schema-sync/feature/compare"
	"schema-sync/feature/export"
	"schema-sync/feature/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the schema-sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		d, err := setup(cmd.Context())
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := d.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             d.cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager(logg)
		exporter := d.exporter()
		mgr.Register(export.NewFeature(exporter, d.store))
		mgr.Register(validation.NewFeature(d.validator()))
		mgr.Register(apply.NewFeature(d.applier()))
		mgr.Register(compare.NewFeature(compare.NewService(exporter, logg)))

		// RayID first so every later log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{ApiKey: d.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", d.cfg.Server.Port))
			if err := app.Listen(":" + d.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
