package main

import (
	"os"
	"strings"

	"financeiro-backend/internal/apperror"
	"financeiro-backend/internal/config"
	"financeiro-backend/internal/database"
	"financeiro-backend/internal/logger"
	"financeiro-backend/internal/report"
	"financeiro-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Error("configuração inválida")
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	for _, w := range cfg.Warnings {
		log.Warn(w)
	}

	stores, err := openStores(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("não foi possível abrir o armazenamento")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: apperror.FiberErrorHandler,
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.Middleware(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(corsOrigins, ","),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET,POST,PATCH,DELETE,OPTIONS",
		ExposeHeaders: "Content-Disposition",
	}))

	routes.Setup(app, routes.Deps{
		Stores:    stores,
		JWTSecret: cfg.JWTSecret,
		Report:    report.Options{Dir: cfg.ReportDir},
	})

	sweeper := report.NewSweeper(cfg.ReportDir, cfg.ReportMaxAge, log)
	sweeper.Sweep()
	stopSweeper, err := sweeper.Start(cfg.ReportSweepMinutes)
	if err != nil {
		log.WithError(err).Fatal("não foi possível agendar a limpeza de relatórios")
	}
	defer stopSweeper()

	log.WithFields(logrus.Fields{
		"port":  cfg.HTTPPort,
		"store": cfg.StoreDriver,
	}).Info("servidor iniciado")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.WithError(err).Fatal("servidor encerrado")
	}
}

func openStores(cfg *config.Config, log *logrus.Logger) (routes.Stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn("STORE_DRIVER=memory: dados não são persistidos")
		return routes.NewMemoryStores(), nil
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		return routes.Stores{}, err
	}
	return routes.NewGormStores(db), nil
}
