package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/account-service/internal/application/account"
	"github.com/jhoicas/account-service/internal/application/audit"
	"github.com/jhoicas/account-service/internal/application/auth"
	"github.com/jhoicas/account-service/internal/application/payroll"
	"github.com/jhoicas/account-service/internal/domain/password"
	"github.com/jhoicas/account-service/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/account-service/internal/interfaces/http"
	"github.com/jhoicas/account-service/pkg/config"
	"github.com/jhoicas/account-service/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	employeeRepo := postgres.NewEmployeeRepository(pool)
	eventRepo := postgres.NewSecurityEventRepository(pool)
	payrollRepo := postgres.NewPayrollRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	policy := password.NewPolicy(password.WithCost(cfg.Auth.BcryptCost))
	auditSvc := audit.NewService(eventRepo, log.Component("audit"))
	accountSvc := account.NewService(txRunner, employeeRepo, policy, auditSvc)
	gateway := auth.NewGateway(accountSvc, policy, auditSvc, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	payrollUC := payroll.NewUseCase(payrollRepo, employeeRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AccountSvc: accountSvc,
		AuditSvc:   auditSvc,
		Gateway:    gateway,
		PayrollUC:  payrollUC,
		Employees:  employeeRepo,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
