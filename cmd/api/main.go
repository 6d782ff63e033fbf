package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/controle-estoque/docs"
	"github.com/jhoicas/controle-estoque/internal/application/access"
	"github.com/jhoicas/controle-estoque/internal/application/auth"
	"github.com/jhoicas/controle-estoque/internal/application/identity"
	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/application/role"
	"github.com/jhoicas/controle-estoque/internal/application/usecase"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/localstore"
	infrapdf "github.com/jhoicas/controle-estoque/internal/infrastructure/pdf"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/postgres"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/controle-estoque/internal/interfaces/http"
	"github.com/jhoicas/controle-estoque/pkg/config"
	"github.com/jhoicas/controle-estoque/pkg/logger"
)

const (
	swaggerFile = "./docs/swagger.json"
	reportTitle = "Controle de Estoque"
)

// storage repositorios del driver elegido.
type storage struct {
	tx         inventory.TxRunner
	principals repository.PrincipalRepository
	products   repository.ProductRepository
	movements  repository.MovementRepository
	suppliers  repository.SupplierRepository
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &storage{
			tx:         postgres.NewTxRunner(pool),
			principals: postgres.NewPrincipalRepository(pool),
			products:   postgres.NewProductRepository(pool),
			movements:  postgres.NewMovementRepository(pool),
			suppliers:  postgres.NewSupplierRepository(pool),
			close:      pool.Close,
		}, nil
	case config.StoreSQLite:
		lists, err := localstore.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return localStorage(localstore.NewStore(lists), log), nil
	default:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return localStorage(localstore.NewStore(localstore.NewMemoryLists()), log), nil
	}
}

func localStorage(s *localstore.Store, log *logger.Logger) *storage {
	return &storage{
		tx:         s,
		principals: s.Principals(),
		products:   s.Products(),
		movements:  s.Movements(),
		suppliers:  s.Suppliers(),
		close: func() {
			if err := s.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar almacenamiento local")
			}
		},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir almacenamiento")
	}
	defer store.close()

	identities, err := identity.NewStore(store.principals, identity.BuiltinCredentials{
		AdminPassword: cfg.Builtins.AdminPassword,
		StaffPassword: cfg.Builtins.StaffPassword,
	}, identity.Options{Logger: log})
	if err != nil {
		log.Fatal().Err(err).Msg("identity store")
	}
	if err := identities.Reload(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar usuarios")
	}

	gate, err := access.NewGate(access.DefaultRules())
	if err != nil {
		log.Fatal().Err(err).Msg("reglas de acceso")
	}

	ledger := inventory.NewService(store.tx, store.products, store.movements, store.suppliers, log)
	reports := inventory.NewReportUseCase(ledger, infrapdf.NewMarotoPDFGenerator(), xmlexport.NewMovementsExporter(), reportTitle)
	authUC := auth.NewAuthUseCase(identities, role.NewStoreResolver(identities), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Controle de Estoque API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    usecase.NewUserUseCase(identities),
		Ledger:    ledger,
		Reports:   reports,
		Gate:      gate,
		JWTSecret: cfg.JWT.Secret,
		Login:     cfg.Login,
	})
	httpRouter.RegisterStatic(app, cfg.Static)

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
