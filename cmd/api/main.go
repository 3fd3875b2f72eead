package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"salonpos/internal/config"
	"salonpos/internal/database"
	"salonpos/internal/middleware"
	"salonpos/internal/modules/auth"
	"salonpos/internal/modules/catalog"
	"salonpos/internal/modules/notification"
	"salonpos/internal/modules/seats"
	"salonpos/internal/modules/stock"
	"salonpos/internal/modules/walkin"
	jwtsvc "salonpos/internal/pkg/jwt"
	"salonpos/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DSN)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	seatRepo := repository.NewSeatRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	productRepo := repository.NewProductRepository(db)
	walkinRepo := repository.NewWalkinRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := notification.NewHub()
	defer hub.Close()
	notifService := notification.NewService(notifRepo, userRepo, hub)
	notifHandler := notification.NewHandler(notifService, hub)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(categoryRepo, serviceRepo, productRepo, seatRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	stockLedger := stock.NewLedger(productRepo, notifService)
	stockHandler := stock.NewHandler(stockLedger)

	seatRegistry := seats.NewRegistry(seatRepo, branchRepo, notifService)
	seatHandler := seats.NewHandler(seatRegistry)

	walkinService := walkin.NewService(
		walkinRepo,
		catalogService,
		stockLedger,
		seatRegistry,
		userRepo,
		branchRepo,
		notifService,
	)
	walkinHandler := walkin.NewHandler(walkinService)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterReadRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			walkinHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
			seatHandler.RegisterReadRoutes(protected)

			managed := protected.Group("/")
			managed.Use(middleware.ManagerOrAdmin())
			{
				stockHandler.RegisterRoutes(managed)
				seatHandler.RegisterRoutes(managed)
			}

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				authHandler.RegisterAdminRoutes(admin)
				catalogHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	log.Printf("listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
