package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "club-sync/internal/common/api"
	"club-sync/internal/config"
	"club-sync/internal/database"
	"club-sync/internal/features/analytics"
	"club-sync/internal/features/auth"
	"club-sync/internal/features/event"
	"club-sync/internal/features/group"
	"club-sync/internal/features/member"
	"club-sync/internal/features/scheduler"
	sync_feature "club-sync/internal/features/sync"
	"club-sync/internal/features/system"
	"club-sync/internal/logger"
	"club-sync/internal/middleware"
	"club-sync/internal/spond"
	"club-sync/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(
	lc fx.Lifecycle,
	admins auth.AdminRepository,
	events event.EventRepository,
	groups group.GroupRepository,
	members member.MemberRepository,
	runs sync_feature.SyncRepository,
	zlog *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				repos := map[string]interface {
					EnsureIndexes(ctx context.Context) error
				}{
					"admins":    admins,
					"events":    events,
					"groups":    groups,
					"members":   members,
					"sync_runs": runs,
				}
				for name, repo := range repos {
					if err := repo.EnsureIndexes(ctx); err != nil {
						zlog.Warn("failed to ensure indexes",
							zap.String("collection", name),
							zap.Error(err))
					}
				}
			}()
			return nil
		},
	})
}

// StartScheduler ties the periodic sync scheduler to the app lifecycle.
func StartScheduler(lc fx.Lifecycle, sched scheduler.SchedulerService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sched.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopped := sched.Stop()
			select {
			case <-stopped.Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Spond API client
			func(cfg *config.Config) spond.Api { return spond.NewClient(cfg) },

			// Per-record transaction scope for sync writes
			func(db *database.MongodbDB) sync_feature.TxnFunc { return db.InTxn },

			// Initialize Repository
			auth.NewAdminRepository,
			event.NewEventRepository,
			group.NewGroupRepository,
			member.NewMemberRepository,
			sync_feature.NewSyncRepository,

			// Initialize Service
			auth.NewAuthService,
			event.NewEventService,
			group.NewGroupService,
			member.NewMemberService,
			sync_feature.NewSyncService,
			scheduler.NewSchedulerService,
			analytics.NewAnalyticsService,

			// Initialize Controller
			auth.NewAuthController,
			event.NewEventController,
			group.NewGroupController,
			member.NewMemberController,
			sync_feature.NewSyncController,
			scheduler.NewSchedulerController,
			analytics.NewAnalyticsController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(event.NewEventApi),
			AsRoute(group.NewGroupApi),
			AsRoute(member.NewMemberApi),
			AsRoute(sync_feature.NewSyncApi),
			AsRoute(scheduler.NewSchedulerApi),
			AsRoute(analytics.NewAnalyticsApi),
			AsRoute(system.NewSystemApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			StartScheduler,
			InitializeIndexes,
		),
	)

	app.Run()
}
