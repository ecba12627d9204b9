package di

import (
	"go.uber.org/fx"

	"github.com/kitkatcodeskitty/lms-migrate/internal/app"
	"github.com/kitkatcodeskitty/lms-migrate/internal/config"
	"github.com/kitkatcodeskitty/lms-migrate/internal/logger"
	"github.com/kitkatcodeskitty/lms-migrate/internal/metrics"
	"github.com/kitkatcodeskitty/lms-migrate/internal/migration"
	"github.com/kitkatcodeskitty/lms-migrate/internal/pkg/auth"
	"github.com/kitkatcodeskitty/lms-migrate/internal/server/http/handlers"
	"github.com/kitkatcodeskitty/lms-migrate/internal/server/http/router"
	mongostore "github.com/kitkatcodeskitty/lms-migrate/internal/storage/mongo"
	redisstore "github.com/kitkatcodeskitty/lms-migrate/internal/storage/redis"
	"github.com/kitkatcodeskitty/lms-migrate/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		mongostore.Module,
		redisstore.Module,
		metrics.Module,
		migration.Module,
		usecase.Module,
		fx.Provide(
			func(s *mongostore.Storage) app.HealthChecker { return s },
			func(m *metrics.Metrics) migration.Recorder { return m },
			func(f *app.AdminFacade) handlers.AdminFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
