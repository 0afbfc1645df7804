package main

import (
	"context"
	"os"
	"testing"

	"github.com/jvolf/kifu/internal/adapters/source"
	service "github.com/jvolf/kifu/internal/app"
	"github.com/jvolf/kifu/internal/config"
	"github.com/jvolf/kifu/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainComponents(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			_ = os.Setenv("KIFU_LOG_LEVEL", "debug")
			_ = os.Setenv("KIFU_K_FACTOR", "24")
			_ = os.Setenv("KIFU_GRACE_GAMES", "8")
			defer func() {
				_ = os.Unsetenv("KIFU_LOG_LEVEL")
				_ = os.Unsetenv("KIFU_K_FACTOR")
				_ = os.Unsetenv("KIFU_GRACE_GAMES")
			}()

			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg, convey.ShouldNotBeNil)
			convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			convey.So(cfg.KFactor, convey.ShouldEqual, 24)
			convey.So(cfg.GraceGames, convey.ShouldEqual, 8)
		})

		convey.Convey("When creating the service", func() {
			convey.Convey("Then it should be creatable with default options", func() {
				svc := service.New(source.NewMemory())
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And creatable from a loaded config", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				svc := service.New(source.NewMemory(), service.FromConfig(cfg))
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When checking the metrics registry", func() {
			convey.So(metrics.GetRegistry(), convey.ShouldNotBeNil)
		})
	})
}
