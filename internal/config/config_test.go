package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jvolf/kifu/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	convey.Convey("Given no configuration sources", t, func() {
		cfg, err := config.Load(context.Background())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then the engine defaults apply", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.KFactor, convey.ShouldEqual, 32)
			convey.So(cfg.ProvisionalKFactor, convey.ShouldEqual, 64)
			convey.So(cfg.InitialRating, convey.ShouldEqual, 1500)
			convey.So(cfg.GraceGames, convey.ShouldEqual, 12)
			convey.So(cfg.InactivityMonths, convey.ShouldEqual, 24)
			convey.So(cfg.ProtectionBand, convey.ShouldEqual, 100)
			convey.So(cfg.PromotionBonus, convey.ShouldBeTrue)
			convey.So(cfg.MatchTag, convey.ShouldBeEmpty)
			convey.So(cfg.International, convey.ShouldBeFalse)
		})
	})
}

func TestEnvOverrides(t *testing.T) {
	convey.Convey("Given environment overrides", t, func() {
		_ = os.Setenv("KIFU_K_FACTOR", "24")
		_ = os.Setenv("KIFU_MATCH_TAG", "SWA")
		_ = os.Setenv("KIFU_INTERNATIONAL", "true")
		defer func() {
			_ = os.Unsetenv("KIFU_K_FACTOR")
			_ = os.Unsetenv("KIFU_MATCH_TAG")
			_ = os.Unsetenv("KIFU_INTERNATIONAL")
		}()

		cfg, err := config.Load(context.Background())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then env values win over defaults", func() {
			convey.So(cfg.KFactor, convey.ShouldEqual, 24)
			convey.So(cfg.MatchTag, convey.ShouldEqual, "SWA")
			convey.So(cfg.International, convey.ShouldBeTrue)
		})

		convey.Convey("And untouched fields keep their defaults", func() {
			convey.So(cfg.GraceGames, convey.ShouldEqual, 12)
		})
	})
}

func TestFileLayer(t *testing.T) {
	convey.Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "kifu.yaml")
		yaml := "k_factor: 20\ngrace_games: 6\nlog_level: debug\n"
		convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
		_ = os.Setenv("KIFU_CONFIG", path)
		defer func() { _ = os.Unsetenv("KIFU_CONFIG") }()

		convey.Convey("Then file values override defaults", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.KFactor, convey.ShouldEqual, 20)
			convey.So(cfg.GraceGames, convey.ShouldEqual, 6)
			convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
		})

		convey.Convey("And env still wins over the file", func() {
			_ = os.Setenv("KIFU_K_FACTOR", "28")
			defer func() { _ = os.Unsetenv("KIFU_K_FACTOR") }()

			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.KFactor, convey.ShouldEqual, 28)
			convey.So(cfg.GraceGames, convey.ShouldEqual, 6)
		})
	})

	convey.Convey("Given a missing config file", t, func() {
		_ = os.Setenv("KIFU_CONFIG", "/nonexistent/kifu.yaml")
		defer func() { _ = os.Unsetenv("KIFU_CONFIG") }()

		_, err := config.Load(context.Background())
		convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
	})
}

func TestValidation(t *testing.T) {
	convey.Convey("Given out-of-range values", t, func() {
		cases := map[string]string{
			"KIFU_K_FACTOR":             "0",
			"KIFU_PROVISIONAL_K_FACTOR": "-1",
			"KIFU_INITIAL_RATING":       "0",
			"KIFU_GRACE_GAMES":          "0",
			"KIFU_INACTIVITY_MONTHS":    "0",
			"KIFU_PROTECTION_BAND":      "-5",
		}
		for key, val := range cases {
			_ = os.Setenv(key, val)
			_, err := config.Load(context.Background())
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			_ = os.Unsetenv(key)
		}
	})
}
