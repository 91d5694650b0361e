package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"jsxc-go/packages/compiler/config"
)

func TestNewCompilerConfig(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		cfg := config.NewCompilerConfig()
		if cfg.ModuleName != "solid-js/web" {
			t.Errorf("ModuleName = %q", cfg.ModuleName)
		}
		if cfg.Mode != config.GenerateModeDOM {
			t.Errorf("Mode = %q", cfg.Mode)
		}
		if cfg.Hydratable {
			t.Error("Hydratable should default to false")
		}
		if !cfg.DelegateEvents {
			t.Error("DelegateEvents should default to true")
		}
		if cfg.EffectWrapper != "effect" || cfg.MemoWrapper != "memo" {
			t.Errorf("wrappers = %q/%q", cfg.EffectWrapper, cfg.MemoWrapper)
		}
		if cfg.StaticMarker != "@once" {
			t.Errorf("StaticMarker = %q", cfg.StaticMarker)
		}
		if !cfg.WrapConditionals {
			t.Error("WrapConditionals should default to true")
		}
	})

	t.Run("should apply options", func(t *testing.T) {
		cfg := config.NewCompilerConfig(
			config.WithModuleName("solid-js/universal"),
			config.WithMode(config.GenerateModeSSR),
			config.WithHydratable(true),
			config.WithDelegateEvents(false),
			config.WithDelegatedEvents("swipe"),
			config.WithEffectWrapper("render"),
			config.WithMemoWrapper("cache"),
			config.WithStaticMarker("/*static*/"),
			config.WithWrapConditionals(false),
			config.WithSourceMap(true),
		)
		if cfg.ModuleName != "solid-js/universal" || cfg.Mode != config.GenerateModeSSR {
			t.Errorf("ModuleName/Mode = %q/%q", cfg.ModuleName, cfg.Mode)
		}
		if !cfg.Hydratable || cfg.DelegateEvents || cfg.WrapConditionals {
			t.Error("boolean options not applied")
		}
		if diff := cmp.Diff([]string{"swipe"}, cfg.DelegatedEvents); diff != "" {
			t.Errorf("DelegatedEvents mismatch (-want +got):\n%s", diff)
		}
		if cfg.EffectWrapper != "render" || cfg.MemoWrapper != "cache" || cfg.StaticMarker != "/*static*/" {
			t.Errorf("wrappers/marker = %q/%q/%q", cfg.EffectWrapper, cfg.MemoWrapper, cfg.StaticMarker)
		}
		if !cfg.SourceMap {
			t.Error("SourceMap option not applied")
		}
	})
}

func TestIsBuiltIn(t *testing.T) {
	t.Run("should recognize the default control-flow set", func(t *testing.T) {
		cfg := config.NewCompilerConfig()
		for _, name := range []string{"For", "Show", "Switch", "Match", "Index", "Portal", "Dynamic", "ErrorBoundary"} {
			if !cfg.IsBuiltIn(name) {
				t.Errorf("IsBuiltIn(%q) = false, want true", name)
			}
		}
		if cfg.IsBuiltIn("Card") {
			t.Error("IsBuiltIn(\"Card\") = true, want false")
		}
	})

	t.Run("should extend through options without replacing", func(t *testing.T) {
		cfg := config.NewCompilerConfig(config.WithBuiltIns("Await"))
		if !cfg.IsBuiltIn("Await") || !cfg.IsBuiltIn("For") {
			t.Error("WithBuiltIns should add to the default set")
		}
	})

	t.Run("should not share builtin state across configs", func(t *testing.T) {
		first := config.NewCompilerConfig(config.WithBuiltIns("Await"))
		second := config.NewCompilerConfig()
		if !first.IsBuiltIn("Await") {
			t.Error("first config lost its extra builtin")
		}
		if second.IsBuiltIn("Await") {
			t.Error("builtin list leaked between configs")
		}
	})
}
