package config

// GenerateMode selects the code generation backend
type GenerateMode string

const (
	// GenerateModeDOM emits clone-and-patch DOM code
	GenerateModeDOM GenerateMode = "dom"
	// GenerateModeSSR emits escaped string-template code
	GenerateModeSSR GenerateMode = "ssr"
	// GenerateModeUniversal emits renderer-agnostic code; it currently
	// shares the DOM backend
	GenerateModeUniversal GenerateMode = "universal"
)

// defaultBuiltIns are the control-flow components recognized without an
// explicit import
var defaultBuiltIns = []string{
	"For",
	"Show",
	"Switch",
	"Match",
	"Index",
	"Suspense",
	"SuspenseList",
	"Portal",
	"Dynamic",
	"ErrorBoundary",
}

// CompilerConfig represents the compiler configuration
type CompilerConfig struct {
	ModuleName       string
	Mode             GenerateMode
	Hydratable       bool
	DelegateEvents   bool
	DelegatedEvents  []string
	BuiltIns         []string
	EffectWrapper    string
	MemoWrapper      string
	StaticMarker     string
	WrapConditionals bool
	// SourceMap is accepted and forwarded for build-tool integration; the
	// generators do not emit maps.
	SourceMap bool
}

// NewCompilerConfig creates a new CompilerConfig with optional parameters
func NewCompilerConfig(opts ...CompilerConfigOption) *CompilerConfig {
	config := &CompilerConfig{
		ModuleName:       "solid-js/web",
		Mode:             GenerateModeDOM,
		Hydratable:       false,
		DelegateEvents:   true,
		BuiltIns:         append([]string{}, defaultBuiltIns...),
		EffectWrapper:    "effect",
		MemoWrapper:      "memo",
		StaticMarker:     "@once",
		WrapConditionals: true,
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// CompilerConfigOption is a function that modifies CompilerConfig
type CompilerConfigOption func(*CompilerConfig)

// WithModuleName sets the module the generated code imports runtime
// helpers from
func WithModuleName(name string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.ModuleName = name
	}
}

// WithMode sets the code generation backend
func WithMode(mode GenerateMode) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Mode = mode
	}
}

// WithHydratable sets whether generated markup carries hydration markers
func WithHydratable(hydratable bool) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Hydratable = hydratable
	}
}

// WithDelegateEvents sets whether common events are delegated to the
// document root
func WithDelegateEvents(delegate bool) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.DelegateEvents = delegate
	}
}

// WithDelegatedEvents adds event names to the delegated set
func WithDelegatedEvents(events ...string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.DelegatedEvents = append(c.DelegatedEvents, events...)
	}
}

// WithBuiltIns adds component names treated as built-in control flow
func WithBuiltIns(names ...string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.BuiltIns = append(c.BuiltIns, names...)
	}
}

// WithEffectWrapper sets the reactive wrapper for dynamic bindings
func WithEffectWrapper(name string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.EffectWrapper = name
	}
}

// WithMemoWrapper sets the memo wrapper for expensive dynamic expressions
func WithMemoWrapper(name string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.MemoWrapper = name
	}
}

// WithStaticMarker sets the comment marker that forces a one-time binding
func WithStaticMarker(marker string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.StaticMarker = marker
	}
}

// WithWrapConditionals sets whether ternary and logical expressions in
// insert positions are wrapped in memos
func WithWrapConditionals(wrap bool) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.WrapConditionals = wrap
	}
}

// WithSourceMap records the source-map request of the caller
func WithSourceMap(enabled bool) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.SourceMap = enabled
	}
}

// IsBuiltIn checks whether a component name is a built-in control-flow
// component
func (c *CompilerConfig) IsBuiltIn(name string) bool {
	for _, builtIn := range c.BuiltIns {
		if builtIn == name {
			return true
		}
	}
	return false
}
