package compiler

import (
	"os"

	"jsxc-go/packages/compiler/config"
	"jsxc-go/packages/compiler/jsx"
	"jsxc-go/packages/compiler/output"
	"jsxc-go/packages/compiler/transform"
)

// Compile lowers a source containing one or more top-level JSX expressions
// into printed JavaScript. Each call runs with a fresh per-file context, so
// identical input yields byte-identical output.
func Compile(source, url string, opts ...config.CompilerConfigOption) (string, error) {
	nodes, err := jsx.ParseTemplates(source, url)
	if err != nil {
		return "", err
	}
	cfg := config.NewCompilerConfig(opts...)
	transformer := transform.NewTransformer(transform.NewContext(cfg))
	return output.EmitStatements(transformer.TransformModule(nodes)), nil
}

// CompileFile reads and compiles one file
func CompileFile(path string, opts ...config.CompilerConfigOption) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Compile(string(content), path, opts...)
}
