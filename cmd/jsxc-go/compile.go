package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jsxc-go/packages/compiler"
	"jsxc-go/packages/compiler/config"
)

func compileCmd() *cobra.Command {
	var (
		mode           string
		moduleName     string
		hydratable     bool
		delegateEvents bool
		delegatedExtra []string
		builtIns       []string
		staticMarker   string
		sourceMap      bool
		out            string
	)

	cmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile JSX files to JavaScript",
		Long: `Compile one or more JSX files to JavaScript.

Output is written next to each input with a .js extension, or to
--out when compiling a single file. With no files, input is read
from stdin and written to stdout.

Examples:
  jsxc-go compile view.jsx
  jsxc-go compile --mode=ssr --hydratable view.jsx
  jsxc-go compile --out=bundle.js view.jsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(mode, moduleName, hydratable, delegateEvents, delegatedExtra, builtIns, staticMarker, sourceMap)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return compileStdin(opts)
			}
			if out != "" && len(args) > 1 {
				return fmt.Errorf("--out requires a single input file")
			}
			for _, path := range args {
				target := out
				if target == "" {
					target = strings.TrimSuffix(path, filepath.Ext(path)) + ".js"
				}
				code, err := compiler.CompileFile(path, opts...)
				if err != nil {
					return err
				}
				if err := os.WriteFile(target, []byte(code), 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, target)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "dom", "Generation mode: dom, ssr or universal")
	cmd.Flags().StringVar(&moduleName, "module", "solid-js/web", "Module the generated code imports runtime helpers from")
	cmd.Flags().BoolVar(&hydratable, "hydratable", false, "Emit hydration markers and keys")
	cmd.Flags().BoolVar(&delegateEvents, "delegate-events", true, "Delegate common events to the document root")
	cmd.Flags().StringSliceVar(&delegatedExtra, "delegated-event", nil, "Additional event names to delegate")
	cmd.Flags().StringSliceVar(&builtIns, "builtin", nil, "Additional component names treated as built-in control flow")
	cmd.Flags().StringVar(&staticMarker, "static-marker", "@once", "Comment marker forcing a one-time binding")
	cmd.Flags().BoolVar(&sourceMap, "source-map", false, "Forward a source-map request to the build pipeline")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (single input only)")

	return cmd
}

func buildOptions(mode, moduleName string, hydratable, delegateEvents bool, delegatedExtra, builtIns []string, staticMarker string, sourceMap bool) ([]config.CompilerConfigOption, error) {
	switch config.GenerateMode(mode) {
	case config.GenerateModeDOM, config.GenerateModeSSR, config.GenerateModeUniversal:
	default:
		return nil, fmt.Errorf("unknown mode %q: want dom, ssr or universal", mode)
	}
	opts := []config.CompilerConfigOption{
		config.WithMode(config.GenerateMode(mode)),
		config.WithModuleName(moduleName),
		config.WithHydratable(hydratable),
		config.WithDelegateEvents(delegateEvents),
		config.WithStaticMarker(staticMarker),
		config.WithSourceMap(sourceMap),
	}
	if len(delegatedExtra) > 0 {
		opts = append(opts, config.WithDelegatedEvents(delegatedExtra...))
	}
	if len(builtIns) > 0 {
		opts = append(opts, config.WithBuiltIns(builtIns...))
	}
	return opts, nil
}

func compileStdin(opts []config.CompilerConfigOption) error {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	code, err := compiler.Compile(string(source), "<stdin>", opts...)
	if err != nil {
		return err
	}
	_, err = os.Stdout.WriteString(code)
	return err
}
