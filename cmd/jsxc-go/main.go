package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "jsxc-go",
		Short:         "Compile JSX into DOM or SSR rendering code",
		Long:          "jsxc-go lowers JSX markup into clone-and-patch DOM code with hoisted templates and reactive effects, or into escaped string-template code for server-side rendering.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		compileCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
