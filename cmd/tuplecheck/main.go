package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/tuplecheck/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tuplecheck",
	Short: "Find single-item tuples missing their trailing comma in Python code",
	Long: `tuplecheck scans Python source for parenthesized expressions that look
like tuples but are missing the trailing comma that would make them one:

  x = ("item")      # just a string in grouping parens; did you mean ("item",)?
  f((value))        # redundant double parentheses around a call argument

It parses each file with tree-sitter, then inspects the raw bytes around
candidate expressions to decide whether the enclosing parentheses are
redundant. Parentheses containing a comma always form a real tuple and are
never flagged.`,
	Version: version.Short(),
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
