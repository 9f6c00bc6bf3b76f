// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"grimm.is/docgen/cmd"
	"grimm.is/docgen/internal/brand"
)

// Global flags
var (
	configPath string
	logLevel   string
	logJSON    bool
)

var buildOpts, watchOpts cmd.BuildOptions

func logOptions() cmd.LogOptions {
	return cmd.LogOptions{Level: logLevel, JSON: logJSON}
}

var rootCmd = &cobra.Command{
	Use:   brand.BinaryName,
	Short: brand.Description,
	Long: `docgen renders configuration option and shortcut definitions exports
(HCL, YAML or JSON) into reStructuredText reference pages, records a
cross-reference index, and rewrites :opt:, :sc:, :iss:, :pull:, :commit:
and :link: roles in hand-written documents into plain reST hyperlinks.

Run 'docgen init' to create a project file, then 'docgen build'.`,
	Version:       brand.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		cmd.SetupLogging(logLevel, logJSON)
	},
}

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"conf"},
	Short:   "Render reference pages and resolve references",
	Args:    cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		buildOpts.Log = logOptions()
		return cmd.RunBuild(c.Context(), configPath, buildOpts)
	},
}

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Resolve references against the saved xref index",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		buildOpts.Log = logOptions()
		return cmd.RunLinks(c.Context(), configPath, buildOpts)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild whenever definitions or sources change",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		watchOpts.Log = logOptions()
		return cmd.RunWatch(c.Context(), configPath, watchOpts)
	},
}

var highlightOpts cmd.HighlightOptions

var highlightCmd = &cobra.Command{
	Use:   "highlight [file|-]",
	Short: "Highlight a conf or session file as HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return cmd.RunHighlight(args[0], highlightOpts)
	},
}

var lexersCmd = &cobra.Command{
	Use:   "lexers",
	Short: "List the available lexers",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		cmd.RunLexers()
	},
}

var cliOutput string

var cliCmd = &cobra.Command{
	Use:   "cli <spec>",
	Short: "Render a CLI spec export into cli-*.rst pages",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return cmd.RunCLIDocs(args[0], cliOutput)
	},
}

var defsCmd = &cobra.Command{
	Use:   "defs",
	Short: "Work with definitions exports",
}

var fmtWrite bool

var defsFmtCmd = &cobra.Command{
	Use:   "fmt <file.hcl>...",
	Short: "Format HCL definitions exports",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return cmd.RunDefsFmt(args, fmtWrite)
	},
}

var defsCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Load and render exports without writing",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return cmd.RunDefsCheck(args)
	},
}

var defsConvertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Print a YAML or JSON export as HCL",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return cmd.RunDefsConvert(args[0])
	},
}

var defsLiteralCmd = &cobra.Command{
	Use:   "literal <file>",
	Short: "Print the commented sample configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return cmd.RunDefsLiteral(args[0])
	},
}

var schemaFormat string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the definitions export format",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return cmd.RunSchema(schemaFormat)
	},
}

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a project file with default settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return cmd.RunInit(dir, initForce)
	},
}

var manOutput string

var manCmd = &cobra.Command{
	Use:    "man",
	Short:  "Generate man pages for docgen itself",
	Args:   cobra.NoArgs,
	Hidden: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := os.MkdirAll(manOutput, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		header := &doc.GenManHeader{
			Title:   "DOCGEN",
			Section: "1",
			Source:  brand.VersionString(),
			Manual:  "docgen Manual",
			Date:    func() *time.Time { t := time.Unix(0, 0).UTC(); return &t }(),
		}
		rootCmd.DisableAutoGenTag = true
		if err := doc.GenManTree(rootCmd, header, manOutput); err != nil {
			return fmt.Errorf("generate man pages: %w", err)
		}
		fmt.Printf("Generated man pages in %s\n", manOutput)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Project file (default: ./"+brand.ConfigFileName+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log one JSON object per line")
	rootCmd.SetVersionTemplate(brand.VersionString() + "\n")

	for _, c := range []*cobra.Command{buildCmd, linksCmd} {
		c.Flags().BoolVar(&buildOpts.Check, "check", false, "Compare instead of writing; fail when output is stale")
		c.Flags().BoolVarP(&buildOpts.KeepGoing, "keep-going", "k", false, "Succeed even when references have errors")
		c.Flags().StringVar(&buildOpts.MetricsFile, "metrics-file", "", "Write Prometheus build metrics to this file")
	}
	watchCmd.Flags().StringVar(&watchOpts.MetricsFile, "metrics-file", "", "Write Prometheus build metrics to this file")
	watchCmd.Flags().BoolVarP(&watchOpts.KeepGoing, "keep-going", "k", true, "Succeed even when references have errors")
	watchCmd.Flags().DurationVar(&watchOpts.Debounce, "debounce", 0, "Wait this long for changes to settle")

	highlightCmd.Flags().StringVarP(&highlightOpts.Lexer, "lexer", "l", "", "Lexer alias (default: by file name)")
	highlightCmd.Flags().BoolVar(&highlightOpts.Tokens, "tokens", false, "Print tokens instead of HTML")

	cliCmd.Flags().StringVarP(&cliOutput, "output", "o", "", "Output directory (default: stdout)")
	defsFmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write the result back to the file")
	schemaCmd.Flags().StringVarP(&schemaFormat, "format", "f", "json", "Output format: json, yaml")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing project file")
	manCmd.Flags().StringVarP(&manOutput, "output", "o", "man", "Output directory")

	defsCmd.AddCommand(defsFmtCmd, defsCheckCmd, defsConvertCmd, defsLiteralCmd)
	rootCmd.AddCommand(buildCmd, linksCmd, watchCmd, highlightCmd, lexersCmd, cliCmd, defsCmd, schemaCmd, initCmd, manCmd)
}
