package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/flytaly/mdsite/cmd/teaprogram"
	"github.com/flytaly/mdsite/pkg/log"
	"github.com/flytaly/mdsite/pkg/site"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var errBuildFailed = errors.New("some pages failed")

// getConfig merges the config file, environment and flags. The optional
// positional argument is the base path of the site.
func getConfig(cmd *cobra.Command, args []string) (root string, cfg site.Config, err error) {
	flags := cmd.Flags()
	root, _ = flags.GetString("path")
	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			return "", cfg, err
		}
	}
	cfgPath, _ := flags.GetString("config")
	if cfgPath == "" {
		cfgPath = filepath.Join(root, site.DefaultConfigFile)
	}
	cfg, err = site.LoadConfig(cfgPath)
	if err != nil {
		return "", cfg, err
	}

	stringFlags := map[string]*string{
		"content":  &cfg.ContentDir,
		"static":   &cfg.StaticDir,
		"public":   &cfg.PublicDir,
		"template": &cfg.Template,
		"log":      &cfg.LogPath,
	}
	for name, dst := range stringFlags {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Lookup("interval") != nil && flags.Changed("interval") {
		cfg.Interval, _ = flags.GetDuration("interval")
	}
	if len(args) > 0 {
		cfg.BasePath = args[0]
	}

	cfg.Normalize()
	return root, cfg, cfg.Validate()
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mdsite [base path]",
	Short: "Generate a static website from markdown files",
	Long: `Generate a static website from markdown files

Every markdown file in the content directory is converted to HTML, inserted
into the template in place of {{ Content }} ({{ Title }} gets the first level 1
heading) and written to the public directory under the same relative path.
Static files are copied as they are. The public directory is recreated on
every build.

The optional base path (default "/") is prefixed to root relative links, use it
when the site is not served from the domain root.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := getConfig(cmd, args)
		if err != nil {
			return err
		}
		logger, err := log.New(cfg.LogPath)
		if err != nil {
			return err
		}
		defer logger.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		gen := site.New(os.DirFS(root), root, cfg, logger)
		report, err := gen.Build(ctx)
		fmt.Fprintln(cmd.OutOrStdout(), teaprogram.Summary(report, err, 80))
		if err != nil {
			return err
		}
		if len(report.Failed()) > 0 {
			return errBuildFailed
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(version string) {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func setSiteFlags(flags *pflag.FlagSet) {
	defaults := site.DefaultConfig()
	flags.StringP("path", "p", "", "path to the site root (default is the working directory)")
	flags.StringP("config", "c", "", "path to the config file (default is "+site.DefaultConfigFile+" in the site root)")
	flags.StringP("log", "l", "", "path to the log file")
	flags.String("content", defaults.ContentDir, "markdown sources directory, relative to the site root")
	flags.String("static", defaults.StaticDir, "static files directory, relative to the site root")
	flags.String("public", defaults.PublicDir, "output directory, relative to the site root")
	flags.String("template", defaults.Template, "HTML template, relative to the site root")
	flags.IntP("workers", "w", 0, "number of pages rendered in parallel (default is the number of CPUs)")
}

func init() {
	setSiteFlags(rootCmd.PersistentFlags())
}
