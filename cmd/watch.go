package cmd

import (
	"time"

	"github.com/flytaly/mdsite/cmd/teaprogram"
	"github.com/flytaly/mdsite/pkg/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [base path]",
	Short: "Build the site and rebuild it when sources change",
	Long: `Build the site and rebuild it when the content, static files or the template change.

Internally, the watcher polls the filesystem, so keep the sources in a directory
with a moderate number of files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := getConfig(cmd, args)
		if err != nil {
			return err
		}
		var logger log.Logger
		if cfg.LogPath != "" {
			if logger, err = log.New(cfg.LogPath); err != nil {
				return err
			}
			defer logger.Close()
		}
		_, err = teaprogram.NewProgram(root, cfg, logger).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	setWatchFlags(watchCmd.Flags())
}

func setWatchFlags(flags *pflag.FlagSet) {
	flags.DurationP("interval", "i", 500*time.Millisecond, "poll interval duration (e.g. 1s, 500ms...)")
}
