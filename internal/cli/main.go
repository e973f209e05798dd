package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "reelgen <audio>",
		Short:        "Turn a narration audio file into a vertical video reel",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("out", "out", "Output directory")
	root.Flags().String("name", "reel.mp4", "Output file name")
	root.Flags().String("source", "stock", "Clip source: stock or t2v")
	root.Flags().String("music", "", "Background music file (overrides BACKGROUND_MUSIC_PATH)")
	root.Flags().Int("duration", 0, "Target duration seconds (0 follows the narration)")

	// Hidden tuning flags (internal)
	root.Flags().Int64("seed", 0, "Clip selection seed (0 is random)")
	root.Flags().Float64("music-gain", 0.25, "Background music volume")
	_ = root.Flags().MarkHidden("seed")
	_ = root.Flags().MarkHidden("music-gain")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
