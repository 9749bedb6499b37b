// territory is a terminal territory-claiming game for several players on one
// keyboard, playable locally or over SSH.
//
// Usage:
//
//	territory                  - Start the mode picker menu
//	territory list             - List available modes
//	territory play [mode]      - Play a mode directly
//	territory simulate [mode]  - Run a headless match between bots
//	territory serve            - Start SSH server for remote play
//	territory scores [mode]    - Show high scores and player records
//	territory config           - Print the effective configuration
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible spawns
//	--db <path>        - Set database path (default: ~/.arcade/scores.db)
//	--config <path>    - Use a custom configuration file
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	// Match overrides shared by play, simulate and serve
	flagTickMS    int
	flagWidth     int
	flagHeight    int
	flagMaxTicks  int
	flagNoRespawn bool
	flagMode      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "territory",
	Short: "Territory - claim the field in your terminal",
	Long: `Territory is a multiplayer terminal game. Leave your ground, draw a
trail and return home to claim everything the loop encloses. Cross another
player's trail to knock them out; cross your own and you are out.

Running territory with no command opens the mode picker.

Examples:
  territory
  territory play
  territory play territory_timed --width 60 --height 30
  territory simulate --ticks 2000
  territory serve --ssh :2222
  territory scores`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom territory config YAML")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// addMatchFlags registers the rule override flags on cmd.
func addMatchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&flagTickMS, "tick-ms", 0, "Tick period in milliseconds (0 = from config)")
	f.IntVar(&flagWidth, "width", 0, "Field width in cells (0 = from config)")
	f.IntVar(&flagHeight, "height", 0, "Field height in cells (0 = from config)")
	f.IntVar(&flagMaxTicks, "max-ticks", 0, "End the match after this many ticks (0 = from config)")
	f.BoolVar(&flagNoRespawn, "no-respawn", false, "Eliminated players stay out")
	f.StringVar(&flagMode, "mode", "", "Rule preset applied to the config: endless, survival, timed")
}
