package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "compsup",
	Short: "Complementary cell suppression for count tables",
	Long: `Compsup masks small counts in tabular data and then masks enough
additional cells that no hidden value can be recovered from row or column
totals.

Every row and every sensitive column of the output holds either no masked
cells or at least two. Zero counts are never masked.

Examples:
  compsup mask --columns male,female --bound 10 counts.csv
  compsup mask -c cases --symbol "<11" --format table counts.csv
  compsup check --columns male,female suppressed.csv
  compsup stats --columns male,female counts.csv
  compsup watch --columns male,female -o public.csv counts.csv`,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.compsup.yaml)")
	flags.StringP("format", "f", "csv", "output format (csv, json, table)")
	flags.BoolP("verbose", "v", false, "enable verbose output")
	flags.StringP("delimiter", "d", ",", `field delimiter for input and csv output (use \t for tab)`)
	flags.StringSliceP("columns", "c", nil, "sensitive count columns, comma separated")
	flags.Int64P("bound", "b", 10, "mask nonzero counts at or below this value")
	flags.StringP("symbol", "s", "*", "symbol written in place of masked counts")
	flags.Uint64("seed", 0, "seed for tie-breaking (0 picks a random seed)")
	flags.Int("max-iterations", 0, "cap on repair iterations (0 derives it from the table size)")
	flags.String("timeout", "", `give up if suppression takes longer than this (e.g. "30s")`)

	_ = viper.BindPFlag("format", flags.Lookup("format"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("delimiter", flags.Lookup("delimiter"))
	_ = viper.BindPFlag("suppression.columns", flags.Lookup("columns"))
	_ = viper.BindPFlag("suppression.cell_bound", flags.Lookup("bound"))
	_ = viper.BindPFlag("suppression.mask_symbol", flags.Lookup("symbol"))
	_ = viper.BindPFlag("suppression.seed", flags.Lookup("seed"))
	_ = viper.BindPFlag("suppression.max_iterations", flags.Lookup("max-iterations"))
	_ = viper.BindPFlag("suppression.timeout", flags.Lookup("timeout"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".compsup")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("COMPSUP")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func setDefaults() {
	viper.SetDefault("format", "csv")
	viper.SetDefault("verbose", false)
	viper.SetDefault("delimiter", ",")
	viper.SetDefault("suppression.cell_bound", 10)
	viper.SetDefault("suppression.mask_symbol", "*")
}
