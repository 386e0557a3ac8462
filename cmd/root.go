package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.1"
)

var rootCmd = &cobra.Command{
	Use:   "mockforge",
	Short: "Synthetic data generator with injection-safe SQL output",
	Long: `
MockForge generates internally consistent fake records for your test
and development databases, without ever touching a real one.

Built-in schemas:
- user (names, emails, phones, addresses)
- order (amounts, statuses, dates, references to users)
- payment (methods, gateways, failure reasons, references to orders)
- product (prices, categories, SKUs)

Output formats:
- SQL (multi-row INSERT statements, identifiers restricted to known schemas)
- CSV (RFC 4180, header row from the schema field order)
- JSON (array of flat objects, field order preserved)`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("MockForge version %s\n", Version)
			os.Exit(0)
		}
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default mockforge.yaml)")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mockforge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("MOCKFORGE")
	viper.AutomaticEnv()

	// Missing config file is fine, defaults cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			color.Yellow("⚠️  Could not read config file: %v", err)
		}
	}
}
