package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var askOut string

var askCmd = &cobra.Command{
	Use:   "ask <request...>",
	Short: "Generate data from a plain-language request",
	Long: `
Interpret a plain-language request and generate matching data.

Examples:
  mockforge ask "generate 10 mock users"
  mockforge ask "20 orders with amounts $10-500 in 2024 as json"
  mockforge ask "5 failed payment transactions"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := buildEngine()
		if err != nil {
			return err
		}

		artifact, err := eng.GenerateFromText(context.Background(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return writeArtifact(artifact, askOut)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askOut, "out", "o", "", "Write output to file instead of stdout")
}
