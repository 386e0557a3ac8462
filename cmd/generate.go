package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/mockforge/internal/resolve"
	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

var (
	genCount  int
	genFormat string
	genSeed   int64
	genOut    string
	genWhere  []string
)

var generateCmd = &cobra.Command{
	Use:   "generate <schema>",
	Short: "Generate fake records for a schema",
	Long: `
Generate a batch of fake records for a built-in or custom schema.

Constraints narrow individual fields for this request only:
  mockforge generate order --count 20 --where amount=10..500 --where order_date=2024
  mockforge generate payment --count 5 --where status=failed --format sql
  mockforge generate user --count 50 --format csv --out users.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := buildEngine()
		if err != nil {
			return err
		}

		req := types.GenerationRequest{
			Schema:    args[0],
			Count:     genCount,
			Format:    types.Format(genFormat),
			Overrides: make(map[string]types.Override),
		}
		if cmd.Flags().Changed("seed") {
			req = req.WithSeed(genSeed)
		}
		for _, expr := range genWhere {
			field, override, err := resolve.ParseOverride(expr)
			if err != nil {
				return err
			}
			req.Overrides[field] = override
		}

		artifact, err := eng.Generate(req)
		if err != nil {
			return err
		}
		return writeArtifact(artifact, genOut)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVarP(&genCount, "count", "n", 10, "Number of records to generate")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "", "Output format: sql, csv or json")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Random seed for reproducible output")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Write output to file instead of stdout")
	generateCmd.Flags().StringArrayVarP(&genWhere, "where", "w", nil, "Field constraint, e.g. amount=10..500 or status=failed")
}
