package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/mockforge/internal/schema"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Inspect registered schemas",
}

var schemasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered schemas",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cfg, err := buildEngine()
		if err != nil {
			return err
		}

		color.Cyan("📋 Registered schemas (max %d records per request):", cfg.MaxRecords)
		for _, name := range eng.Registry().Names() {
			def, err := eng.Registry().Get(name)
			if err != nil {
				return err
			}
			fmt.Printf("  %s (%d fields)\n", name, len(def.Fields))
		}
		return nil
	},
}

var schemasDescribeCmd = &cobra.Command{
	Use:   "describe <schema>",
	Short: "Show the field definitions of a schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := buildEngine()
		if err != nil {
			return err
		}

		def, err := eng.Registry().Get(args[0])
		if err != nil {
			return err
		}

		color.Green("Schema: %s", def.Name)
		for _, f := range def.Fields {
			fmt.Printf("  - %-16s %s%s\n", f.Name, f.Kind, fieldDetail(&f))
		}
		return nil
	},
}

func fieldDetail(f *schema.FieldDef) string {
	switch f.Kind {
	case schema.KindInt, schema.KindDecimal:
		return fmt.Sprintf(" [%v..%v]", f.Min, f.Max)
	case schema.KindEnum:
		detail := fmt.Sprintf(" %v", f.Values)
		if f.OnlyIf != nil {
			detail += fmt.Sprintf(" (only when %s=%s)", f.OnlyIf.Field, f.OnlyIf.Equals)
		}
		return detail
	case schema.KindRef:
		return fmt.Sprintf(" -> %s", f.Ref)
	case schema.KindPattern:
		return fmt.Sprintf(" %q", f.Pattern)
	default:
		return ""
	}
}

func init() {
	rootCmd.AddCommand(schemasCmd)
	schemasCmd.AddCommand(schemasListCmd)
	schemasCmd.AddCommand(schemasDescribeCmd)
}
