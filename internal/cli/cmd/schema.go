package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dtabridge/internal/infrastructure/config"
	"github.com/bnema/dtabridge/internal/infrastructure/nativemsg"
)

var schemaConfig bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the wire messages",
	Long: `Print the JSON Schema of every request the host accepts.

With --config, print the schema of config.toml instead.`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().BoolVar(&schemaConfig, "config", false, "print the configuration schema")
}

func runSchema(cmd *cobra.Command, _ []string) error {
	generate := nativemsg.SchemaJSON
	if schemaConfig {
		generate = config.GenerateSchema
	}

	data, err := generate()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
