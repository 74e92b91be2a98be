// =============================================================================
// Survey Tables - Rules Command
// =============================================================================
//
// This file defines the 'rules' command, which prints the keyword rule table
// in effect as YAML. The output is a valid --rules file, so it is the usual
// starting point for a customized table.
//
// COMMAND USAGE:
//   survey-tables rules                   # the built-in table
//   survey-tables rules --rules my.yaml   # a custom table, after validation
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/survey-tables/internal/classify"
	"github.com/spf13/cobra"
)

// rulesCmd represents the 'rules' command.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the keyword rule table as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := classify.LoadRuleSet(cfg.RulesFile)
		if err != nil {
			return err
		}

		data, err := rs.Marshal()
		if err != nil {
			return fmt.Errorf("failed to encode rules: %w", err)
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
