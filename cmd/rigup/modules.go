package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/rigup/pkg/modules"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the provisioning modules",
	Long:  `Modules lists every provisioning module in the order "rigup up" runs them.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range modules.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", m.Name(), m.Description())
		}
	},
}
