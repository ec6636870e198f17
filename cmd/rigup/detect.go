package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/rigup/pkg/engine"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/modules"
	"github.com/arthur-debert/rigup/pkg/types"
	"github.com/arthur-debert/rigup/pkg/ui"
)

var detectOutput string

func init() {
	detectCmd.Flags().StringVarP(&detectOutput, "output", "o", "text", "Output format: text, json or yaml")
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Probe the current environment state",
	Long: `Detect probes what each provisioning module would find: whether the
capability is installed, its version, and where it lives. Detection
never modifies anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := newRunContext()
		if err != nil {
			return err
		}

		caps := engine.DetectAll(cmd.Context(), rc.run, modules.All())

		switch detectOutput {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(caps)
		case "yaml":
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(caps)
		case "text":
			printCapabilities(rc.printer, caps)
			return nil
		default:
			return errors.Newf(errors.ErrInvalidInput, "unknown output format %q", detectOutput)
		}
	},
}

func printCapabilities(printer *ui.Printer, caps []types.Capability) {
	lines := make([]ui.SummaryLine, 0, len(caps))
	for _, c := range caps {
		status := "missing"
		detail := ""
		if c.Installed {
			status = "ok"
			detail = c.Version
			if c.Path != "" {
				if detail != "" {
					detail += "  "
				}
				detail += fmt.Sprintf("(%s)", c.Path)
			}
		}
		lines = append(lines, ui.SummaryLine{Name: c.Name, Status: status, Detail: detail})
	}
	printer.Summary("Detected environment", lines)
}
