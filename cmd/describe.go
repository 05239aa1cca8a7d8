package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-ioc/framework/app"
	"github.com/km-arc/go-ioc/framework/debug"
)

// OutputFormat is the output format of describe.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

func newDescribeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Boot the application and print what the container holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := boot(app.WithLogOutput(io.Discard))
			if err != nil {
				return err
			}
			return writeSnapshot(cmd.OutOrStdout(), debug.Take(a.Container), OutputFormat(output))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(OutputFormatText), "output format: text, json or yaml")
	return cmd
}

func writeSnapshot(w io.Writer, snap debug.Snapshot, format OutputFormat) error {
	switch format {
	case OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	case OutputFormatText:
		for _, r := range snap.Registrations {
			if _, err := fmt.Fprintf(w, "%s\n", r.Capability); err != nil {
				return err
			}
			for _, inst := range r.Instances {
				if _, err := fmt.Fprintf(w, "  - %s\n", inst); err != nil {
					return err
				}
			}
		}
		_, err := fmt.Fprintf(w, "declared: %s\n", strings.Join(snap.Declared, ", "))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
