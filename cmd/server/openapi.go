package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rai/myapp-backend/internal/platform/apidocs"
)

func newOpenAPICmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			docs, err := apidocs.Load(cmd.Context(), cfg.Service.Version)
			if err != nil {
				return err
			}

			var out []byte
			switch format {
			case "json":
				out = append(docs.JSON(), '\n')
			case "yaml":
				out = docs.YAML()
			default:
				return fmt.Errorf("unknown format %q: want json or yaml", format)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: json or yaml")
	return cmd
}
