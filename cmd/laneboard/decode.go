package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riordanpawley/laneboard/internal/services/boardconfig"
)

func newDecodeConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode-config <base64>",
		Short: "Decode and validate a stored board configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := boardconfig.Decode(args[0])
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
