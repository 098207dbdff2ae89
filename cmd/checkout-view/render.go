package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	cartcheckout "github.com/vitwit/cartcheckout"
	"github.com/vitwit/cartcheckout/types"
	"github.com/vitwit/cartcheckout/utils"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one view from a JSON render input (file or stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			data, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			var in cartcheckout.Input
			if err := json.Unmarshal(data, &in); err != nil {
				return &types.CheckoutError{Code: types.ErrInvalidInput, Message: fmt.Sprintf("invalid render input: %v", err)}
			}
			if in.Transaction != nil {
				if err := utils.ValidateTransaction(in.Transaction); err != nil {
					return err
				}
			}
			if in.Open == nil {
				open := true
				in.Open = &open
			}

			view := cartcheckout.NewFromConfig(cfg).Render(cmd.Context(), in)
			out, err := utils.SerializeView(view)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "render input JSON file, - for stdin")
	return cmd
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %s: %w", path, err)
	}
	return data, nil
}
