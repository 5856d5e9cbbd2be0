package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	cobra "github.com/spf13/cobra"

	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
)

var callCmd = &cobra.Command{
	Use:   "call <tool> [json-args]",
	Short: "Run a single tool and print its result",
	Long: `Run one tool and print the result envelope as JSON. Arguments are a JSON
object; pass "-" to read them from stdin. The command exits non-zero when
the tool reports failure.

Examples:
  desktop-mcp call get_screen_size
  desktop-mcp call move_mouse '{"x": 100, "y": 200}'
  desktop-mcp call get_screenshot '{"format": "png"}' --save shot.png`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getConfig()
		if err != nil {
			return err
		}

		raw, err := callArgs(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		d, f := newDispatcher(c)
		defer func() { _ = f.Close() }()

		if _, ok := d.Lookup(args[0]); !ok {
			return fmt.Errorf("unknown tool %q (see 'desktop-mcp tools')", args[0])
		}

		res := d.Call(cmd.Context(), args[0], raw)

		if save, _ := cmd.Flags().GetString("save"); save != "" && res.Success {
			if err := saveScreenshot(res, save); err != nil {
				return err
			}
		}

		if omit, _ := cmd.Flags().GetBool("omit-image"); omit {
			res.Screenshot = ""
			res.Content = nil
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}

		if !res.Success {
			return fmt.Errorf("%s failed", args[0])
		}
		return nil
	},
}

func callArgs(stdin io.Reader, args []string) (json.RawMessage, error) {
	if len(args) < 2 {
		return nil, nil
	}

	text := args[1]
	if text == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read arguments from stdin: %w", err)
		}
		text = string(b)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("arguments are not valid JSON: %s", text)
	}
	return json.RawMessage(text), nil
}

func saveScreenshot(res domain.Result, path string) error {
	if res.Screenshot == "" {
		return fmt.Errorf("result has no screenshot to save")
	}

	data, err := base64.StdEncoding.DecodeString(res.Screenshot)
	if err != nil {
		return fmt.Errorf("failed to decode screenshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write screenshot: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().String("save", "", "write the decoded screenshot to this file")
	callCmd.Flags().Bool("omit-image", false, "leave the base64 image out of the printed result")
}
