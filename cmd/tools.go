package cmd

import (
	"encoding/json"
	"fmt"

	jsonschema "github.com/invopop/jsonschema"
	cobra "github.com/spf13/cobra"

	handlers "github.com/inference-gateway/desktop-mcp/internal/handlers"
)

type toolInfo struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Mutates     bool               `json:"mutates"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the available tools",
	Long:  `List every tool the server exposes. Tools marked as input count against the rate limit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out := cmd.OutOrStdout()
		tools := handlers.Catalog()

		if format == "json" {
			infos := make([]toolInfo, 0, len(tools))
			for _, t := range tools {
				infos = append(infos, describeTool(t))
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		}

		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d tools", len(tools))))
		for _, t := range tools {
			desc := t.Description
			if t.Mutates {
				desc += dimStyle.Render(" [input]")
			}
			fmt.Fprintln(out, row(t.Name, desc))
		}
		return nil
	},
}

func describeTool(t handlers.Tool) toolInfo {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return toolInfo{
		Name:        t.Name,
		Description: t.Description,
		Mutates:     t.Mutates,
		InputSchema: r.ReflectFromType(t.Args),
	}
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	toolsCmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}
