package main

import (
	cmd "github.com/inference-gateway/desktop-mcp/cmd"
)

func main() {
	cmd.Execute()
}
