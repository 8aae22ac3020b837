package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	unomcp "github.com/peterkuimelis/unosim/internal/mcp"
)

func main() {
	s := server.NewMCPServer("unosim", "1.0.0")
	unomcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
