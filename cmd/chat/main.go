package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"legal-rag/internal/tui"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "Chat API base URL")
	token := flag.String("token", "", "Bearer token (when the server requires auth)")
	flag.Parse()

	client := tui.NewHTTPClient(*serverURL, *token)
	p := tea.NewProgram(tui.New(client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
