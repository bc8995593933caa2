// Package ui provides terminal output components for the sicpctl CLI.
//
// This package uses Lipgloss to render styled one-shot output. Unlike the
// interactive dashboard, these components follow a "render and exit"
// pattern - no event loop, no key handling.
//
// The main component is StatusBlock, which renders a display's Snapshot
// as a bordered block of grouped fields. It carries both a styled
// renderer for terminals and a plain renderer for pipes; callers pick
// with IsTerminal:
//
//	block := ui.NewStatusBlock(name, target, snap, err)
//	if ui.IsTerminal() {
//	    fmt.Println(block.Render())
//	} else {
//	    fmt.Println(block.RenderPlain())
//	}
//
// Confirm provides the y/N prompt used before destructive registry
// operations.
package ui
