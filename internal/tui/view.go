package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("whichshell inspect"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " walking process tree...")
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
	default:
		b.WriteString(panelStyle.Render(renderShell(m.result.Shell)))
	}
	b.WriteString("\n")

	for _, w := range m.result.Warnings {
		b.WriteString(warningStyle.Render("warning: "+w) + "\n")
	}

	if len(m.result.Steps) > 0 {
		b.WriteString("\n" + m.table.View() + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func renderShell(s model.Shell) string {
	name := shellStyle.Render(s.Name)
	if s.Login {
		name += " " + loginStyle.Render("(login)")
	}
	origin := "environment"
	if s.Source == model.SourceProcess {
		origin = fmt.Sprintf("pid %d", s.PID)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Shell")+name,
		labelStyle.Render("Path")+s.Path,
		labelStyle.Render("Source")+origin,
	)
}
