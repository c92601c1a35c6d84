package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dryStyle  = lipgloss.NewStyle().Faint(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	kindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// OkLine reports a source document converted to output.
func OkLine(w io.Writer, source, output string) {
	fmt.Fprintln(w, okStyle.Render("ok ")+"  "+source+" -> "+output)
}

// DryLine reports a conversion that was not written.
func DryLine(w io.Writer, source, output string) {
	fmt.Fprintln(w, dryStyle.Render("dry")+"  "+source+" -> "+output)
}

// FailLine reports a source document that could not be converted.
func FailLine(w io.Writer, source string, err error) {
	fmt.Fprintln(w, failStyle.Render("err")+"  "+source+": "+err.Error())
}

// SummaryLine reports the number of converted documents.
func SummaryLine(w io.Writer, count int, dryRun bool) {
	if dryRun {
		fmt.Fprintf(w, "converted %d document(s), nothing written\n", count)
		return
	}
	fmt.Fprintf(w, "converted %d document(s)\n", count)
}
