package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/sadopc/tideline/internal/energy"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	title = color.New(color.Bold, color.Underline).SprintFunc()
	warn  = color.New(color.FgHiRed, color.Bold).SprintFunc()
)

var levelColors = map[energy.Level]*color.Color{
	energy.Sparky:  color.New(color.FgHiYellow, color.Bold),
	energy.Steady:  color.New(color.FgGreen),
	energy.Flowing: color.New(color.FgCyan),
	energy.Foggy:   color.New(color.FgMagenta),
	energy.Resting: color.New(color.FgBlue, color.Faint),
}

func levelString(l energy.Level) string {
	s := l.Emoji() + " " + string(l)
	if c, ok := levelColors[l]; ok {
		return c.Sprint(s)
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return color.GreenString("yes")
	}
	return color.RedString("no")
}

func newTable() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	return tbl
}

func printTitle(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, title(s))
}

func printTable(w io.Writer, tbl *uitable.Table) {
	_, _ = fmt.Fprintln(w, tbl)
}
