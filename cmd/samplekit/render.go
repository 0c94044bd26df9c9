package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type palette struct {
	ok   *color.Color
	warn *color.Color
	err  *color.Color
}

func newPalette(w io.Writer) palette {
	p := palette{
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
		err:  color.New(color.FgRed, color.Bold),
	}
	enable := shouldColorize(w)
	for _, c := range []*color.Color{p.ok, p.warn, p.err} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) success(s string) string { return p.ok.Sprint(s) }
func (p palette) warning(s string) string { return p.warn.Sprint(s) }
func (p palette) failure(s string) string { return p.err.Sprint(s) }

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
