package presentation

import (
	"fmt"
	"io"
)

type Printer struct {
	Writer io.Writer
}

// PrintLines writes each result line on its own line.
func (p Printer) PrintLines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(p.Writer, line)
	}
}

// PrintValidation writes one configuration problem per line.
func (p Printer) PrintValidation(msgs []string) {
	p.PrintLines(msgs)
}

// PrintFlagError writes a flag error followed by the one-line usage summary.
func (p Printer) PrintFlagError(message, usage string) {
	fmt.Fprintln(p.Writer, message)
	fmt.Fprintln(p.Writer, usage)
}
