package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// table accumulates rows and renders a markdown table with the given column
// alignments (":---" for left, "---:" for right).
type table struct {
	header []string
	align  []string
	rows   [][]string
}

func newTable(align []string, header ...string) *table {
	return &table{header: header, align: align}
}

func (t *table) Row(cells ...string) { t.rows = append(t.rows, cells) }

func (t *table) WriteTo(w io.Writer) {
	fmt.Fprintf(w, "| %s |\n", strings.Join(t.header, " | "))
	fmt.Fprintf(w, "|%s|\n", strings.Join(t.align, "|"))
	for _, row := range t.rows {
		fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | "))
	}
	fmt.Fprintln(w)
}

const (
	left  = ":---"
	right = "---:"
)

// stringsBuilder is a strings.Builder with a Printf shorthand.
type stringsBuilder struct {
	strings.Builder
}

// Printf formats according to a format specifier and writes to the builder.
func (b *stringsBuilder) Printf(format string, args ...any) {
	fmt.Fprintf(b, format, args...)
}
