package ui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/grovekit/grove/internal/config"
)

// TreeRow is one line of the tree listing.
type TreeRow struct {
	Name   string
	Path   string
	Garden string
	Group  string
	Branch string
	State  string
}

// WriteTreeTable renders the tree listing in aligned columns.
func WriteTreeTable(out io.Writer, rows []TreeRow) error {
	tw := newWriter(out)
	_, _ = fmt.Fprintln(tw, "TREE\tPATH\tGARDEN\tGROUP\tBRANCH\tSTATE")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.Path, r.Garden, r.Group, r.Branch, r.State)
	}
	return tw.Flush()
}

// WriteGroupTable renders group names with their member counts.
func WriteGroupTable(out io.Writer, groups []*config.Group) error {
	tw := newWriter(out)
	_, _ = fmt.Fprintln(tw, "GROUP\tMEMBERS")
	for _, g := range groups {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", g.Name, len(g.Members))
	}
	return tw.Flush()
}

// WriteGardenTable renders garden names with their group and tree counts.
func WriteGardenTable(out io.Writer, gardens []*config.Garden) error {
	tw := newWriter(out)
	_, _ = fmt.Fprintln(tw, "GARDEN\tGROUPS\tTREES")
	for _, g := range gardens {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", g.Name, len(g.Groups), len(g.Trees))
	}
	return tw.Flush()
}

func newWriter(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}
