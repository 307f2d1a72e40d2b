package app

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// RouteTable writes every registered route as an aligned table.
func (a *Application) RouteTable(w io.Writer) error {
	infos := a.router().Routes()
	if len(infos) == 0 {
		_, err := fmt.Fprintln(w, "No routes registered.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH\tNAME")
	fmt.Fprintln(tw, "------\t----\t----")
	for _, ri := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return tw.Flush()
}
