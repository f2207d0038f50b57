package registry

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteTable renders the statistics of every live namespace, plus an
// aggregated total row, as an aligned text table.
func (r *Registry) WriteTable(w io.Writer) error {
	names := r.Namespaces()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAMESPACE\tENTRIES\tHITS\tMISSES\tEVICTIONS\tHIT RATE")
	for _, name := range names {
		s, ok := r.Stats(name)
		if !ok {
			continue // removed between listing and snapshot
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f%%\n",
			name, s.Entries, s.Hits, s.Misses, s.Evictions, s.HitRate*100)
	}
	if len(names) > 0 {
		g := r.GlobalStats()
		fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%d\t%d\t%.2f%%\n",
			g.Entries, g.Hits, g.Misses, g.Evictions, g.HitRate*100)
	}
	return tw.Flush()
}

// WriteTable renders the Default registry's statistics table.
func WriteTable(w io.Writer) error { return Default.WriteTable(w) }
