package registry

import (
	"encoding/json"
	"io"

	"github.com/nscache/nscache/cache"
)

// statsExport is the JSON document shape produced by WriteJSON: one stats
// object per live namespace plus the aggregate over all of them. Map keys are
// emitted in sorted order by encoding/json, so the output is deterministic
// for a given snapshot.
type statsExport struct {
	Namespaces map[string]cache.Stats `json:"namespaces"`
	Global     cache.Stats            `json:"global"`
}

// snapshotStats collects one consistent export document. The global block is
// summed from the same per-namespace snapshots the document reports, so the
// two always agree within a single export.
func (r *Registry) snapshotStats() statsExport {
	out := statsExport{Namespaces: make(map[string]cache.Stats)}
	for _, name := range r.Namespaces() {
		s, ok := r.Stats(name)
		if !ok {
			continue // removed between listing and snapshot
		}
		out.Namespaces[name] = s
		out.Global = out.Global.Add(s)
	}
	return out
}

// WriteJSON writes the statistics of every live namespace, plus the global
// aggregate, as an indented JSON document.
func (r *Registry) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.snapshotStats())
}

// ExportJSON returns the WriteJSON document as a byte slice.
func (r *Registry) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(r.snapshotStats(), "", "  ")
}

// WriteJSON exports the Default registry's statistics as JSON.
func WriteJSON(w io.Writer) error { return Default.WriteJSON(w) }

// ExportJSON returns the Default registry's statistics as a JSON byte slice.
func ExportJSON() ([]byte, error) { return Default.ExportJSON() }
