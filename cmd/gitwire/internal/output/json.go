package output

import (
	"encoding/json"
	"os"

	"github.com/gitwire-go/gitwire/ref"
)

// JSONFormatter outputs newline-delimited JSON documents.
type JSONFormatter struct {
	encoder *json.Encoder
}

// NewJSONFormatter returns a JSONFormatter writing to stdout.
func NewJSONFormatter() *JSONFormatter {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return &JSONFormatter{encoder: enc}
}

type refOutput struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	ID     string `json:"id,omitempty"`
	Peeled string `json:"peeled,omitempty"`
	Target string `json:"target,omitempty"`
}

// FormatRefs implements Formatter.
func (f *JSONFormatter) FormatRefs(refs []ref.Ref) error {
	out := make([]refOutput, len(refs))
	for i, r := range refs {
		o := refOutput{Name: r.Name}
		switch r.Kind {
		case ref.KindSymbolic:
			o.Kind = "symbolic"
			o.Target = r.Target
		case ref.KindPeeledTag:
			o.Kind = "tag"
			o.ID = r.ID.String()
			o.Peeled = r.Peeled.String()
		default:
			o.Kind = "direct"
			o.ID = r.ID.String()
		}
		out[i] = o
	}
	return f.encoder.Encode(map[string]any{"refs": out})
}

type trackingOutput struct {
	LocalName string `json:"local_name"`
	OldID     string `json:"old_id"`
	NewID     string `json:"new_id"`
	Force     bool   `json:"force"`
	Deleted   bool   `json:"deleted"`
}

type fetchResultOutput struct {
	Remote    string           `json:"remote"`
	Asked     bool             `json:"asked"`
	Tracking  []trackingOutput `json:"tracking"`
	FetchHead int              `json:"fetch_head_records"`
}

// FormatFetchResult implements Formatter.
func (f *JSONFormatter) FormatFetchResult(summary FetchSummary) error {
	out := fetchResultOutput{
		Remote:    summary.Remote,
		Asked:     summary.Asked,
		FetchHead: summary.FetchHead,
	}
	for _, u := range summary.Tracking {
		out.Tracking = append(out.Tracking, trackingOutput{
			LocalName: u.LocalName,
			OldID:     u.OldID,
			NewID:     u.NewID,
			Force:     u.Force,
			Deleted:   u.Deleted,
		})
	}
	return f.encoder.Encode(out)
}
