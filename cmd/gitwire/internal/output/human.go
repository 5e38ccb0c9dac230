package output

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/gitwire-go/gitwire/ref"
)

// HumanFormatter outputs human-readable, colorized text.
type HumanFormatter struct {
	success *color.Color
	info    *color.Color
	warn    *color.Color
	dim     *color.Color
}

// NewHumanFormatter returns a HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{
		success: color.New(color.FgGreen),
		info:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
		dim:     color.New(color.Faint),
	}
}

func shortHex(s string) string {
	if len(s) > 8 {
		return s[:8] + "..."
	}
	return s
}

// FormatRefs implements Formatter.
func (f *HumanFormatter) FormatRefs(refs []ref.Ref) error {
	for _, r := range refs {
		id := r.ObjectID()
		switch r.Kind {
		case ref.KindSymbolic:
			fmt.Printf("%s\t%s -> %s\n", f.dim.Sprint("symref  "), r.Name, r.Target)
		case ref.KindPeeledTag:
			fmt.Printf("%s\t%s\t(peeled %s)\n", f.dim.Sprint(shortHex(id.String())), r.Name, shortHex(r.Peeled.String()))
		default:
			fmt.Printf("%s\t%s\n", f.dim.Sprint(shortHex(id.String())), r.Name)
		}
	}
	return nil
}

// FormatFetchResult implements Formatter.
func (f *HumanFormatter) FormatFetchResult(summary FetchSummary) error {
	label := summary.Remote
	if label == "" {
		label = "origin"
	}
	if !summary.Asked {
		f.info.Printf("%s: already up to date\n", label)
	} else {
		f.success.Printf("%s: fetched\n", label)
	}
	for _, u := range summary.Tracking {
		if u.Deleted {
			f.warn.Printf("  - [deleted]\t%s\n", u.LocalName)
			continue
		}
		marker := "  "
		if u.Force {
			marker = "+ "
		}
		fmt.Printf("%s%s..%s\t%s\n", marker, shortHex(u.OldID), shortHex(u.NewID), u.LocalName)
	}
	if summary.FetchHead > 0 {
		fmt.Printf("  (%d FETCH_HEAD record(s) written)\n", summary.FetchHead)
	}
	return nil
}
