package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v2"

	"github.com/wippyai/anybox/errors"
)

// Format selects the output of WriteReport.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a report format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	err := errors.InvalidInput(errors.PhaseReport, "expected text, json or yaml")
	err.Path = []string{"format"}
	err.Value = s
	return "", err
}

// WriteReport renders runs to w.
func WriteReport(w io.Writer, format Format, runs []Run) error {
	var err error
	switch format {
	case FormatText:
		err = writeText(w, runs)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(runs)
	case FormatYAML:
		var out []byte
		out, err = yaml.Marshal(runs)
		if err == nil {
			_, err = w.Write(out)
		}
	default:
		return errors.New(errors.PhaseReport, errors.KindUnsupported).
			Value(format).Detail("unknown format %q", format).Build()
	}
	if err != nil {
		return errors.Wrap(errors.PhaseReport, errors.KindInvalidInput, err, "write "+string(format)+" report")
	}
	return nil
}

func writeText(w io.Writer, runs []Run) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, run := range runs {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "run %d\tloop %d\t%s\telapsed %s\tcpu %d\n",
			run.ID, run.Loop, run.Started.Format("2006-01-02 15:04:05"), run.Elapsed, run.CPU)

		if len(run.Analyses) > 0 {
			fmt.Fprintln(tw, "TYPE\tSIZE\tTRIVIAL CTOR\tTRIVIAL DTOR\tCLASS")
			for _, a := range run.Analyses {
				fmt.Fprintf(tw, "%s\t%d\t%t\t%t\t%s\n",
					a.Type, a.Size, a.TriviallyConstructible, a.TriviallyDestructible, a.Class)
			}
			fmt.Fprintln(tw)
		}

		fmt.Fprintln(tw, "GROUP\tCONTAINER\tPAYLOAD\tCONSTRUCT ns\tDESTROY ns\tGET ns\tALLOCS")
		for _, r := range run.Results {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\n",
				r.Group, r.Container, dash(r.Payload),
				nanos(r.Construct, r.Measure != MeasureGet),
				nanos(r.Destroy, r.Measure != MeasureGet),
				nanos(r.Get, r.Measure == MeasureGet),
				r.Allocs)
		}
	}
	return tw.Flush()
}

func nanos(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.3f", v)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
