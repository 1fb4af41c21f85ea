package cli

import (
	"context"
	"fmt"
	"strings"
)

type statRow struct {
	name   string
	labels string
	value  float64
}

// Stats prints the API client's counters for this run: calls by method and
// outcome, and credential refreshes by result.
func (a *App) Stats(context.Context) error {
	if a.registry == nil {
		fmt.Fprintln(a.out, "No statistics collected.")
		return nil
	}

	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var rows []statRow
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			pairs := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				pairs = append(pairs, lp.GetName()+"="+lp.GetValue())
			}
			rows = append(rows, statRow{
				name:   mf.GetName(),
				labels: strings.Join(pairs, ","),
				value:  m.GetCounter().GetValue(),
			})
		}
	}

	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No requests made yet.")
		return nil
	}

	tw := newTable(a.out, "METRIC", "LABELS", "VALUE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%g\n", r.name, r.labels, r.value)
	}
	_ = tw.Flush()
	return nil
}
