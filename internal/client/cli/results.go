package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

func (a *App) Results(ctx context.Context, kind models.Kind, ident string) error {
	results, err := a.service.Results(ctx, kind, ident, a.refresh)
	if err != nil {
		return err
	}
	printSummaryResults(a.out, results)
	return nil
}

func (a *App) InstanceResults(ctx context.Context, kind models.Kind, instanceIDs []string) error {
	results, err := a.service.InstanceResults(ctx, kind, instanceIDs)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(a.out, "No results")
		return nil
	}
	for _, r := range results {
		printResult(a.out, r)
		fmt.Fprintln(a.out)
	}
	return nil
}

func (a *App) Result(ctx context.Context, id string) error {
	r, err := a.service.Result(ctx, id, a.refresh)
	if err != nil {
		return err
	}
	printResult(a.out, r)
	return nil
}

// Stats prints the store's cache sizes followed by the counters gathered
// from the metrics registry.
func (a *App) Stats(ctx context.Context) error {
	st := a.service.Stats()
	fmt.Fprintf(a.out, "models=%d tests=%d queries=%d summary_results=%d extended_results=%d comment_subjects=%d vocab=%t projects=%t\n",
		st.Models, st.Tests, st.Queries, st.SummaryResults, st.ExtendedResults, st.CommentSubjects, st.VocabLoaded, st.ProjectsLoaded)

	if a.gatherer == nil {
		return nil
	}
	families, err := a.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		var total float64
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
		fmt.Fprintf(a.out, "%s %g\n", mf.GetName(), total)
	}
	return nil
}
