package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

const timeLayout = "2006-01-02 15:04"

func printResources(w io.Writer, kind models.Kind, list []*models.Resource) {
	if len(list) == 0 {
		fmt.Fprintf(w, "No %s found\n", kind.Collection())
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if kind == models.KindModel {
		fmt.Fprintln(tw, "ID\tALIAS\tNAME\tSPECIES\tBRAIN REGION")
		for _, r := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Alias, r.Name, r.Species, r.BrainRegion)
		}
	} else {
		fmt.Fprintln(tw, "ID\tALIAS\tNAME\tTEST TYPE\tSCORE TYPE")
		for _, r := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Alias, r.Name, r.TestType, r.ScoreType)
		}
	}
	tw.Flush()
}

func printResource(w io.Writer, kind models.Kind, r *models.Resource) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", k, v)
		}
	}
	row("ID", r.ID)
	row("Alias", r.Alias)
	row("Name", r.Name)
	row("Description", r.Description)
	row("Authors", people(r.Author))
	row("Project", r.ProjectID)
	if r.Private {
		row("Private", "yes")
	}
	row("Created", formatTime(r.DateCreated))
	row("Species", r.Species)
	row("Brain region", r.BrainRegion)
	row("Cell type", r.CellType)
	if kind == models.KindModel {
		row("Model scope", r.ModelScope)
		row("Abstraction level", r.AbstractionLevel)
		row("Organization", r.Organization)
	} else {
		row("Test type", r.TestType)
		row("Score type", r.ScoreType)
		row("Data type", r.DataType)
		row("Data location", r.DataLocation)
		row("Recording modality", r.RecordingModality)
		row("Status", r.Status)
	}
	tw.Flush()

	if len(r.Instances) == 0 {
		return
	}
	fmt.Fprintln(w, "Versions:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, inst := range r.Instances {
		where := inst.Source
		if kind == models.KindTest {
			where = strings.TrimSpace(inst.Repository + " " + inst.Path)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", inst.Version, inst.ID, formatTime(inst.Timestamp), where)
	}
	tw.Flush()
}

func printSummaryResults(w io.Writer, results []models.SummaryResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODEL\tTEST\tSCORE\tDATE")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%s\n", r.ID,
			label(r.ModelAlias, r.ModelName, r.ModelVersion),
			label(r.TestAlias, r.TestName, r.TestVersion),
			r.Score, formatTime(r.Timestamp))
	}
	tw.Flush()
}

func printResult(w io.Writer, r *models.ExtendedResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", r.ID)
	if r.Model != nil {
		fmt.Fprintf(tw, "Model:\t%s\n", label(r.Model.Alias, r.Model.Name, instanceVersion(r.ModelInstance)))
	}
	if r.Test != nil {
		fmt.Fprintf(tw, "Test:\t%s\n", label(r.Test.Alias, r.Test.Name, instanceVersion(r.TestInstance)))
	}
	fmt.Fprintf(tw, "Score:\t%g\n", r.Score)
	if r.NormalizedScore != nil {
		fmt.Fprintf(tw, "Normalized:\t%g\n", *r.NormalizedScore)
	}
	if r.Passed != nil {
		fmt.Fprintf(tw, "Passed:\t%t\n", *r.Passed)
	}
	if r.ProjectID != "" {
		fmt.Fprintf(tw, "Project:\t%s\n", r.ProjectID)
	}
	fmt.Fprintf(tw, "Date:\t%s\n", formatTime(r.Timestamp))
	for _, f := range r.ResultsStorage {
		fmt.Fprintf(tw, "File:\t%s\n", f.DownloadURL)
	}
	tw.Flush()
}

func printComments(w io.Writer, list []models.Comment) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No comments")
		return
	}
	for _, c := range list {
		who := "anonymous"
		if c.Commenter != nil {
			who = strings.TrimSpace(c.Commenter.GivenName + " " + c.Commenter.FamilyName)
		}
		fmt.Fprintf(w, "[%s] %s, %s (%s)\n%s\n\n", c.ID, who, formatTime(c.Timestamp), c.Status, c.Content)
	}
}

func label(alias, name, version string) string {
	s := alias
	if s == "" {
		s = name
	}
	if version != "" {
		s += " @ " + version
	}
	return s
}

func instanceVersion(inst *models.Instance) string {
	if inst == nil {
		return ""
	}
	return inst.Version
}

func people(list []models.Person) string {
	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, strings.TrimSpace(p.GivenName+" "+p.FamilyName))
	}
	return strings.Join(names, ", ")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}
