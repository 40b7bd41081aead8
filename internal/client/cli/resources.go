package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

func (a *App) Search(ctx context.Context, kind models.Kind, filters models.Filters) error {
	found, err := a.service.Search(ctx, kind, filters, a.refresh)
	if err != nil {
		return err
	}
	printResources(a.out, kind, found)
	return nil
}

func (a *App) Show(ctx context.Context, kind models.Kind, ident string) error {
	r, err := a.service.Show(ctx, kind, ident, a.refresh)
	if err != nil {
		return err
	}
	printResource(a.out, kind, r)
	return nil
}

func (a *App) Register(ctx context.Context, kind models.Kind) error {
	fields, err := GetFields(a.reader, fmt.Sprintf("New %s (%s)", kind, strings.Join(resourceFieldNames(), ", ")), a.out)
	if err != nil {
		return err
	}
	r := &models.Resource{}
	if err := applyResourceFields(r, fields); err != nil {
		return err
	}
	created, err := a.service.Register(ctx, kind, r)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s %s\n", kind, created.ID)
	return nil
}

func (a *App) Edit(ctx context.Context, kind models.Kind, ident string) error {
	r, err := a.service.Show(ctx, kind, ident, false)
	if err != nil {
		return err
	}
	fields, err := GetFields(a.reader, fmt.Sprintf("Edit %s %s (%s)", kind, r.ID, strings.Join(resourceFieldNames(), ", ")), a.out)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}
	if err := applyResourceFields(r, fields); err != nil {
		return err
	}
	updated, err := a.service.Edit(ctx, kind, r)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s %s\n", kind, updated.ID)
	return nil
}

func (a *App) AddVersion(ctx context.Context, kind models.Kind, ident string) error {
	fields, err := GetFields(a.reader, fmt.Sprintf("New version of %s (%s)", ident, strings.Join(instanceFieldNames(), ", ")), a.out)
	if err != nil {
		return err
	}
	inst := &models.Instance{}
	if err := applyInstanceFields(inst, fields); err != nil {
		return err
	}
	created, err := a.service.AddVersion(ctx, kind, ident, inst)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created version %s (%s)\n", created.Version, created.ID)
	return nil
}

func (a *App) EditVersion(ctx context.Context, kind models.Kind, ident, instanceID string) error {
	r, err := a.service.Show(ctx, kind, ident, false)
	if err != nil {
		return err
	}
	i := r.InstanceIndex(instanceID)
	if i < 0 {
		return fmt.Errorf("%s %s has no version with ID %s", kind, ident, instanceID)
	}
	inst := r.Instances[i]

	fields, err := GetFields(a.reader, fmt.Sprintf("Edit version %s (%s)", inst.Version, strings.Join(instanceFieldNames(), ", ")), a.out)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}
	if err := applyInstanceFields(&inst, fields); err != nil {
		return err
	}
	updated, err := a.service.EditVersion(ctx, kind, ident, &inst)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated version %s (%s)\n", updated.Version, updated.ID)
	return nil
}

func (a *App) Vocab(ctx context.Context) error {
	vocab, err := a.service.Vocabulary(ctx, a.refresh)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(vocab))
	for k := range vocab {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "%s: %s\n", k, strings.Join(vocab[k], "; "))
	}
	return nil
}

func (a *App) Projects(ctx context.Context) error {
	projects, err := a.service.Projects(ctx, a.refresh)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No editable projects")
		return nil
	}
	for _, p := range projects {
		fmt.Fprintln(a.out, p)
	}
	return nil
}

func resourceFields(r *models.Resource) map[string]*string {
	return map[string]*string{
		"name":                  &r.Name,
		"alias":                 &r.Alias,
		"description":           &r.Description,
		"project_id":            &r.ProjectID,
		"species":               &r.Species,
		"brain_region":          &r.BrainRegion,
		"cell_type":             &r.CellType,
		"model_scope":           &r.ModelScope,
		"abstraction_level":     &r.AbstractionLevel,
		"organization":          &r.Organization,
		"test_type":             &r.TestType,
		"score_type":            &r.ScoreType,
		"data_location":         &r.DataLocation,
		"data_type":             &r.DataType,
		"recording_modality":    &r.RecordingModality,
		"implementation_status": &r.Status,
	}
}

func instanceFields(inst *models.Instance) map[string]*string {
	return map[string]*string{
		"version":     &inst.Version,
		"description": &inst.Description,
		"parameters":  &inst.Parameters,
		"code_format": &inst.CodeFormat,
		"source":      &inst.Source,
		"license":     &inst.License,
		"hash":        &inst.Hash,
		"morphology":  &inst.Morphology,
		"path":        &inst.Path,
		"repository":  &inst.Repository,
	}
}

func resourceFieldNames() []string {
	names := fieldNames(resourceFields(&models.Resource{}))
	return append(names, "author", "private")
}

func instanceFieldNames() []string {
	return fieldNames(instanceFields(&models.Instance{}))
}

func fieldNames(m map[string]*string) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// applyResourceFields sets the named fields on r. "author" takes
// "Given Family" names separated by ";", "private" takes a boolean.
func applyResourceFields(r *models.Resource, fields map[string]string) error {
	targets := resourceFields(r)
	for name, value := range fields {
		switch name {
		case "author":
			r.Author = parsePeople(value)
		case "private":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("private: %w", err)
			}
			r.Private = b
		default:
			p, ok := targets[name]
			if !ok {
				return fmt.Errorf("unknown field %q", name)
			}
			*p = value
		}
	}
	return nil
}

func applyInstanceFields(inst *models.Instance, fields map[string]string) error {
	targets := instanceFields(inst)
	for name, value := range fields {
		p, ok := targets[name]
		if !ok {
			return fmt.Errorf("unknown field %q", name)
		}
		*p = value
	}
	return nil
}

func parsePeople(s string) []models.Person {
	var people []models.Person
	for _, name := range strings.Split(s, ";") {
		parts := strings.Fields(name)
		if len(parts) == 0 {
			continue
		}
		p := models.Person{GivenName: parts[0]}
		if len(parts) > 1 {
			p.GivenName = strings.Join(parts[:len(parts)-1], " ")
			p.FamilyName = parts[len(parts)-1]
		}
		people = append(people, p)
	}
	return people
}
