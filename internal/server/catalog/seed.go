package catalog

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

// Seed fills an empty catalog with a small demo data set: the filter
// vocabulary, two projects, a model and a test with one instance each, a
// result linking them and a comment on the model.
func Seed(ctx context.Context, svc *Service) error {
	vocab := models.Vocabulary{
		"species":               {"Mus musculus", "Rattus norvegicus", "Homo sapiens"},
		"brain_region":          {"hippocampus", "somatosensory cortex", "cerebellum"},
		"cell_type":             {"pyramidal cell", "interneuron", "Purkinje cell"},
		"model_scope":           {"single cell", "network", "subcellular"},
		"abstraction_level":     {"spiking neurons", "rate neurons", "biophysical"},
		"test_type":             {"single cell activity", "network structure"},
		"score_type":            {"z-score", "p-value", "Other"},
		"recording_modality":    {"electrophysiology", "imaging"},
		"implementation_status": {"proposal", "in development", "published"},
		"content_type":          {"application/zip", "text/x-python", "application/json"},
	}
	if err := svc.repo.SetVocabulary(ctx, vocab); err != nil {
		return err
	}
	for _, p := range []Project{{ProjectID: "demo-lab", Editable: true}, {ProjectID: "public-showcase"}} {
		if err := svc.repo.SaveProject(ctx, p); err != nil {
			return err
		}
	}

	model, err := svc.CreateResource(ctx, models.KindModel, &models.Resource{
		Alias:            "ca1-pyr",
		Name:             "CA1 pyramidal cell",
		Description:      "Detailed CA1 pyramidal neuron",
		Author:           []models.Person{{GivenName: "Ada", FamilyName: "Lovelace"}},
		ProjectID:        "demo-lab",
		Species:          "Rattus norvegicus",
		BrainRegion:      "hippocampus",
		CellType:         "pyramidal cell",
		ModelScope:       "single cell",
		AbstractionLevel: "biophysical",
		Instances: []models.Instance{{
			Version:    "1.0",
			CodeFormat: "application/zip",
			Source:     "https://example.org/models/ca1-pyr-1.0.zip",
			License:    "BSD 3-Clause",
		}},
	})
	if err != nil {
		return fmt.Errorf("seed model: %w", err)
	}

	test, err := svc.CreateResource(ctx, models.KindTest, &models.Resource{
		Alias:             "ca1-somatic-features",
		Name:              "CA1 somatic features",
		Species:           "Rattus norvegicus",
		BrainRegion:       "hippocampus",
		CellType:          "pyramidal cell",
		TestType:          "single cell activity",
		ScoreType:         "z-score",
		DataType:          "Mean, SD",
		RecordingModality: "electrophysiology",
		Status:            "published",
		Instances: []models.Instance{{
			Version:    "1.0",
			Repository: "https://example.org/tests/ca1-features.git",
			Path:       "tests.SomaticFeaturesTest",
		}},
	})
	if err != nil {
		return fmt.Errorf("seed test: %w", err)
	}

	passed := true
	if _, err := svc.AddResult(ctx, &models.ExtendedResult{
		ModelInstanceID: model.Instances[0].ID,
		TestInstanceID:  test.Instances[0].ID,
		Score:           0.87,
		Passed:          &passed,
		ProjectID:       "demo-lab",
	}); err != nil {
		return fmt.Errorf("seed result: %w", err)
	}

	if _, err := svc.CreateComment(ctx, "demo", model.ID, "Matches the somatic features within one SD."); err != nil {
		return fmt.Errorf("seed comment: %w", err)
	}
	return nil
}
