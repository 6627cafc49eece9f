package classifier

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ModelBundle is the frozen inference artifact: the presence and category
// ensembles plus the label mapping, exported to JSON by the offline
// training pipeline. Loaded once at process start and immutable afterwards;
// shipping a new model means restarting the process.
type ModelBundle struct {
	Layout   Layout
	Presence *Ensemble
	Category *Ensemble
}

type classesFile struct {
	Layout     Layout   `json:"layout"`
	Categories []string `json:"categories"`
}

type modelFile struct {
	Labels      []string        `json:"labels,omitempty"`
	Scaler      *Scaler         `json:"scaler"`
	Estimators  []estimatorSpec `json:"estimators"`
	Calibration *Isotonic       `json:"calibration,omitempty"`
}

type estimatorSpec struct {
	Type      string      `json:"type"`
	Weight    float64     `json:"weight"`
	Coef      [][]float64 `json:"coef,omitempty"`
	Intercept []float64   `json:"intercept,omitempty"`
	Trees     []Tree      `json:"trees,omitempty"`
	Classes   int         `json:"classes,omitempty"`
}

// LoadModelBundle reads classes.json, category.json and the optional
// presence.json from dir and validates every shape before returning. Any
// inconsistency is an error the host must treat as fatal; a bundle is never
// partially usable.
func LoadModelBundle(dir string) (*ModelBundle, error) {
	var classes classesFile
	if err := readJSON(filepath.Join(dir, "classes.json"), &classes); err != nil {
		return nil, fmt.Errorf("model bundle: %w", err)
	}

	if classes.Layout == "" {
		classes.Layout = LayoutColorShape24
	}

	if classes.Layout.Size() == 0 {
		return nil, fmt.Errorf("model bundle: unknown feature layout %q", classes.Layout)
	}

	if len(classes.Categories) == 0 {
		return nil, errors.New("model bundle: classes.json lists no categories")
	}

	known := make(map[string]bool, len(CategoryLabels))
	for _, label := range CategoryLabels {
		known[label] = true
	}

	for _, label := range classes.Categories {
		if !known[label] {
			return nil, fmt.Errorf("model bundle: unknown category label %q", label)
		}
	}

	category, err := loadEnsemble(filepath.Join(dir, "category.json"), classes.Categories, classes.Layout)
	if err != nil {
		return nil, fmt.Errorf("model bundle: category model: %w", err)
	}

	bundle := &ModelBundle{Layout: classes.Layout, Category: category}

	presencePath := filepath.Join(dir, "presence.json")
	if _, err := os.Stat(presencePath); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("model bundle: %w", err)
		}

		// Single-stage bundle: the engine treats every frame as present.
		return bundle, nil
	}

	presence, err := loadEnsemble(presencePath, []string{LabelAbsent, LabelPresent}, classes.Layout)
	if err != nil {
		return nil, fmt.Errorf("model bundle: presence model: %w", err)
	}

	bundle.Presence = presence

	return bundle, nil
}

func loadEnsemble(path string, labels []string, layout Layout) (*Ensemble, error) {
	var file modelFile
	if err := readJSON(path, &file); err != nil {
		return nil, err
	}

	if len(file.Labels) > 0 {
		if len(file.Labels) != len(labels) {
			return nil, fmt.Errorf("declares %d labels, expected %d", len(file.Labels), len(labels))
		}

		for i, label := range file.Labels {
			if label != labels[i] {
				return nil, fmt.Errorf("label %d is %q, expected %q", i, label, labels[i])
			}
		}
	}

	ensemble := &Ensemble{
		Labels:      labels,
		Layout:      layout,
		Scaler:      file.Scaler,
		Calibration: file.Calibration,
	}

	for i, spec := range file.Estimators {
		estimator, err := buildEstimator(spec)
		if err != nil {
			return nil, fmt.Errorf("estimator %d: %w", i, err)
		}

		ensemble.Estimators = append(ensemble.Estimators, estimator)
		ensemble.Weights = append(ensemble.Weights, spec.Weight)
	}

	if err := ensemble.validate(); err != nil {
		return nil, err
	}

	return ensemble, nil
}

func buildEstimator(spec estimatorSpec) (Estimator, error) {
	switch spec.Type {
	case "linear":
		return &LinearEstimator{Coef: spec.Coef, Intercept: spec.Intercept}, nil
	case "forest":
		return &ForestEstimator{Trees: spec.Trees, Classes: spec.Classes}, nil
	default:
		return nil, fmt.Errorf("unknown estimator type %q", spec.Type)
	}
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return nil
}
