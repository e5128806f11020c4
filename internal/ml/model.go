// Package ml adapts a pre-trained migration regression model into the same
// inflow-score/tier vocabulary the rule-based migration alerts use.
package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

// Input formats a model artifact can declare. The format is decided once at
// load time; there is no per-call fallback dispatch.
const (
	InputCategorical = "categorical"
	InputNumeric     = "numeric"
)

// LinearModel is the serialized regression model: a linear form over the
// training feature columns, with optional per-category offset tables for the
// state and district columns. Predictions are on the log1p scale of the
// training target.
type LinearModel struct {
	Format       string                        `json:"format"`
	Bias         float64                       `json:"bias"`
	Coefficients map[string]float64            `json:"coefficients"`
	Categorical  map[string]map[string]float64 `json:"categorical,omitempty"`
}

func LoadModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	switch m.Format {
	case "":
		if len(m.Categorical) > 0 {
			m.Format = InputCategorical
		} else {
			m.Format = InputNumeric
		}
	case InputCategorical, InputNumeric:
	default:
		return nil, fmt.Errorf("model artifact declares unknown input format %q", m.Format)
	}
	return &m, nil
}

// Predict evaluates the model against a feature frame and returns one
// log-scale score per row. Unknown feature names contribute nothing; unknown
// categories contribute a zero offset.
func (m *LinearModel) Predict(rows []FeatureRow) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		s := m.Bias
		for name, w := range m.Coefficients {
			s += w * row.Values[name]
		}
		if m.Format == InputCategorical {
			if offsets, ok := m.Categorical["state"]; ok {
				s += offsets[row.State]
			}
			if offsets, ok := m.Categorical["district"]; ok {
				s += offsets[row.District]
			}
		}
		out[i] = s
	}
	return out
}
