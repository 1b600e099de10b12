package chart

import (
	"encoding/json"
	"math"
)

// jsonFloat returns a pointer encoding for a float so that NaN and
// infinities, which encoding/json rejects, serialize as null.
func jsonFloat(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// MarshalJSON encodes the point with undefined coordinates as null.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Label string   `json:"label,omitempty"`
		X     *float64 `json:"x"`
		Y     *float64 `json:"y"`
	}{
		Label: p.Label,
		X:     jsonFloat(p.X),
		Y:     jsonFloat(p.Y),
	})
}

// MarshalJSON encodes undefined coefficients as null.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	coeffs := make([][]*float64, len(m.Coeffs))
	for i, row := range m.Coeffs {
		coeffs[i] = make([]*float64, len(row))
		for j, c := range row {
			coeffs[i][j] = jsonFloat(c)
		}
	}
	return json.Marshal(struct {
		Columns []string     `json:"columns"`
		Coeffs  [][]*float64 `json:"coeffs"`
	}{Columns: m.Columns, Coeffs: coeffs})
}
