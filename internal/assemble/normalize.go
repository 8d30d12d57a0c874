package assemble

import "math"

// Scale identifies the target reporting unit for normalization.
type Scale string

const (
	// ScaleMillions divides raw currency values by 1e6.
	ScaleMillions Scale = "M"
	// ScaleBillions divides raw currency values by 1e9.
	ScaleBillions Scale = "B"
)

// Divisor returns the divisor for the scale. Unknown scales default to
// millions, the fixed reporting unit of the scoring engine.
func (s Scale) Divisor() float64 {
	if s == ScaleBillions {
		return 1e9
	}
	return 1e6
}

// Normalize converts a raw currency value to the given scale. It is a
// pure function: nil in, nil out, and non-finite values also yield nil
// instead of propagating into the score.
func Normalize(value *float64, scale Scale) *float64 {
	if value == nil {
		return nil
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return nil
	}

	scaled := *value / scale.Divisor()
	return &scaled
}
