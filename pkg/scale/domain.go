package scale

import "math"

// Domain is the closed interval of data values a scale maps from.
type Domain struct {
	Min, Max float64
}

// Span returns Max - Min.
func (d Domain) Span() float64 { return d.Max - d.Min }

// Degenerate reports whether d has zero width or a non-finite bound.
func (d Domain) Degenerate() bool {
	return d.Min == d.Max || !finite(d.Min) || !finite(d.Max)
}

// MaxDomain returns [0, max(values)]. Non-finite values are ignored. When no
// finite value is present, or the maximum is not positive, the domain falls
// back to [0, fallback].
func MaxDomain(values []float64, fallback float64) Domain {
	hi, ok := maxFinite(values)
	if !ok || hi <= 0 {
		return Domain{0, fallback}
	}
	return Domain{0, hi}
}

// ExtentDomain returns [min(values), max(values)]. Non-finite values are
// ignored. An empty input yields [0, span]; all-equal input yields
// [v, v+span].
func ExtentDomain(values []float64, span float64) Domain {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if !finite(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	switch {
	case lo > hi:
		return Domain{0, span}
	case lo == hi:
		return Domain{lo, lo + span}
	}
	return Domain{lo, hi}
}

func maxFinite(values []float64) (float64, bool) {
	hi, ok := math.Inf(-1), false
	for _, v := range values {
		if finite(v) && v > hi {
			hi, ok = v, true
		}
	}
	return hi, ok
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
