package model

import "math"

// RoundHalfUp rounds to the nearest integer with halves going toward +Inf,
// so -2.5 becomes -2. Derived values depend on this exact behavior.
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// RoundTenth rounds to one decimal place using RoundHalfUp.
func RoundTenth(x float64) float64 {
	return RoundHalfUp(x*10) / 10
}
