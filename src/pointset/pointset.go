// Package pointset loads, saves and generates the red/blue point sets.
package pointset

import (
	"math/rand"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

const (
	// MinCount and MaxCount bound the per-colour point count the viewer accepts.
	MinCount = 1
	MaxCount = 50
	// DefaultFileName is used when exporting the current set.
	DefaultFileName = "current_point_set.json"

	randomSpan   = 20.0
	randomOffset = -10.0
	randomJitter = 0.0001
)

// Set is the pair of labelled point sets. The JSON form matches the file
// the viewer exports: {"redPoints":[{"x":..,"y":..}], "bluePoints":[...]}.
type Set struct {
	Red  []viewport.Point `json:"redPoints" yaml:"redPoints"`
	Blue []viewport.Point `json:"bluePoints" yaml:"bluePoints"`
}

// Empty reports whether either colour has no points; the backend needs both.
func (s Set) Empty() bool { return len(s.Red) == 0 || len(s.Blue) == 0 }

// Collections returns the sets in the order bounds computation expects.
func (s Set) Collections() [][]viewport.Point { return [][]viewport.Point{s.Red, s.Blue} }

// Clone deep-copies both slices.
func (s Set) Clone() Set {
	return Set{
		Red:  append([]viewport.Point(nil), s.Red...),
		Blue: append([]viewport.Point(nil), s.Blue...),
	}
}

// ClampCount limits a requested per-colour count to [MinCount, MaxCount].
func ClampCount(n int) int {
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// Random draws nRed and nBlue points uniformly from [-10,10) on both axes,
// plus a tiny jitter so no two coordinates coincide exactly.
func Random(nRed, nBlue int, rng *rand.Rand) Set {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return Set{Red: randomPoints(nRed, rng), Blue: randomPoints(nBlue, rng)}
}

func randomPoints(n int, rng *rand.Rand) []viewport.Point {
	if n <= 0 {
		return nil
	}
	out := make([]viewport.Point, n)
	for i := range out {
		out[i] = viewport.Point{
			X: rng.Float64()*randomSpan + randomOffset + rng.Float64()*randomJitter,
			Y: rng.Float64()*randomSpan + randomOffset + rng.Float64()*randomJitter,
		}
	}
	return out
}
