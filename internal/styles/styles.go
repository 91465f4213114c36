// Package styles renders the stylistic framing applied to base prompts.
// A style axis names two opposing qualities; a combination picks a few axes
// at random intensities and renders them as a prompt instruction.
package styles

import (
	"fmt"
	"math/rand"
	"strings"
)

// Axis is one stylistic dimension with a high and a low pole.
type Axis struct {
	High string
	Low  string
}

// MinLevel and MaxLevel bound the intensity scale of an axis.
const (
	MinLevel = -2
	MaxLevel = 2
)

// DefaultAxes are the stylistic dimensions used when generating datasets.
var DefaultAxes = []Axis{
	{High: "long", Low: "short"},
	{High: "factual", Low: "emotional"},
	{High: "advanced", Low: "simple"},
	{High: "expert-oriented", Low: "layman-oriented"},
	{High: "formal", Low: "informal"},
	{High: "creative", Low: "straightforward"},
	{High: "enthusiastic", Low: "reserved"},
}

// Quant renders one intensity level of the axis, e.g. "very formal" or
// "somewhat informal". Level 0 renders empty (the axis is not expressed).
// Levels outside [MinLevel, MaxLevel] are clamped.
func (a Axis) Quant(level int) string {
	if level == 0 {
		return ""
	}

	pole := a.High
	if level < 0 {
		pole = a.Low
		level = -level
	}
	if level > MaxLevel {
		level = MaxLevel
	}

	if level == 1 {
		return "somewhat " + pole
	}
	return "very " + pole
}

// RandomQuant renders the axis at a random nonzero intensity.
func (a Axis) RandomQuant(rng *rand.Rand) string {
	levels := [4]int{-2, -1, 1, 2}
	return a.Quant(levels[rng.Intn(len(levels))])
}

// RandomCombination picks n distinct axes from DefaultAxes at random
// intensities and joins them, e.g. "very formal, somewhat emotional,
// very short". n is clamped to the number of available axes.
func RandomCombination(rng *rand.Rand, n int) string {
	if n > len(DefaultAxes) {
		n = len(DefaultAxes)
	}
	if n < 1 {
		return ""
	}

	parts := make([]string, 0, n)
	for _, idx := range rng.Perm(len(DefaultAxes))[:n] {
		parts = append(parts, DefaultAxes[idx].RandomQuant(rng))
	}
	return strings.Join(parts, ", ")
}

// Apply turns a base prompt and a rendered combination into the prompt
// actually issued to an agent.
func Apply(basePrompt, combination string) string {
	if combination == "" {
		return basePrompt
	}
	return fmt.Sprintf("%s Please answer in a %s manner.", basePrompt, combination)
}
