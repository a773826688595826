package ingredient

import (
	"math"
	"regexp"
	"strconv"
)

// ScaledIngredient is a parsed ingredient after its amount was multiplied by ScaleFactor.
type ScaledIngredient struct {
	ParsedIngredient
	ScaleFactor float64 `json:"scale_factor"`
	Scaled      string  `json:"scaled"`
}

// Scale multiplies the ingredient amount by factor and renders the result.
// Ingredients without an amount keep their original text. The factor is
// applied as given; callers clamp it to a sensible range.
func Scale(p ParsedIngredient, factor float64) ScaledIngredient {
	out := ScaledIngredient{ParsedIngredient: p, ScaleFactor: factor}
	if p.Amount == nil {
		out.Scaled = p.Original
		return out
	}

	amount := *p.Amount * factor
	out.Amount = &amount
	out.Scaled = render(amount, p.Unit, p.Name)
	return out
}

// ScaleLines parses and scales every line.
func ScaleLines(lines []string, factor float64) []ScaledIngredient {
	out := make([]ScaledIngredient, 0, len(lines))
	for _, line := range lines {
		out = append(out, Scale(Parse(line), factor))
	}
	return out
}

// MinScalableMinutes is the longest duration left untouched by ScaleCookingTime.
const MinScalableMinutes = 5

// CookingTimeMultiplier returns the dampened multiplier applied to cooking
// times for a quantity scale factor.
func CookingTimeMultiplier(factor float64) float64 {
	switch {
	case factor <= 0.5:
		return 0.8
	case factor <= 1:
		return 0.9 + (factor-0.5)/0.5*0.1
	case factor <= 2:
		return 1.0 + (factor-1)*0.3
	default:
		return 1.3 + (factor-2)*0.1
	}
}

// ScaleCookingTime adjusts a duration in minutes for a recipe scaled by factor.
func ScaleCookingTime(minutes int, factor float64) int {
	if minutes <= MinScalableMinutes {
		return minutes
	}
	return int(math.Round(float64(minutes) * CookingTimeMultiplier(factor)))
}

var stepTimePattern = regexp.MustCompile(`(\d+)(\s*(?:-|–|to)\s*)?(\d+)?(\s*)(minutes?|mins?)\b`)

// ScaleStepText rewrites durations such as "20 minutes" or "10-12 mins"
// inside a recipe step.
func ScaleStepText(text string, factor float64) string {
	return stepTimePattern.ReplaceAllStringFunc(text, func(match string) string {
		m := stepTimePattern.FindStringSubmatch(match)
		low, err := strconv.Atoi(m[1])
		if err != nil {
			return match
		}
		out := strconv.Itoa(ScaleCookingTime(low, factor))
		if m[2] != "" && m[3] != "" {
			high, err := strconv.Atoi(m[3])
			if err != nil {
				return match
			}
			out += m[2] + strconv.Itoa(ScaleCookingTime(high, factor))
		} else if m[2] != "" || m[3] != "" {
			return match
		}
		return out + m[4] + m[5]
	})
}

// ScaleSteps applies ScaleStepText to every step.
func ScaleSteps(steps []string, factor float64) []string {
	out := make([]string, len(steps))
	for i, step := range steps {
		out[i] = ScaleStepText(step, factor)
	}
	return out
}
