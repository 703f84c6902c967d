package wellness

import "github.com/shopspring/decimal"

// Canonical dimension orderings. The order matters: when several dimensions
// tie at the minimum or maximum, the first one in the slice wins.
var (
	HexagonoDims = []string{
		"Visión Corporativa",
		"Planificación",
		"Encaje de Talento",
		"Entrenamiento",
		"Evaluación y Mejora",
		"Reconocimiento",
	}
	BrujulaDims = []string{
		"Autoconocimiento",
		"Autorregulación",
		"Motivación",
		"Empatía",
		"Habilidades Sociales",
	}
)

// NivelAlerta is the stress level at or above which a check-in raises a
// wellness alert.
const NivelAlerta = 4

// Summary holds the derived fields of a periodic evaluation.
type Summary struct {
	Promedio float64
	Baja     string
	Alta     string
}

// Summarize computes the mean of the sub-scores rounded to two decimals and
// the weakest/strongest dimension labels. dims and scores are positional and
// must have the same length.
func Summarize(dims []string, scores []int) Summary {
	sum := 0
	low, high := 0, 0
	for i, v := range scores {
		sum += v
		if v < scores[low] {
			low = i
		}
		if v > scores[high] {
			high = i
		}
	}
	prom := decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(len(scores)))).
		Round(2)
	return Summary{
		Promedio: prom.InexactFloat64(),
		Baja:     dims[low],
		Alta:     dims[high],
	}
}
