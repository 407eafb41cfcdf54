package rating

import (
	"math"

	"github.com/montanaflynn/stats"

	"quietspot/internal/models"
)

// CalculateAverageRatings averages the quietness, comfort and lighting scores
// of reviews, each rounded to one decimal place. Overall is the mean of the
// three rounded scores, rounded again, so it always agrees with the figures
// displayed next to it. An empty slice yields an all-zero summary.
func CalculateAverageRatings(reviews []models.Review) models.RatingSummary {
	if len(reviews) == 0 {
		return models.RatingSummary{}
	}

	var quietness, comfort, lighting float64
	for _, r := range reviews {
		quietness += r.Quietness
		comfort += r.Comfort
		lighting += r.Lighting
	}
	n := float64(len(reviews))

	summary := models.RatingSummary{
		Quietness: roundTenth(quietness / n),
		Comfort:   roundTenth(comfort / n),
		Lighting:  roundTenth(lighting / n),
	}

	// Mean only fails on empty input.
	overall, _ := stats.Mean(stats.Float64Data{summary.Quietness, summary.Comfort, summary.Lighting})
	summary.Overall = roundTenth(overall)
	return summary
}

// roundTenth rounds half away from zero at the tenths digit.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
