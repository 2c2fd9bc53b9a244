package behavior

import (
	"math"

	"github.com/trustlens/review-trust/internal/review"
)

// ratingDistribution builds the star histogram and the polarization
// estimate. Fractional ratings round to the nearest star.
func (a *Analyzer) ratingDistribution(reviews []review.Review) RatingDistribution {
	var d RatingDistribution
	for _, r := range reviews {
		star := int(math.Round(r.Rating))
		switch {
		case star <= 1:
			d.OneStar++
		case star == 2:
			d.TwoStar++
		case star == 3:
			d.ThreeStar++
		case star == 4:
			d.FourStar++
		default:
			d.FiveStar++
		}
		d.Total++
	}
	if d.Total == 0 {
		return d
	}
	extreme := float64(d.OneStar+d.FiveStar) / float64(d.Total)
	if extreme > a.cfg.PolarizationThreshold {
		d.Polarization = round2(extreme)
	}
	return d
}
