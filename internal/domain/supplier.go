package domain

import "math"

// Number of minutes of average response time that costs one rating point.
const responseScoreWindow = 60.0

// UpdateStats folds one order outcome into the supplier's reputation
// counters and recomputes the rating. The rating is always derived here,
// never set directly.
//
// The response-time average blends the previous average with the newest
// sample, (old+new)/2. That weights recent orders heavily rather than being
// a true mean over all samples; it is the behavior suppliers have been rated
// on so far and is kept as-is.
func (s *Supplier) UpdateStats(isSuccessful bool, responseTimeMinutes float64) {
	s.TotalOrders++
	if isSuccessful {
		s.SuccessfulOrders++
	}

	if responseTimeMinutes > 0 {
		if s.AverageResponseTime > 0 {
			s.AverageResponseTime = (s.AverageResponseTime + responseTimeMinutes) / 2
		} else {
			s.AverageResponseTime = responseTimeMinutes
		}
	}

	successRate := float64(s.SuccessfulOrders) / float64(s.TotalOrders)
	responseScore := 3.0 // neutral until a first response time is recorded
	if s.AverageResponseTime > 0 {
		responseScore = math.Max(0, 5-s.AverageResponseTime/responseScoreWindow)
	}
	s.Rating = math.Min(5, successRate*3+responseScore*0.4+1)
}

// SuccessRate returns the percentage of fulfilled orders, rounded to the
// nearest whole percent.
func (s *Supplier) SuccessRate() int {
	if s.TotalOrders == 0 {
		return 0
	}
	return int(math.Round(float64(s.SuccessfulOrders) / float64(s.TotalOrders) * 100))
}

// Deactivate soft-disables the supplier. Suppliers referenced by products or
// historical orders are never deleted.
func (s *Supplier) Deactivate() {
	s.IsActive = false
}
