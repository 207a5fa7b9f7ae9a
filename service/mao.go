package service

import "math"

// MAOCalculator evaluates maximum allowable offers for a fixed ARV and
// repair budget.
type MAOCalculator struct {
	ARV              float64
	RepairCosts      float64
	SeventyPercent   float64
	SixtyFivePercent float64
}

func NewMAOCalculator(arv, repairCosts float64) *MAOCalculator {
	arv = math.Max(0, finite(arv))
	repairCosts = finite(repairCosts)
	return &MAOCalculator{
		ARV:              arv,
		RepairCosts:      repairCosts,
		SeventyPercent:   maxAllowableOffer(arv, repairCosts, MAORulePercent),
		SixtyFivePercent: maxAllowableOffer(arv, repairCosts, conservativeMAORule),
	}
}

// AtPercent returns arv*percent/100 - repairs, floored at 0.
func (m *MAOCalculator) AtPercent(percent float64) float64 {
	return maxAllowableOffer(m.ARV, m.RepairCosts, percent)
}
