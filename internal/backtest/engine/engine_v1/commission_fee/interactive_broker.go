package commission_fee

import "math"

// InteractiveBrokerCommissionFee is the fixed US equity plan: $0.005 per share,
// at least $1 and at most 1% of the trade value.
type InteractiveBrokerCommissionFee struct {
	PerShare   float64
	Minimum    float64
	MaxPercent float64
}

func NewInteractiveBrokerCommissionFee() CommissionFee {
	return &InteractiveBrokerCommissionFee{
		PerShare:   0.005,
		Minimum:    1.0,
		MaxPercent: 0.01,
	}
}

func (c *InteractiveBrokerCommissionFee) Calculate(quantity float64, price float64) float64 {
	quantity = math.Abs(quantity)

	fee := math.Max(c.PerShare*quantity, c.Minimum)

	if maxFee := c.MaxPercent * quantity * price; maxFee > 0 && fee > maxFee {
		return maxFee
	}

	return fee
}
