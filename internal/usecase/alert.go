package usecase

// AlertPolicy decides whether a price change warrants a notification.
// Pure and total: price rises and missing history are "no alert",
// never errors.
type AlertPolicy struct {
	Threshold float64
}

// NewAlertPolicy creates an alert policy with the configured
// price-drop threshold
func NewAlertPolicy(threshold float64) AlertPolicy {
	return AlertPolicy{Threshold: threshold}
}

// ShouldAlert fires only when the price dropped by strictly more than
// the threshold compared to the previous observation. A nil previous
// price (first-ever observation for the date pair) never alerts.
func (p AlertPolicy) ShouldAlert(previousPrice *float64, currentPrice float64) bool {
	if previousPrice == nil {
		return false
	}
	return *previousPrice-currentPrice > p.Threshold
}

// PriceDrop returns the drop amount versus the previous observation,
// positive when the price decreased, or nil without a previous price
func (p AlertPolicy) PriceDrop(previousPrice *float64, currentPrice float64) *float64 {
	if previousPrice == nil {
		return nil
	}
	drop := *previousPrice - currentPrice
	return &drop
}
