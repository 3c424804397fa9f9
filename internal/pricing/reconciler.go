package pricing

import (
	"math"

	"unimarket/internal/domain"
)

// conditionRatios maps each wear tier to the fraction of the implied
// original price a listing in that state should ask for.
var conditionRatios = map[domain.Condition]float64{
	domain.ConditionNew:     0.92,
	domain.ConditionLikeNew: 0.82,
	domain.ConditionGood:    0.65,
	domain.ConditionFair:    0.45,
}

// Ratio returns the price ratio for a condition tier. Unknown tiers map to
// 1, so a malformed value degrades to pass-through pricing instead of
// zeroing the field.
func Ratio(c domain.Condition) float64 {
	if r, ok := conditionRatios[c]; ok {
		return r
	}
	return 1
}

// Reconciler keeps a listing form's displayed price consistent with its
// selected condition tier. Each price edit anchors an implied original
// price at the current tier's ratio; each later tier change re-derives the
// displayed price from that anchor, not from the true original. Repeated
// toggling without a fresh price edit accumulates rounding drift, which is
// the intended behavior.
type Reconciler struct {
	condition domain.Condition
	price     int
	basePrice float64
	anchored  bool
}

// NewReconciler starts a form with the given initial condition and no
// anchored base price.
func NewReconciler(condition domain.Condition) *Reconciler {
	return &Reconciler{condition: condition}
}

// LoadListing seeds the form from an existing listing, re-deriving the
// anchor from its stored price and condition.
func (r *Reconciler) LoadListing(price int, c domain.Condition) {
	r.condition = c
	r.price = price
	r.basePrice = float64(price) / Ratio(c)
	r.anchored = true
}

// SetPrice records a manual price edit. A positive value anchors a new base
// price at the current condition's ratio; anything else clears both the
// displayed price and the anchor, and no derivation happens until the next
// valid edit.
func (r *Reconciler) SetPrice(price int) {
	if price > 0 {
		r.price = price
		r.basePrice = float64(price) / Ratio(r.condition)
		r.anchored = true
		return
	}
	r.price = 0
	r.anchored = false
}

// SetCondition adopts a new tier. When a base price is anchored the
// displayed price is re-derived from it with nearest-integer rounding;
// otherwise only the tier changes and the price field is left alone.
func (r *Reconciler) SetCondition(c domain.Condition) {
	r.condition = c
	if r.anchored {
		r.price = int(math.Round(r.basePrice * Ratio(c)))
	}
}

// ApplyAnalysis ingests an AI suggestion, overwriting both fields and
// re-anchoring exactly as a manual edit of the suggested price would.
func (r *Reconciler) ApplyAnalysis(c domain.Condition, suggestedPrice int) {
	r.condition = c
	r.SetPrice(suggestedPrice)
}

// Price returns the currently displayed price.
func (r *Reconciler) Price() int {
	return r.price
}

// Condition returns the active condition tier.
func (r *Reconciler) Condition() domain.Condition {
	return r.condition
}

// BasePrice returns the anchored implied original price, if one is set.
func (r *Reconciler) BasePrice() (float64, bool) {
	return r.basePrice, r.anchored
}
