// Package promotionservice implements campaign rule matching and discount
// application inside the commerce context.
//
// The module owns campaign and coupon lifecycle, basket and catalog match
// evaluation, discount effect computation with stacking and clamping, and the
// namespace-versioned caches that keep catalog matching cheap. It keeps
// business rules in application/domain layers and isolates infrastructure
// concerns behind ports and adapters.
package promotionservice
