// Package products holds the product model the rendering engine resolves
// pricing tags against.
//
// A Product is the engine's view of one purchasable item after the view model
// has associated the backend paywall configuration with store products. The
// package also owns the per-period price conversion used by PRICE_PER_* text
// tags: converting a subscription price between day/week/month/year periods
// with ceiling rounding, and returning the localized price string verbatim in
// the identity case so no formatting precision is lost.
package products
