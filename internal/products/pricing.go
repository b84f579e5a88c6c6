package products

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Day-count approximations used when converting between period units.
const (
	daysPerWeek   = 7.0
	daysPerMonth  = 30.0
	daysPerYear   = 365.0
	weeksPerYear  = 52.0
	monthsPerYear = 12.0
)

// PricePerAmount converts the product's subscription price to a per-target-
// period amount. The price is first divided by the number of billing units
// with ceiling rounding at 4 decimal places, then scaled between units using
// the 365/30/7-day approximations; the year unit converts to months and
// weeks with the exact 12 and 52 factors. Returns false when the product has
// no subscription period.
func PricePerAmount(p *Product, target PeriodUnit) (float64, bool) {
	sub := p.Subscription
	if sub == nil || sub.Unit == PeriodUnknown || sub.NumberOfUnits <= 0 {
		return 0, false
	}

	perUnit := ceil4(p.Price.Amount / float64(sub.NumberOfUnits))

	var amount float64
	switch sub.Unit {
	case PeriodYear:
		switch target {
		case PeriodYear:
			amount = perUnit
		case PeriodMonth:
			amount = perUnit / monthsPerYear
		case PeriodWeek:
			amount = perUnit / weeksPerYear
		case PeriodDay:
			amount = perUnit / daysPerYear
		default:
			return 0, false
		}
	case PeriodMonth:
		switch target {
		case PeriodYear:
			amount = perUnit * monthsPerYear
		case PeriodMonth:
			amount = perUnit
		case PeriodWeek:
			amount = perUnit / (daysPerMonth / daysPerWeek)
		case PeriodDay:
			amount = perUnit / daysPerMonth
		default:
			return 0, false
		}
	case PeriodWeek:
		switch target {
		case PeriodYear:
			amount = perUnit * weeksPerYear
		case PeriodMonth:
			amount = perUnit * (daysPerMonth / daysPerWeek)
		case PeriodWeek:
			amount = perUnit
		case PeriodDay:
			amount = perUnit / daysPerWeek
		default:
			return 0, false
		}
	case PeriodDay:
		switch target {
		case PeriodYear:
			amount = perUnit * daysPerYear
		case PeriodMonth:
			amount = perUnit * daysPerMonth
		case PeriodWeek:
			amount = perUnit * daysPerWeek
		case PeriodDay:
			amount = perUnit
		default:
			return 0, false
		}
	default:
		return 0, false
	}
	return amount, true
}

// PricePer converts the subscription price to a display string for the
// target period. When the product already bills in the target unit with a
// single-unit period, the localized store price is returned verbatim so the
// store's own formatting (grouping, currency placement) survives untouched.
func PricePer(p *Product, target PeriodUnit) string {
	sub := p.Subscription
	if sub == nil {
		return ""
	}
	if sub.Unit == target && sub.NumberOfUnits == 1 {
		return p.Price.Localized
	}
	amount, ok := PricePerAmount(p, target)
	if !ok {
		return ""
	}
	return reformatLocalized(p.Price.Localized, p.Price.Currency, amount)
}

// ceil4 rounds up to 4 decimal places
func ceil4(x float64) float64 {
	return math.Ceil(x*10000) / 10000
}

// reformatLocalized swaps the numeric run inside a localized price string for
// a newly computed amount, keeping the currency symbol and its position. A
// localized string without digits falls back to "<currency> <amount>".
func reformatLocalized(localized, currency string, amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	start, end := -1, -1
	for i, r := range localized {
		isNumeric := unicode.IsDigit(r) || r == '.' || r == ','
		if isNumeric && start == -1 {
			start = i
		}
		if !isNumeric && start != -1 {
			end = i
			break
		}
	}
	if start == -1 {
		if currency == "" {
			return formatted
		}
		return currency + " " + formatted
	}
	if end == -1 {
		end = len(localized)
	}

	// Preserve a decimal comma if the store locale uses one. A comma followed
	// by exactly three digits is a grouping separator, not a decimal mark.
	run := localized[start:end]
	if i := strings.LastIndex(run, ","); i != -1 && !strings.Contains(run, ".") && len(run)-i-1 != 3 {
		formatted = strings.ReplaceAll(formatted, ".", ",")
	}
	return localized[:start] + formatted + localized[end:]
}
