package products

import "fmt"

// PeriodUnit is the unit of a subscription billing period.
type PeriodUnit int

const (
	PeriodUnknown PeriodUnit = iota
	PeriodDay
	PeriodWeek
	PeriodMonth
	PeriodYear
)

// String returns a human-readable name for the period unit
func (u PeriodUnit) String() string {
	switch u {
	case PeriodDay:
		return "day"
	case PeriodWeek:
		return "week"
	case PeriodMonth:
		return "month"
	case PeriodYear:
		return "year"
	default:
		return fmt.Sprintf("unknown(%d)", int(u))
	}
}

// Period is a billing period: NumberOfUnits of Unit, e.g. 3 months.
type Period struct {
	Unit          PeriodUnit
	NumberOfUnits int
}

// PaymentMode describes how a discount offer charges the user. It selects
// which product text variant the fallback cascade tries first.
type PaymentMode int

const (
	ModeDefault PaymentMode = iota
	ModeFreeTrial
	ModePayAsYouGo
	ModePayUpFront
)

// String returns the cascade key segment for the payment mode
func (m PaymentMode) String() string {
	switch m {
	case ModeFreeTrial:
		return "free_trial"
	case ModePayAsYouGo:
		return "pay_as_you_go"
	case ModePayUpFront:
		return "pay_up_front"
	default:
		return "default"
	}
}

// Price is an amount plus its already-localized display string. Localized is
// authoritative for display; Amount is used only for arithmetic.
type Price struct {
	Amount    float64
	Currency  string
	Localized string
}

// Offer is a discount phase attached to a subscription product. The first
// offer determines the product's payment mode for text resolution.
type Offer struct {
	ID              string
	Mode            PaymentMode
	Price           Price
	Period          Period
	NumberOfPeriods int
}

// Product is a purchasable item as the rendering engine sees it: the paywall
// configuration's id joined with the store's pricing data. VendorID and
// BasePlanID identify the store product; ID is the backend paywall id text
// tags reference.
type Product struct {
	ID           string
	VendorID     string
	BasePlanID   string
	Title        string
	GroupID      string
	Price        Price
	Subscription *Period
	Offers       []Offer
}

// PaymentMode derives the text-cascade payment mode from the product's first
// discount offer; products without offers resolve as "default".
func (p *Product) PaymentMode() PaymentMode {
	if len(p.Offers) == 0 {
		return ModeDefault
	}
	return p.Offers[0].Mode
}

// FirstOffer returns the product's first discount offer, or nil.
func (p *Product) FirstOffer() *Offer {
	if len(p.Offers) == 0 {
		return nil
	}
	return &p.Offers[0]
}
