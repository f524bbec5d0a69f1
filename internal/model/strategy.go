package model

import "fmt"

// Strategy enumerates the three naive strategies under comparison. The set is
// fixed; an unknown value anywhere downstream is a programming error.
type Strategy int

const (
	// OpenToClose buys at the day's open and sells at the same day's close.
	OpenToClose Strategy = iota
	// CloseToOpen buys at the close and sells at the next trading day's open.
	CloseToOpen
	// BuyAndHold holds continuously; returns follow the adjusted close.
	BuyAndHold
)

// Strategies lists all strategies in presentation order.
var Strategies = []Strategy{OpenToClose, CloseToOpen, BuyAndHold}

func (s Strategy) String() string {
	switch s {
	case OpenToClose:
		return "open-to-close"
	case CloseToOpen:
		return "close-to-open"
	case BuyAndHold:
		return "buy-and-hold"
	default:
		panic(fmt.Sprintf("unknown strategy %d", int(s)))
	}
}

// Label is the human-readable name used in chart legends and reports.
func (s Strategy) Label() string {
	switch s {
	case OpenToClose:
		return "Open to Close"
	case CloseToOpen:
		return "Close to Open"
	case BuyAndHold:
		return "Buy and Hold"
	default:
		panic(fmt.Sprintf("unknown strategy %d", int(s)))
	}
}

// Fields returns the price fields the strategy needs from a PriceTable.
func (s Strategy) Fields() []Field {
	switch s {
	case OpenToClose, CloseToOpen:
		return []Field{FieldOpen, FieldClose}
	case BuyAndHold:
		return []Field{FieldAdjClose}
	default:
		panic(fmt.Sprintf("unknown strategy %d", int(s)))
	}
}
