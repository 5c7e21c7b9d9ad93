package proxy

// Currency a currency code, either fiat ("USD") or a ZEL denomination ("mZEL")
type Currency string

// Amount a monetary amount in some Currency
type Amount float64

// Exchanged the outcome of a conversion
type Exchanged struct {
	Rate   Rate
	Amount Amount
}

// Rate an exchange rate, units of the target currency per unit of the source
type Rate float64

// Rates maps a target currency to its rate
type Rates map[Currency]Rate
