package book

// Price is an exchange price expressed in integer ticks. Floating point is
// deliberately avoided so that equality of price levels is exact.
type Price int64

// Quantity is an order size expressed in integer size units.
type Quantity int64

// OrderId uniquely identifies a resting or historical order within the
// lifetime of a single OrderBook instance.
type OrderId uint64

// Side is which side of the book an order rests on or trades against.
type Side int8

const (
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Trade records one match between a resting maker order and an aggressive
// taker. Price is always the maker's resting price.
type Trade struct {
	MakerOrderId OrderId
	TakerSide    Side
	Price        Price
	Qty          Quantity
}

// MatchResult is returned by the aggressive operations (add_limit's taker
// phase and execute_market). Requested = Filled + Remaining always holds.
type MatchResult struct {
	Requested Quantity
	Filled    Quantity
	Remaining Quantity
	Trades    []Trade
}

// BestQuote is the best price on one side of the book and the aggregate
// quantity resting at that price. Valid is false when the side is empty.
type BestQuote struct {
	Price Price
	Qty   Quantity
	Valid bool
}
