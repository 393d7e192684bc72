package pricing

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidSeatCount = errors.New("seat count must be at least 1")
	ErrMissingRate      = errors.New("rate table is missing the required entry")
	ErrInvalidWindow    = errors.New("end time must be after start time")
	ErrInvalidDiscount  = errors.New("discount percent must be between 0 and 100")
)

// Quote is a complete price breakdown. Deposit and Balance always sum to
// Total exactly; the deposit is 50% of the total, rounded down to the
// centavo, with the balance absorbing any odd centavo.
type Quote struct {
	Base     Money
	Discount Money
	Total    Money
	Deposit  Money
	Balance  Money
}

// UnitQuote prices a booking from the space type's rate table. An unknown
// duration unit falls back to the hourly rate. The function is pure: identical
// inputs always produce identical output.
func UnitQuote(table RateTable, unit DurationUnit, seats int32, memberDiscountPercent float64) (Quote, error) {
	if seats < 1 {
		return Quote{}, ErrInvalidSeatCount
	}
	if memberDiscountPercent < 0 || memberDiscountPercent > 100 {
		return Quote{}, ErrInvalidDiscount
	}

	if !unit.IsValid() {
		unit = UnitHourly
	}
	rate, ok := table.Rate(unit)
	if !ok {
		return Quote{}, ErrMissingRate
	}

	return buildQuote(rate.MulSeats(seats), memberDiscountPercent), nil
}

const (
	// Walk-in metered pricing: 45 pesos per hour plus 1.50 pesos per
	// additional minute beyond full hourly blocks.
	DefaultHourlyRateCentavos    = 4500
	DefaultPerMinuteRateCentavos = 150
	MinimumChargeableHours       = 1
)

// MeteredCalculator prices by elapsed wall-clock time instead of a named
// duration unit. Elapsed time is ceiled to whole minutes; full hours bill at
// the hourly rate, remaining minutes at the per-minute rate, with a minimum
// of one chargeable hour. Sub-hour remainders are waived until the first full
// hour has been reached.
type MeteredCalculator struct {
	HourlyRate    Money
	PerMinuteRate Money
}

func NewMeteredCalculator() *MeteredCalculator {
	return &MeteredCalculator{
		HourlyRate:    NewMoney(DefaultHourlyRateCentavos),
		PerMinuteRate: NewMoney(DefaultPerMinuteRateCentavos),
	}
}

// MeteredQuote extends Quote with the chargeable duration that produced it.
type MeteredQuote struct {
	Quote
	Hours   int64
	Minutes int64
}

func (c *MeteredCalculator) QuoteFor(start, end time.Time, seats int32, memberDiscountPercent float64) (MeteredQuote, error) {
	if seats < 1 {
		return MeteredQuote{}, ErrInvalidSeatCount
	}
	if memberDiscountPercent < 0 || memberDiscountPercent > 100 {
		return MeteredQuote{}, ErrInvalidDiscount
	}
	elapsed := end.Sub(start)
	if elapsed <= 0 {
		return MeteredQuote{}, ErrInvalidWindow
	}

	totalMinutes := int64(math.Ceil(elapsed.Minutes()))
	hours := totalMinutes / 60
	remainingMinutes := totalMinutes % 60

	chargeableHours := hours
	chargeableMinutes := remainingMinutes
	if hours < MinimumChargeableHours {
		chargeableHours = MinimumChargeableHours
		chargeableMinutes = 0
	}

	perSeat := NewMoney(chargeableHours*c.HourlyRate.Centavos() + chargeableMinutes*c.PerMinuteRate.Centavos())

	return MeteredQuote{
		Quote:   buildQuote(perSeat.MulSeats(seats), memberDiscountPercent),
		Hours:   chargeableHours,
		Minutes: chargeableMinutes,
	}, nil
}

func buildQuote(base Money, discountPercent float64) Quote {
	discount := NewMoney(roundHalfUp(float64(base.Centavos()) * discountPercent / 100.0))
	total := base.Sub(discount)
	deposit, balance := total.Halve()

	return Quote{
		Base:     base,
		Discount: discount,
		Total:    total,
		Deposit:  deposit,
		Balance:  balance,
	}
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
