package pricing

import "errors"

var ErrNegativeMoney = errors.New("money cannot be negative")

// Money is a monetary amount in centavos. All pricing arithmetic happens on
// integer centavos so that amounts round consistently to two decimal places.
type Money struct {
	centavos int64
}

func NewMoney(centavos int64) Money {
	return Money{centavos: centavos}
}

func NewMoneyFromCentavos(centavos int64) (Money, error) {
	if centavos < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{centavos: centavos}, nil
}

func (m Money) Centavos() int64 {
	return m.centavos
}

func (m Money) Pesos() float64 {
	return float64(m.centavos) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{centavos: m.centavos + other.centavos}
}

func (m Money) Sub(other Money) Money {
	return Money{centavos: m.centavos - other.centavos}
}

func (m Money) MulSeats(seats int32) Money {
	return Money{centavos: m.centavos * int64(seats)}
}

func (m Money) IsZero() bool {
	return m.centavos == 0
}

func (m Money) IsNegative() bool {
	return m.centavos < 0
}

// Halve splits the amount into a deposit and the remaining balance. The
// deposit rounds down to the centavo so that deposit + balance always equals
// the original amount exactly.
func (m Money) Halve() (deposit, balance Money) {
	deposit = Money{centavos: m.centavos / 2}
	balance = Money{centavos: m.centavos - deposit.centavos}
	return deposit, balance
}
