package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"deskbook/internal/domain/pricing"

	"github.com/google/uuid"
)

// TimeSlot is a half-open interval [start, end). Back-to-back slots touching
// at a boundary instant do not overlap.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, errors.New("start time must be before end time")
	}

	return TimeSlot{
		start: start,
		end:   end,
	}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

// Reference is the human-readable booking reference. It is generated once at
// creation and never changes; the unique index on it backs collision retries.
type Reference string

func NewReference(now time.Time) Reference {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return Reference(fmt.Sprintf("BK-%d-%s", now.UnixMilli(), suffix))
}

func (r Reference) String() string {
	return string(r)
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: strings.TrimSpace(value)}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

// PriceBreakdown carries every monetary field of a booking. DepositPaid and
// BalanceDue track Total through the lifecycle: 0/Total while pending,
// Deposit/Total-Deposit once confirmed, and Final/0 when completed.
type PriceBreakdown struct {
	Base            pricing.Money
	Discount        pricing.Money
	Total           pricing.Money
	DepositPaid     pricing.Money
	BalanceDue      pricing.Money
	FinalAmountPaid pricing.Money
	ExtensionFee    pricing.Money
}

func NewPriceBreakdown(quote pricing.Quote) PriceBreakdown {
	return PriceBreakdown{
		Base:       quote.Base,
		Discount:   quote.Discount,
		Total:      quote.Total,
		BalanceDue: quote.Total,
	}
}
