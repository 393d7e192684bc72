package pricing

type DurationUnit string

const (
	UnitHourly  DurationUnit = "hourly"
	UnitHalfDay DurationUnit = "half_day"
	UnitFullDay DurationUnit = "full_day"
	UnitWeekly  DurationUnit = "weekly"
	UnitMonthly DurationUnit = "monthly"
)

func (u DurationUnit) String() string {
	return string(u)
}

func (u DurationUnit) IsValid() bool {
	switch u {
	case UnitHourly, UnitHalfDay, UnitFullDay, UnitWeekly, UnitMonthly:
		return true
	default:
		return false
	}
}

// RateTable maps a duration unit to its per-seat rate.
type RateTable map[DurationUnit]Money

func (t RateTable) Rate(unit DurationUnit) (Money, bool) {
	rate, ok := t[unit]
	return rate, ok
}
