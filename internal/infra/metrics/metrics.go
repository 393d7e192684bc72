package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "deskbook",
			Name:      "bookings_created_total",
			Help:      "Count of bookings admitted and persisted.",
		},
	)

	bookingsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "deskbook",
			Name:      "bookings_cancelled_total",
			Help:      "Count of bookings cancelled while pending.",
		},
	)

	paymentsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "deskbook",
			Name:      "payments_recorded_total",
			Help:      "Count of settled payment transactions by type.",
		},
		[]string{"type"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, bookingsCancelled, paymentsRecorded)
	})
}

type Recorder struct{}

func NewRecorder() *Recorder {
	Register()
	return &Recorder{}
}

func (*Recorder) BookingCreated() {
	bookingsCreated.Inc()
}

func (*Recorder) BookingCancelled() {
	bookingsCancelled.Inc()
}

func (*Recorder) PaymentRecorded(txType string) {
	paymentsRecorded.WithLabelValues(txType).Inc()
}
