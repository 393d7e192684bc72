package payment

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"deskbook/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrInvalidMethod  = errors.New("invalid payment method")
	ErrInvalidAmount  = errors.New("transaction amount cannot be negative")
	ErrInvalidBooking = errors.New("transaction requires a booking")
)

// TransactionID is the external-style gateway identifier. The gateway is
// simulated, so the id is generated locally in the gateway's format.
type TransactionID string

func NewTransactionID(now time.Time) TransactionID {
	suffix := strings.ToUpper(randomBase36(7))
	return TransactionID(fmt.Sprintf("TXN-%d-%s", now.UnixMilli(), suffix))
}

func (t TransactionID) String() string {
	return string(t)
}

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("payment: reading random bytes: " + err.Error())
	}
	for i := range buf {
		buf[i] = base36Alphabet[int(buf[i])%len(base36Alphabet)]
	}
	return string(buf)
}

// Transaction is one immutable payment event. Rows are append-only: a booking
// accumulates at most a deposit and a balance transaction over its life, with
// extension fees folded into the balance amount.
type Transaction struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	userID        uuid.UUID
	txType        Type
	method        Method
	amount        pricing.Money
	transactionID TransactionID
	status        Status
	paidAt        time.Time
	createdAt     time.Time
}

func NewTransaction(
	bookingID, userID uuid.UUID,
	txType Type,
	method Method,
	amount pricing.Money,
	paidAt time.Time,
) (*Transaction, error) {
	if bookingID == uuid.Nil {
		return nil, ErrInvalidBooking
	}
	if !txType.IsValid() {
		return nil, ErrInvalidType
	}
	if !method.IsValid() {
		return nil, ErrInvalidMethod
	}
	// Zero is valid: a fully discounted or zero-rate booking still records its
	// deposit and balance events so the lifecycle can advance.
	if amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	return &Transaction{
		id:            uuid.New(),
		bookingID:     bookingID,
		userID:        userID,
		txType:        txType,
		method:        method,
		amount:        amount,
		transactionID: NewTransactionID(paidAt),
		status:        StatusSuccess, // simulated gateway always settles
		paidAt:        paidAt,
	}, nil
}

func ReconstructTransaction(
	id, bookingID, userID uuid.UUID,
	txType Type,
	method Method,
	amount pricing.Money,
	transactionID TransactionID,
	status Status,
	paidAt, createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:            id,
		bookingID:     bookingID,
		userID:        userID,
		txType:        txType,
		method:        method,
		amount:        amount,
		transactionID: transactionID,
		status:        status,
		paidAt:        paidAt,
		createdAt:     createdAt,
	}
}

func (t *Transaction) ID() uuid.UUID                { return t.id }
func (t *Transaction) BookingID() uuid.UUID         { return t.bookingID }
func (t *Transaction) UserID() uuid.UUID            { return t.userID }
func (t *Transaction) Type() Type                   { return t.txType }
func (t *Transaction) Method() Method               { return t.method }
func (t *Transaction) Amount() pricing.Money        { return t.amount }
func (t *Transaction) TransactionID() TransactionID { return t.transactionID }
func (t *Transaction) Status() Status               { return t.status }
func (t *Transaction) PaidAt() time.Time            { return t.paidAt }
func (t *Transaction) CreatedAt() time.Time         { return t.createdAt }
