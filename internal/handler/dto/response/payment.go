package response

import "deskbook/internal/usecase/commands"

type PaymentResponse struct {
	TransactionID  string `json:"transaction_id"`
	AmountCentavos int64  `json:"amount_centavos"`
	BookingStatus  string `json:"booking_status"`
}

func FromPaymentResult(res *commands.PaymentResult) *PaymentResponse {
	return &PaymentResponse{
		TransactionID:  res.TransactionID,
		AmountCentavos: res.AmountCentavos,
		BookingStatus:  res.BookingStatus,
	}
}
