package request

type PayDepositRequest struct {
	Method string `json:"method" binding:"required"`
}

type PayBalanceRequest struct {
	Method               string `json:"method" binding:"required"`
	ExtensionFeeCentavos int64  `json:"extension_fee_centavos"`
}
