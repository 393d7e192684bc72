package payment

type Type string

const (
	TypeDeposit Type = "deposit"
	TypeBalance Type = "balance"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeDeposit, TypeBalance:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
)

func (s Status) String() string {
	return string(s)
}

type Method string

const (
	MethodCash   Method = "cash"
	MethodCard   Method = "card"
	MethodGCash  Method = "gcash"
	MethodOnline Method = "online"
)

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodGCash, MethodOnline:
		return true
	default:
		return false
	}
}
