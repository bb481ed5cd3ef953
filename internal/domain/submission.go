package domain

type ActionKind string

const (
	ActionWithdraw ActionKind = "withdraw"
	ActionDeposit  ActionKind = "deposit"
)

func (k ActionKind) Valid() bool {
	switch k {
	case ActionWithdraw, ActionDeposit:
		return true
	default:
		return false
	}
}

// Submission records one ledger operation attempted in this session.
type Submission struct {
	User   string
	Sum    float64
	Action ActionKind
}
