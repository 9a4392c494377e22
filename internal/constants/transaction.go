package constants

const (
	// Transaction modes offered by the add wizard
	ModeExpense  = "expense"
	ModeIncome   = "income"
	ModeTransfer = "transfer"

	DefaultListLimit = 20
)
