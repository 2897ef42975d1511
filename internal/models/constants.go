package models

// TransactionType is the debit/credit direction of a transaction.
type TransactionType string

// Transaction types
const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// TypeFromAmount derives the transaction type from the sign of amount.
func TypeFromAmount(amount float64) TransactionType {
	if amount < 0 {
		return TransactionTypeDebit
	}
	return TransactionTypeCredit
}

// BankType is a coarse statement-layout label. It is reported, not used to
// switch parsing logic.
type BankType string

// Bank-format tags
const (
	BankHDFC    BankType = "HDFC"
	BankICICI   BankType = "ICICI"
	BankSBI     BankType = "SBI"
	BankGeneric BankType = "GENERIC"
)

// Envelope statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Categories
const (
	CategorySalary        = "SALARY"
	CategoryTransfer      = "TRANSFER"
	CategoryWithdrawal    = "WITHDRAWAL"
	CategoryDeposit       = "DEPOSIT"
	CategoryUtility       = "UTILITY"
	CategoryFood          = "FOOD"
	CategoryEntertainment = "ENTERTAINMENT"
	CategoryHealthcare    = "HEALTHCARE"
	CategoryShopping      = "SHOPPING"
	CategoryTransport     = "TRANSPORT"
	CategorySubscription  = "SUBSCRIPTION"
	CategoryOther         = "OTHER"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
