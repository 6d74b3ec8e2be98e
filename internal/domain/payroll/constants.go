package payroll

const (
	PeriodStatusDraft     = "draft"
	PeriodStatusProcessed = "processed"
	PeriodStatusFinalized = "finalized"

	WarningMissingBank = "missing_bank_account"
	WarningNetVariance = "net_variance"

	InputSourceManual = "manual"
	InputSourceImport = "import"
)
