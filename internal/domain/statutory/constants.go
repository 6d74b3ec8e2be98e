package statutory

type ContractType string

type OvertimeType string

const (
	ContractPermanent ContractType = "permanent"
	ContractContract  ContractType = "contract"
	ContractCasual    ContractType = "casual"
	ContractIntern    ContractType = "intern"

	OvertimeWeekday OvertimeType = "weekday"
	OvertimeHoliday OvertimeType = "holiday"

	MaxUnpaidDays = 31

	WarningNegativeNet      = "negative_net"
	WarningUnpaidExceedsPay = "unpaid_exceeds_pay"
)

var contractTypes = map[ContractType]bool{
	ContractPermanent: true,
	ContractContract:  true,
	ContractCasual:    true,
	ContractIntern:    true,
}

func ValidContractType(value ContractType) bool {
	return contractTypes[value]
}

func ValidOvertimeType(value OvertimeType) bool {
	return value == OvertimeWeekday || value == OvertimeHoliday
}
