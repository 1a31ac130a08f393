package models

// ViolationType names the rule family a violation comes from.
type ViolationType string

const (
	ViolationGewichtung       ViolationType = "gewichtung"
	ViolationVerteilungsmodus ViolationType = "verteilungsmodus"
)

// Severity grades a violation. Neither value blocks a save.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Violation is an advisory record produced by the rule check.
type Violation struct {
	Type             ViolationType `json:"type"`
	Severity         Severity      `json:"severity"`
	Rechtsgebiet     string        `json:"rechtsgebiet,omitempty"`
	Actual           int           `json:"actual,omitempty"`
	Target           int           `json:"target,omitempty"`
	Deviation        int           `json:"deviation,omitempty"`
	Dates            []string      `json:"dates,omitempty"`
	FragmentedThemes int           `json:"fragmentedThemes,omitempty"`
	Message          string        `json:"message"`
}

// SwapStatus is the traffic-light outcome of a swap pre-check.
type SwapStatus string

const (
	SwapGreen  SwapStatus = "green"
	SwapYellow SwapStatus = "yellow"
	SwapRed    SwapStatus = "red"
)

// SwapValidation is returned by the swap guard.
type SwapValidation struct {
	Allowed bool       `json:"allowed"`
	Status  SwapStatus `json:"status"`
	Message string     `json:"message"`
}
