package types

// Envelope mirrors the historical wire shape of the ledger API:
// {"message": "success", "incomeexpense": <payload>} on success and
// {"message": <text>, "error": <detail>} on failure. The duplicate
// flag is set only for replayed transaction identifiers.
type Envelope struct {
	Message       string `json:"message"`
	IncomeExpense any    `json:"incomeexpense,omitempty"`
	Error         string `json:"error,omitempty"`
	Details       any    `json:"details,omitempty"`
	Duplicate     bool   `json:"duplicate,omitempty"`
}
