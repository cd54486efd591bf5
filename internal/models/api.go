package models

// SubmitResult is the outcome of a seller submission.
type SubmitResult struct {
	Success bool
	Error   string
	Item    *Item
}

// ProcessResult is the outcome of an official's processing decision.
type ProcessResult struct {
	Success    bool
	Error      string
	Item       *Item
	Settlement *SettlementEntry
}

// PurchaseResult is the outcome of a buyer's purchase attempt.
type PurchaseResult struct {
	Success    bool
	Error      string
	Item       *Item
	Settlement *SettlementEntry
}
