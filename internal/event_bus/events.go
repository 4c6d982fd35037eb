package event_bus

const (
	BudgetRecordStoredType  EventType = "budget.record.stored"
	BudgetRecordDeletedType EventType = "budget.record.deleted"
	BudgetSpentUpdatedType  EventType = "budget.spent.updated"
)

// BudgetRecordStored is published after a budget record was created or overwritten.
type BudgetRecordStored struct {
	User     string `json:"user"`
	Category string `json:"category"`
	Budget   string `json:"budget"`
	Duration string `json:"duration"`
	Spent    string `json:"spent"`
	Plant    string `json:"plant"`
	Time     string `json:"time"`
}

type BudgetRecordDeleted struct {
	User     string `json:"user"`
	Category string `json:"category"`
}

type BudgetSpentUpdated struct {
	User          string  `json:"user"`
	Category      string  `json:"category"`
	PreviousSpent float64 `json:"previous_spent"`
	NewSpent      float64 `json:"new_spent"`
}
