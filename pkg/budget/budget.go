package budget

import (
	"fmt"

	"github.com/budgetgarden/budgetgarden/pkg/storage"
)

// BudgetRecord is a single spending category of a user, stored as one document.
// All numeric values are kept as the text the client sent.
type BudgetRecord struct {
	User     string
	Category string
	Budget   string
	Duration string
	Spent    string
	Plant    string
	Notes    *string
	Time     string
}

// RecordView is the client facing projection of a stored record, without its timestamp.
type RecordView struct {
	Category string  `json:"category"`
	Budget   string  `json:"budget"`
	Duration string  `json:"duration"`
	Spent    string  `json:"spent"`
	Plant    string  `json:"plant"`
	Notes    *string `json:"notes,omitempty"`
}

func CollectionKey(user string) string {
	return "user-" + user
}

func DocumentKey(category string) string {
	return "doc-" + category
}

func (r BudgetRecord) ToFields() storage.Fields {
	fields := storage.Fields{
		"user":     r.User,
		"category": r.Category,
		"budget":   r.Budget,
		"duration": r.Duration,
		"spent":    r.Spent,
		"plant":    r.Plant,
		"time":     r.Time,
		"notes":    nil,
	}
	if r.Notes != nil {
		fields["notes"] = *r.Notes
	}
	return fields
}

func viewOf(document storage.Fields) RecordView {
	view := RecordView{
		Category: fieldString(document, "category"),
		Budget:   fieldString(document, "budget"),
		Duration: fieldString(document, "duration"),
		Spent:    fieldString(document, "spent"),
		Plant:    fieldString(document, "plant"),
	}
	if notes, ok := document["notes"]; ok && notes != nil {
		text := fmt.Sprint(notes)
		view.Notes = &text
	}
	return view
}

// fieldString returns the text of a document field, empty when the field is missing or null.
func fieldString(document storage.Fields, key string) string {
	switch value := document[key].(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}

// Param returns a pointer to v, for building requests where an absent parameter is nil.
func Param(v string) *string {
	return &v
}
