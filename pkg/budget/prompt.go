package budget

import (
	"fmt"
	"sort"
	"strings"

	"github.com/budgetgarden/budgetgarden/pkg/storage"
)

const (
	summaryPrompt = "Generate a budget summary of my transactions history. Here is my spending history: "
	advicePrompt  = "Based on my financial goals, provide personalized budgeting and saving advice. " +
		"Consider practical steps, timeline, and potential challenges. Here is my spending history: "
	goalPrompt = ". Here is my goal and priorities: "
)

func SummaryPrompt(documents []storage.Fields) string {
	return summaryPrompt + spendingHistory(documents)
}

func AdvicePrompt(documents []storage.Fields, goal string) string {
	return advicePrompt + spendingHistory(documents) + goalPrompt + goal
}

// spendingHistory renders the records as [{category=food, budget=100, spent=20}, ...] ordered by category.
func spendingHistory(documents []storage.Fields) string {
	sorted := make([]storage.Fields, len(documents))
	copy(sorted, documents)
	sort.SliceStable(sorted, func(i, j int) bool {
		return fieldString(sorted[i], "category") < fieldString(sorted[j], "category")
	})

	entries := make([]string, 0, len(sorted))
	for _, document := range sorted {
		entries = append(entries, fmt.Sprintf("{category=%s, budget=%s, spent=%s}",
			promptValue(document["category"]), promptValue(document["budget"]), promptValue(document["spent"])))
	}
	return "[" + strings.Join(entries, ", ") + "]"
}

func promptValue(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
