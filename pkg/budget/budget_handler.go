package budget

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// BudgetHandler serves the budget operations over HTTP GET with query parameters.
// Every answer is a JSON envelope with status 200, failures included.
type BudgetHandler struct {
	budgetService BudgetService
}

func NewBudgetHandler(budgetService BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService}
}

func (handler *BudgetHandler) Add(w http.ResponseWriter, r *http.Request) {
	req := AddRequest{
		User:     queryParam(r, "user"),
		Category: queryParam(r, "category"),
		Budget:   queryParam(r, "budget"),
		Duration: queryParam(r, "duration"),
		Spent:    queryParam(r, "spent"),
		Plant:    queryParam(r, "plant"),
		Notes:    queryParam(r, "notes"),
	}
	record, err := handler.budgetService.Add(r.Context(), req)
	writeEnvelope(w, EnvelopeOf(err, func() Envelope { return RecordEnvelope(record) }))
}

func (handler *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	req := DeleteRequest{
		User:     queryParam(r, "user"),
		Category: queryParam(r, "category"),
	}
	err := handler.budgetService.Delete(r.Context(), req)
	writeEnvelope(w, EnvelopeOf(err, func() Envelope { return DeletedEnvelope(*req.User, *req.Category) }))
}

func (handler *BudgetHandler) GetUserData(w http.ResponseWriter, r *http.Request) {
	records, err := handler.budgetService.GetUserData(r.Context(), queryParam(r, "user"))
	writeEnvelope(w, EnvelopeOf(err, func() Envelope { return UserDataEnvelope(records) }))
}

func (handler *BudgetHandler) UpdateSpent(w http.ResponseWriter, r *http.Request) {
	req := UpdateSpentRequest{
		User:        queryParam(r, "user"),
		Category:    queryParam(r, "category"),
		AmountSpent: queryParam(r, "amount_spent"),
	}
	update, err := handler.budgetService.UpdateSpent(r.Context(), req)
	writeEnvelope(w, EnvelopeOf(err, func() Envelope { return SpentEnvelope(update) }))
}

func (handler *BudgetHandler) Summary(w http.ResponseWriter, r *http.Request) {
	req := SummaryRequest{User: queryParam(r, "user")}
	summary, err := handler.budgetService.Summarize(r.Context(), req)
	writeEnvelope(w, EnvelopeOf(err, func() Envelope { return SummaryEnvelope(*req.User, summary) }))
}

func (handler *BudgetHandler) Advice(w http.ResponseWriter, r *http.Request) {
	req := AdviceRequest{
		User: queryParam(r, "user"),
		Goal: queryParam(r, "goal"),
	}
	advice, err := handler.budgetService.Advise(r.Context(), req)
	writeEnvelope(w, EnvelopeOf(err, func() Envelope { return AdviceEnvelope(*req.User, advice) }))
}

// queryParam returns nil when the parameter is absent. An empty value is still present.
func queryParam(r *http.Request, name string) *string {
	query := r.URL.Query()
	if !query.Has(name) {
		return nil
	}
	value := query.Get(name)
	return &value
}

func writeEnvelope(w http.ResponseWriter, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}
