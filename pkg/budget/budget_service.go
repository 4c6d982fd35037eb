package budget

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/budgetgarden/budgetgarden/internal/event_bus"
	"github.com/budgetgarden/budgetgarden/internal/utils"
	"github.com/budgetgarden/budgetgarden/pkg/storage"
	"github.com/budgetgarden/budgetgarden/pkg/suggestion"
	log "github.com/sirupsen/logrus"
)

const (
	msgAddMissing         = "Missing category, budget, duration, spent, or plant parameters."
	msgDeleteMissing      = "Missing user or category parameters."
	msgUpdateSpentMissing = "Missing user, category, or amount_spent parameters."
	msgSummaryMissing     = "Missing user parameter."
	msgAdviceMissing      = "No user or goal provided"
)

// Request parameters are pointers: nil means the parameter was not sent at all.

type AddRequest struct {
	User     *string
	Category *string
	Budget   *string
	Duration *string
	Spent    *string
	Plant    *string
	Notes    *string
}

type DeleteRequest struct {
	User     *string
	Category *string
}

type UpdateSpentRequest struct {
	User        *string
	Category    *string
	AmountSpent *string
}

type SummaryRequest struct {
	User *string
}

type AdviceRequest struct {
	User *string
	Goal *string
}

type SpentUpdate struct {
	Category      string
	PreviousSpent float64
	NewSpent      float64
}

type BudgetService interface {
	Add(ctx context.Context, req AddRequest) (BudgetRecord, error)
	Delete(ctx context.Context, req DeleteRequest) error
	GetUserData(ctx context.Context, user *string) ([]RecordView, error)
	UpdateSpent(ctx context.Context, req UpdateSpentRequest) (SpentUpdate, error)
	Summarize(ctx context.Context, req SummaryRequest) (string, error)
	Advise(ctx context.Context, req AdviceRequest) (string, error)
	ClearUser(ctx context.Context, user string) error
}

type BudgetServiceImpl struct {
	repo      BudgetRepo
	suggester suggestion.Suggester
	eventBus  *event_bus.EventBus
	clock     utils.Clock
	locks     *keyLocks
}

func NewBudgetServiceImpl(repo BudgetRepo, suggester suggestion.Suggester, eventBus *event_bus.EventBus, clock utils.Clock) *BudgetServiceImpl {
	return &BudgetServiceImpl{
		repo:      repo,
		suggester: suggester,
		eventBus:  eventBus,
		clock:     clock,
		locks:     newKeyLocks(),
	}
}

func (s *BudgetServiceImpl) Add(ctx context.Context, req AddRequest) (BudgetRecord, error) {
	if anyMissing(req.User, req.Category, req.Budget, req.Duration, req.Spent, req.Plant) {
		return BudgetRecord{}, validationError(msgAddMissing)
	}
	record := BudgetRecord{
		User:     *req.User,
		Category: *req.Category,
		Budget:   *req.Budget,
		Duration: *req.Duration,
		Spent:    *req.Spent,
		Plant:    *req.Plant,
		Notes:    req.Notes,
		Time:     utils.Timestamp(s.clock),
	}
	log.Debugf("Adding budget record %s for user %s", record.Category, record.User)

	unlock := s.locks.lock(lockKey(record.User, record.Category))
	err := s.repo.Store(ctx, record.User, record.Category, record.ToFields())
	unlock()
	if err != nil {
		log.Errorf("Failed to store budget record %s of user %s: %v", record.Category, record.User, err)
		return BudgetRecord{}, newError(KindStorage, err)
	}

	s.publish(ctx, event_bus.BudgetRecordStoredType, event_bus.BudgetRecordStored{
		User:     record.User,
		Category: record.Category,
		Budget:   record.Budget,
		Duration: record.Duration,
		Spent:    record.Spent,
		Plant:    record.Plant,
		Time:     record.Time,
	})
	return record, nil
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, req DeleteRequest) error {
	if anyMissing(req.User, req.Category) {
		return validationError(msgDeleteMissing)
	}
	user, category := *req.User, *req.Category
	log.Debugf("Deleting budget record %s for user %s", category, user)

	unlock := s.locks.lock(lockKey(user, category))
	err := s.repo.Delete(ctx, user, category)
	unlock()
	if err != nil {
		log.Errorf("Failed to delete budget record %s of user %s: %v", category, user, err)
		return newError(KindStorage, err)
	}

	s.publish(ctx, event_bus.BudgetRecordDeletedType, event_bus.BudgetRecordDeleted{User: user, Category: category})
	return nil
}

// GetUserData does not require a user. Without one the "null" user is read.
func (s *BudgetServiceImpl) GetUserData(ctx context.Context, user *string) ([]RecordView, error) {
	documents, err := s.repo.FindAll(ctx, userOrNull(user))
	if err != nil {
		log.Errorf("Failed to read budget records: %v", err)
		return nil, newError(KindStorage, err)
	}

	views := make([]RecordView, 0, len(documents))
	for _, document := range documents {
		views = append(views, viewOf(document))
	}
	return views, nil
}

func (s *BudgetServiceImpl) UpdateSpent(ctx context.Context, req UpdateSpentRequest) (SpentUpdate, error) {
	if anyMissing(req.User, req.Category, req.AmountSpent) {
		return SpentUpdate{}, validationError(msgUpdateSpentMissing)
	}
	user, category, amountSpent := *req.User, *req.Category, *req.AmountSpent
	log.Debugf("Updating spent amount of %s for user %s by %s", category, user, amountSpent)

	update, err := s.applySpent(ctx, user, category, amountSpent)
	if err != nil {
		return SpentUpdate{}, err
	}

	s.publish(ctx, event_bus.BudgetSpentUpdatedType, event_bus.BudgetSpentUpdated{
		User:          user,
		Category:      category,
		PreviousSpent: update.PreviousSpent,
		NewSpent:      update.NewSpent,
	})
	return update, nil
}

// applySpent performs the read-modify-write of one record while holding its key lock.
// Events are published by the caller once the lock is released.
func (s *BudgetServiceImpl) applySpent(ctx context.Context, user, category, amountSpent string) (SpentUpdate, error) {
	unlock := s.locks.lock(lockKey(user, category))
	defer unlock()

	documents, err := s.repo.FindAll(ctx, user)
	if err != nil {
		log.Errorf("Failed to read budget records of user %s: %v", user, err)
		return SpentUpdate{}, newError(KindStorage, err)
	}

	var entry storage.Fields
	for _, document := range documents {
		if value, ok := document["category"].(string); ok && value == category {
			entry = document
			break
		}
	}
	if entry == nil {
		return SpentUpdate{}, newError(KindNotFound, ErrBudgetEntryNotFound)
	}

	previous, err := parseAmount(fieldString(entry, "spent"))
	if err != nil {
		return SpentUpdate{}, newError(KindParse, err)
	}
	amount, err := parseAmount(amountSpent)
	if err != nil {
		return SpentUpdate{}, newError(KindParse, err)
	}
	updated := previous + amount
	if math.IsNaN(updated) || math.IsInf(updated, 0) {
		return SpentUpdate{}, newError(KindParse, fmt.Errorf("Numeric values must be finite, but was %v", updated))
	}

	document := entry.Copy()
	document["spent"] = FormatSpent(updated)
	if err := s.repo.Store(ctx, user, category, document); err != nil {
		log.Errorf("Failed to store spent amount of %s for user %s: %v", category, user, err)
		return SpentUpdate{}, newError(KindStorage, err)
	}
	return SpentUpdate{Category: category, PreviousSpent: previous, NewSpent: updated}, nil
}

func (s *BudgetServiceImpl) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	if req.User == nil {
		return "", validationError(msgSummaryMissing)
	}
	documents, err := s.repo.FindAll(ctx, *req.User)
	if err != nil {
		log.Errorf("Failed to read budget records of user %s: %v", *req.User, err)
		return "", newError(KindStorage, err)
	}
	return s.suggest(ctx, SummaryPrompt(documents))
}

func (s *BudgetServiceImpl) Advise(ctx context.Context, req AdviceRequest) (string, error) {
	if req.User == nil || req.Goal == nil || *req.Goal == "" {
		return "", validationError(msgAdviceMissing)
	}
	documents, err := s.repo.FindAll(ctx, *req.User)
	if err != nil {
		log.Errorf("Failed to read budget records of user %s: %v", *req.User, err)
		return "", newError(KindStorage, err)
	}
	return s.suggest(ctx, AdvicePrompt(documents, *req.Goal))
}

// ClearUser removes every budget record of the user.
func (s *BudgetServiceImpl) ClearUser(ctx context.Context, user string) error {
	if user == "" {
		return validationError(msgSummaryMissing)
	}
	if err := s.repo.DeleteAll(ctx, user); err != nil {
		log.Errorf("Failed to clear budget records of user %s: %v", user, err)
		return newError(KindStorage, err)
	}
	log.Infof("Cleared all budget records of user %s", user)
	return nil
}

func (s *BudgetServiceImpl) suggest(ctx context.Context, prompt string) (string, error) {
	text, err := s.suggester.GenerateSuggestion(ctx, prompt)
	if err != nil {
		log.Errorf("Failed to generate suggestion: %v", err)
		return "", newError(KindSuggestion, err)
	}
	return text, nil
}

func (s *BudgetServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.eventBus == nil {
		return
	}
	event := event_bus.NewEventAt(ctx, eventType, data, s.clock.Now())
	if err := s.eventBus.Publish(event); err != nil {
		log.Warnf("Failed to publish %s event: %v", eventType, err)
	}
}

// parseAmount accepts surrounding whitespace, e.g. "amount_spent=%205".
func parseAmount(text string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(text), 64)
}

// FormatSpent renders a spent amount the way it has always been stored: plain decimal notation
// that keeps at least one fractional digit, e.g. 50 as "50.0".
func FormatSpent(value float64) string {
	text := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}

func anyMissing(params ...*string) bool {
	for _, p := range params {
		if p == nil {
			return true
		}
	}
	return false
}

func userOrNull(user *string) string {
	if user == nil {
		return "null"
	}
	return *user
}

func lockKey(user, category string) string {
	return CollectionKey(user) + "/" + DocumentKey(category)
}
