package budget

const (
	responseSuccess = "success"
	responseFailure = "failure"
)

// Envelope is the JSON object returned for every operation. It always carries response_type,
// failures carry error.
type Envelope map[string]any

func success(fields Envelope) Envelope {
	fields["response_type"] = responseSuccess
	return fields
}

func Failure(err error) Envelope {
	return Envelope{
		"response_type": responseFailure,
		"error":         err.Error(),
	}
}

func RecordEnvelope(record BudgetRecord) Envelope {
	envelope := Envelope{
		"user":     record.User,
		"category": record.Category,
		"budget":   record.Budget,
		"duration": record.Duration,
		"spent":    record.Spent,
		"plant":    record.Plant,
		"time":     record.Time,
	}
	if record.Notes != nil {
		envelope["notes"] = *record.Notes
	}
	return success(envelope)
}

func DeletedEnvelope(user, category string) Envelope {
	return success(Envelope{
		"user":     user,
		"category": category,
	})
}

func UserDataEnvelope(records []RecordView) Envelope {
	if records == nil {
		records = []RecordView{}
	}
	return success(Envelope{"data": records})
}

func SpentEnvelope(update SpentUpdate) Envelope {
	return success(Envelope{
		"category":       update.Category,
		"previous_spent": update.PreviousSpent,
		"new_spent":      update.NewSpent,
	})
}

func SummaryEnvelope(user, summary string) Envelope {
	return success(Envelope{
		"user":    user,
		"summary": summary,
	})
}

func AdviceEnvelope(user, advice string) Envelope {
	return success(Envelope{
		"user":   user,
		"advice": advice,
	})
}

// EnvelopeOf returns the failure envelope when err is set, otherwise the envelope built by onSuccess.
func EnvelopeOf(err error, onSuccess func() Envelope) Envelope {
	if err != nil {
		return Failure(err)
	}
	return onSuccess()
}
