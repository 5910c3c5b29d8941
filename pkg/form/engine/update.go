package engine

import (
	"log/slog"

	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

// ApplyChanges applies one or more answer updates and returns the new
// answer set. The input slice is not mutated.
//
// Raw changes are applied first: an empty value removes the entry,
// anything else upserts it. Changes for unknown question ids and for
// display-only questions are ignored. Afterwards visibility consequences
// are propagated until a fixed point is reached: any conditional question
// that is no longer visible loses its answer, which can cascade to its
// own descendants. Every removal, direct or cascaded, is reported to the
// attached AnswerSink.
//
// The propagation loop terminates because a pass can only remove answers,
// never add them.
func (e *ResponseEngine) ApplyChanges(responses []formTypes.Response, changes ...Change) []formTypes.Response {
	updated := make([]formTypes.Response, len(responses))
	copy(updated, responses)

	for _, change := range changes {
		question, found := e.questionByID(change.QuestionID)
		if !found {
			slog.Debug("ignoring answer update for unknown question", slog.String("questionID", change.QuestionID))
			continue
		}
		if question.QuestionType == formTypes.QUESTION_TYPE_DISPLAY {
			continue
		}

		if change.Value.IsEmpty() {
			updated = e.removeAnswer(updated, change.QuestionID)
			continue
		}
		updated = upsertAnswer(updated, change.QuestionID, change.Value)
	}

	return e.propagate(updated)
}

// propagate removes answers of questions that are no longer visible,
// repeating full passes until nothing changes.
func (e *ResponseEngine) propagate(responses []formTypes.Response) []formTypes.Response {
	for {
		toRemove := []string{}
		for _, entry := range responses {
			if entry.Value.IsEmpty() {
				continue
			}
			question, found := e.questionByID(entry.QuestionID)
			if !found || !question.IsConditional() {
				continue
			}
			if !e.ShouldShow(question, responses) {
				toRemove = append(toRemove, entry.QuestionID)
			}
		}
		if len(toRemove) == 0 {
			return responses
		}
		for _, questionID := range toRemove {
			responses = e.removeAnswer(responses, questionID)
		}
	}
}

func (e *ResponseEngine) removeAnswer(responses []formTypes.Response, questionID string) []formTypes.Response {
	kept := responses[:0]
	removed := false
	for _, entry := range responses {
		if entry.QuestionID == questionID {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	if removed {
		if err := e.sink.RemoveSavedAnswer(questionID); err != nil {
			slog.Error("failed to remove saved answer", slog.String("questionID", questionID), slog.String("error", err.Error()))
		}
	}
	return kept
}

func upsertAnswer(responses []formTypes.Response, questionID string, value formTypes.AnswerValue) []formTypes.Response {
	for i := range responses {
		if responses[i].QuestionID == questionID {
			responses[i].Value = value
			return responses
		}
	}
	return append(responses, formTypes.Response{QuestionID: questionID, Value: value})
}
