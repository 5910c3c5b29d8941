package engine

import (
	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

// AnswerSink receives removal notifications when the engine clears a
// persisted draft answer, so external draft state stays consistent with
// the in-memory answer set. Implementations must tolerate removals for
// answers they never stored.
type AnswerSink interface {
	RemoveSavedAnswer(questionID string) error
}

// NopSink is used when no draft persistence is attached to a session.
type NopSink struct{}

func (NopSink) RemoveSavedAnswer(questionID string) error {
	return nil
}

// ResponseEngine keeps the answer set of one filling session recursively
// consistent with the conditional visibility rules of its question catalog.
// The catalog is read-only input, all answer mutations go through ApplyChanges.
type ResponseEngine struct {
	questions []formTypes.Question
	byID      map[string]formTypes.Question
	sink      AnswerSink
}

// Change is one requested answer update. An empty value requests removal.
type Change struct {
	QuestionID string
	Value      formTypes.AnswerValue
}

func NewResponseEngine(questions []formTypes.Question, sink AnswerSink) *ResponseEngine {
	if sink == nil {
		sink = NopSink{}
	}
	byID := make(map[string]formTypes.Question, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			continue
		}
		byID[q.ID] = q
	}
	return &ResponseEngine{
		questions: questions,
		byID:      byID,
		sink:      sink,
	}
}

// Questions returns the catalog the engine was created with.
func (e *ResponseEngine) Questions() []formTypes.Question {
	return e.questions
}

func (e *ResponseEngine) questionByID(questionID string) (question formTypes.Question, found bool) {
	question, found = e.byID[questionID]
	return
}
