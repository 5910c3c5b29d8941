package engine

import (
	"testing"

	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

func testCatalog() []formTypes.Question {
	childOf := func(parentID string, requiredOption int) *formTypes.ParentRef {
		return &formTypes.ParentRef{ParentQuestionID: parentID, RequiredOption: requiredOption}
	}
	return []formTypes.Question{
		{
			ID:           "q1",
			Title:        "Do you own a pet?",
			QuestionType: formTypes.QUESTION_TYPE_SINGLE_CHOICE,
			Options:      []formTypes.Option{{Index: 0, Label: "No"}, {Index: 1, Label: "Yes"}},
		},
		{
			ID:           "q2",
			Title:        "What kind of pet?",
			QuestionType: formTypes.QUESTION_TYPE_TEXT,
			Condition:    childOf("q1", 1),
		},
		{
			ID:           "q3",
			Title:        "Which apply?",
			QuestionType: formTypes.QUESTION_TYPE_MULTIPLE_CHOICE,
			Options:      []formTypes.Option{{Index: 0, Label: "A"}, {Index: 1, Label: "B"}, {Index: 2, Label: "C"}},
		},
		{
			ID:           "q4",
			QuestionType: formTypes.QUESTION_TYPE_TEXT,
			Condition:    childOf("q3", 0),
		},
		{
			ID:           "q5",
			QuestionType: formTypes.QUESTION_TYPE_TEXT,
			Condition:    childOf("q3", 2),
		},
		{
			ID:           "q6",
			QuestionType: formTypes.QUESTION_TYPE_TEXT,
			Condition:    &formTypes.ParentRef{ParentQuestionID: "q2", RequiredValue: "dog"},
		},
		{
			ID:           "q7",
			QuestionType: formTypes.QUESTION_TYPE_TEXT,
			Condition:    childOf("missing", 0),
		},
	}
}

func questionByID(t *testing.T, e *ResponseEngine, id string) formTypes.Question {
	t.Helper()
	q, found := e.questionByID(id)
	if !found {
		t.Fatalf("question %s not in catalog", id)
	}
	return q
}

func TestShouldShow(t *testing.T) {
	e := NewResponseEngine(testCatalog(), nil)

	t.Run("unconditional question is always visible", func(t *testing.T) {
		if !e.ShouldShow(questionByID(t, e, "q1"), nil) {
			t.Error("root question should be visible")
		}
	})

	t.Run("conditional question hidden without parent answer", func(t *testing.T) {
		if e.ShouldShow(questionByID(t, e, "q2"), nil) {
			t.Error("should be hidden while parent is unanswered")
		}
	})

	t.Run("single choice parent matching option", func(t *testing.T) {
		responses := []formTypes.Response{{QuestionID: "q1", Value: formTypes.OptionAnswer(1)}}
		if !e.ShouldShow(questionByID(t, e, "q2"), responses) {
			t.Error("should be visible when required option is selected")
		}
	})

	t.Run("single choice parent other option", func(t *testing.T) {
		responses := []formTypes.Response{{QuestionID: "q1", Value: formTypes.OptionAnswer(0)}}
		if e.ShouldShow(questionByID(t, e, "q2"), responses) {
			t.Error("should be hidden when another option is selected")
		}
	})

	t.Run("numeric string answer is coerced", func(t *testing.T) {
		responses := []formTypes.Response{{QuestionID: "q1", Value: formTypes.StringAnswer("1")}}
		if !e.ShouldShow(questionByID(t, e, "q2"), responses) {
			t.Error("numeric string should match the required option index")
		}
	})

	t.Run("non numeric answer on choice parent does not match", func(t *testing.T) {
		responses := []formTypes.Response{{QuestionID: "q1", Value: formTypes.StringAnswer("yes")}}
		if e.ShouldShow(questionByID(t, e, "q2"), responses) {
			t.Error("type mismatched answer must not match")
		}
	})

	t.Run("multiple choice membership", func(t *testing.T) {
		responses := []formTypes.Response{{QuestionID: "q3", Value: formTypes.OptionsAnswer(0, 2)}}
		if !e.ShouldShow(questionByID(t, e, "q4"), responses) {
			t.Error("child on option 0 should be visible")
		}
		if !e.ShouldShow(questionByID(t, e, "q5"), responses) {
			t.Error("child on option 2 should be visible")
		}
	})

	t.Run("multiple choice single selection tolerated", func(t *testing.T) {
		responses := []formTypes.Response{{QuestionID: "q3", Value: formTypes.OptionAnswer(2)}}
		if e.ShouldShow(questionByID(t, e, "q4"), responses) {
			t.Error("child on option 0 should be hidden")
		}
		if !e.ShouldShow(questionByID(t, e, "q5"), responses) {
			t.Error("child on option 2 should be visible")
		}
	})

	t.Run("empty option set hides children", func(t *testing.T) {
		responses := []formTypes.Response{{QuestionID: "q3", Value: formTypes.OptionsAnswer()}}
		if e.ShouldShow(questionByID(t, e, "q4"), responses) {
			t.Error("empty selection must count as unanswered")
		}
	})

	t.Run("raw value match on non choice parent", func(t *testing.T) {
		responses := []formTypes.Response{
			{QuestionID: "q1", Value: formTypes.OptionAnswer(1)},
			{QuestionID: "q2", Value: formTypes.StringAnswer("dog")},
		}
		if !e.ShouldShow(questionByID(t, e, "q6"), responses) {
			t.Error("matching raw value should show the question")
		}

		responses[1].Value = formTypes.StringAnswer("cat")
		if e.ShouldShow(questionByID(t, e, "q6"), responses) {
			t.Error("non matching raw value should hide the question")
		}
	})

	t.Run("unresolvable parent fails closed", func(t *testing.T) {
		responses := []formTypes.Response{{QuestionID: "missing", Value: formTypes.OptionAnswer(0)}}
		if e.ShouldShow(questionByID(t, e, "q7"), responses) {
			t.Error("orphaned conditional question must never be shown")
		}
	})
}

func TestVisibleQuestions(t *testing.T) {
	e := NewResponseEngine(testCatalog(), nil)

	responses := []formTypes.Response{
		{QuestionID: "q1", Value: formTypes.OptionAnswer(1)},
		{QuestionID: "q3", Value: formTypes.OptionsAnswer(0)},
	}
	visible := e.VisibleQuestions(responses)

	got := map[string]bool{}
	for _, q := range visible {
		got[q.ID] = true
	}
	for _, id := range []string{"q1", "q2", "q3", "q4"} {
		if !got[id] {
			t.Errorf("expected %s to be visible", id)
		}
	}
	for _, id := range []string{"q5", "q6", "q7"} {
		if got[id] {
			t.Errorf("expected %s to be hidden", id)
		}
	}
}
