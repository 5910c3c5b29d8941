package engine

import (
	"strings"
	"testing"

	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

func TestIsPageComplete(t *testing.T) {
	catalog := []formTypes.Question{
		{ID: "name", QuestionType: formTypes.QUESTION_TYPE_TEXT, Required: true},
		{ID: "age", QuestionType: formTypes.QUESTION_TYPE_NUMBER, Required: true},
		{ID: "tags", QuestionType: formTypes.QUESTION_TYPE_MULTIPLE_CHOICE, Required: true,
			Options: []formTypes.Option{{Index: 0, Label: "A"}, {Index: 1, Label: "B"}}},
		{ID: "period", QuestionType: formTypes.QUESTION_TYPE_DATE_RANGE, Required: true},
		{ID: "note", QuestionType: formTypes.QUESTION_TYPE_PARAGRAPH},
		{ID: "info", QuestionType: formTypes.QUESTION_TYPE_DISPLAY, Required: true},
	}
	e := NewResponseEngine(catalog, nil)

	complete := []formTypes.Response{
		{QuestionID: "name", Value: formTypes.StringAnswer("Ada")},
		{QuestionID: "age", Value: formTypes.NumberAnswer(36)},
		{QuestionID: "tags", Value: formTypes.OptionsAnswer(1)},
		{QuestionID: "period", Value: formTypes.RangeAnswer("2024-01-01", "2024-02-01")},
	}

	t.Run("all required answered", func(t *testing.T) {
		if !e.IsPageComplete(catalog, complete) {
			t.Error("page should be complete")
		}
	})

	t.Run("blank text does not count", func(t *testing.T) {
		responses := e.ApplyChanges(complete, Change{QuestionID: "name", Value: formTypes.StringAnswer("   ")})
		if e.IsPageComplete(catalog, responses) {
			t.Error("whitespace only answer should not satisfy a required text question")
		}
	})

	t.Run("empty option set does not count", func(t *testing.T) {
		responses := []formTypes.Response{
			{QuestionID: "name", Value: formTypes.StringAnswer("Ada")},
			{QuestionID: "age", Value: formTypes.NumberAnswer(36)},
			{QuestionID: "tags", Value: formTypes.OptionsAnswer()},
			{QuestionID: "period", Value: formTypes.RangeAnswer("2024-01-01", "2024-02-01")},
		}
		if e.IsPageComplete(catalog, responses) {
			t.Error("empty selection should not satisfy a required multiple choice question")
		}
	})

	t.Run("half open range does not count", func(t *testing.T) {
		responses := e.ApplyChanges(complete, Change{QuestionID: "period", Value: formTypes.RangeAnswer("2024-01-01", "")})
		if e.IsPageComplete(catalog, responses) {
			t.Error("range without end should not satisfy a required range question")
		}
	})

	t.Run("non numeric answer does not count for number", func(t *testing.T) {
		responses := e.ApplyChanges(complete, Change{QuestionID: "age", Value: formTypes.StringAnswer("old")})
		if e.IsPageComplete(catalog, responses) {
			t.Error("non numeric answer should not satisfy a required number question")
		}
	})
}

func TestIsPageCompleteSkipsHiddenQuestions(t *testing.T) {
	e := NewResponseEngine(testCatalog(), nil)

	// q2 is required here via a modified catalog
	catalog := testCatalog()
	catalog[1].Required = true
	e = NewResponseEngine(catalog, nil)

	t.Run("hidden required question does not block", func(t *testing.T) {
		responses := []formTypes.Response{{QuestionID: "q1", Value: formTypes.OptionAnswer(0)}}
		if !e.IsPageComplete(catalog, responses) {
			t.Error("hidden required question must be excluded from the check")
		}
	})

	t.Run("visible required question blocks until answered", func(t *testing.T) {
		responses := []formTypes.Response{{QuestionID: "q1", Value: formTypes.OptionAnswer(1)}}
		if e.IsPageComplete(catalog, responses) {
			t.Error("visible required question without answer should block")
		}
	})
}

func TestValidateForm(t *testing.T) {
	catalog := []formTypes.Question{
		{ID: "q1", Title: "Your name", QuestionType: formTypes.QUESTION_TYPE_TEXT, Required: true},
		{ID: "q2", QuestionType: formTypes.QUESTION_TYPE_NUMBER, Required: true},
		{ID: "q3", QuestionType: formTypes.QUESTION_TYPE_TEXT},
	}
	e := NewResponseEngine(catalog, nil)

	t.Run("reports missing questions by title or position", func(t *testing.T) {
		err := e.ValidateForm(nil)
		if err == nil {
			t.Fatal("should report missing answers")
		}
		if !strings.Contains(err.Error(), "Your name") {
			t.Errorf("message should name the titled question: %v", err)
		}
		if !strings.Contains(err.Error(), "Question 2") {
			t.Errorf("message should use a positional label for untitled questions: %v", err)
		}
	})

	t.Run("nil when complete", func(t *testing.T) {
		responses := []formTypes.Response{
			{QuestionID: "q1", Value: formTypes.StringAnswer("Ada")},
			{QuestionID: "q2", Value: formTypes.NumberAnswer(1)},
		}
		if err := e.ValidateForm(responses); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
