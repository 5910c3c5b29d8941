package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

// IsPageComplete reports whether every required question on the page has
// an answer of the expected shape. Questions that are currently hidden
// are excluded, a hidden required question never blocks navigation.
func (e *ResponseEngine) IsPageComplete(pageQuestions []formTypes.Question, responses []formTypes.Response) bool {
	for _, question := range pageQuestions {
		if !question.Required || question.QuestionType == formTypes.QUESTION_TYPE_DISPLAY {
			continue
		}
		if !e.ShouldShow(question, responses) {
			continue
		}
		if !isAnswerComplete(question, formTypes.AnswerFor(responses, question.ID)) {
			return false
		}
	}
	return true
}

// ValidateForm checks the whole catalog before submission. It returns nil
// when every required and visible question is answered, otherwise an error
// naming the missing questions.
func (e *ResponseEngine) ValidateForm(responses []formTypes.Response) error {
	missing := []string{}
	for i, question := range e.questions {
		if !question.Required || question.QuestionType == formTypes.QUESTION_TYPE_DISPLAY {
			continue
		}
		if !e.ShouldShow(question, responses) {
			continue
		}
		if isAnswerComplete(question, formTypes.AnswerFor(responses, question.ID)) {
			continue
		}
		label := question.Title
		if label == "" {
			label = fmt.Sprintf("Question %d", i+1)
		}
		missing = append(missing, label)
	}
	if len(missing) > 0 {
		return fmt.Errorf("please answer the following required questions: %s", strings.Join(missing, ", "))
	}
	return nil
}

// isAnswerComplete applies the per-type answer shape rules.
func isAnswerComplete(question formTypes.Question, value formTypes.AnswerValue) bool {
	if value.IsEmpty() {
		return false
	}
	switch question.QuestionType {
	case formTypes.QUESTION_TYPE_MULTIPLE_CHOICE:
		return len(value.SelectedOptions()) > 0
	case formTypes.QUESTION_TYPE_TEXT, formTypes.QUESTION_TYPE_PARAGRAPH:
		return !value.IsBlankText()
	case formTypes.QUESTION_TYPE_NUMBER:
		return isFiniteNumber(value)
	case formTypes.QUESTION_TYPE_DATE:
		return true
	case formTypes.QUESTION_TYPE_NUMBER_RANGE, formTypes.QUESTION_TYPE_DATE_RANGE:
		return value.Range != nil && value.Range.Start != "" && value.Range.End != ""
	default:
		return true
	}
}

func isFiniteNumber(value formTypes.AnswerValue) bool {
	switch value.DType {
	case formTypes.ANSWER_DTYPE_NUM:
		return !math.IsNaN(value.Num) && !math.IsInf(value.Num, 0)
	case formTypes.ANSWER_DTYPE_STR:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value.Str), 64)
		if err != nil {
			return false
		}
		return !math.IsNaN(parsed) && !math.IsInf(parsed, 0)
	default:
		return false
	}
}
