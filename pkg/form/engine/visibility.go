package engine

import (
	"math"
	"strconv"

	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

// ShouldShow decides whether the question is currently visible given the
// answer set. It is a pure predicate: safe to call with partial response
// sets and free of side effects. A conditional question whose parent
// cannot be resolved is never shown.
func (e *ResponseEngine) ShouldShow(question formTypes.Question, responses []formTypes.Response) bool {
	if question.Condition == nil {
		return true
	}

	parent, found := e.questionByID(question.Condition.ParentQuestionID)
	if !found {
		return false
	}

	parentValue := formTypes.AnswerFor(responses, parent.ID)
	if parentValue.IsEmpty() {
		return false
	}

	switch parent.QuestionType {
	case formTypes.QUESTION_TYPE_SINGLE_CHOICE, formTypes.QUESTION_TYPE_DROPDOWN:
		selected, ok := answerAsOptionIndex(parentValue)
		if !ok {
			return false
		}
		return selected == question.Condition.RequiredOption
	case formTypes.QUESTION_TYPE_MULTIPLE_CHOICE:
		return parentValue.HasSelectedOption(question.Condition.RequiredOption)
	default:
		return matchesRawValue(parentValue, *question.Condition)
	}
}

// VisibleQuestions filters the catalog down to the questions currently shown.
func (e *ResponseEngine) VisibleQuestions(responses []formTypes.Response) []formTypes.Question {
	visible := []formTypes.Question{}
	for _, q := range e.questions {
		if e.ShouldShow(q, responses) {
			visible = append(visible, q)
		}
	}
	return visible
}

// answerAsOptionIndex coerces an answer to a single option index. Numeric
// values and numeric strings are tolerated, everything else does not match.
func answerAsOptionIndex(value formTypes.AnswerValue) (index int, ok bool) {
	switch value.DType {
	case formTypes.ANSWER_DTYPE_OPTION:
		return value.Option, true
	case formTypes.ANSWER_DTYPE_NUM:
		if value.Num != math.Trunc(value.Num) {
			return 0, false
		}
		return int(value.Num), true
	case formTypes.ANSWER_DTYPE_STR:
		parsed, err := strconv.Atoi(value.Str)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// matchesRawValue handles conditions on non-choice parents: the stored
// answer is compared directly against the configured value. When no raw
// value is configured, the required option index is compared numerically.
func matchesRawValue(value formTypes.AnswerValue, condition formTypes.ParentRef) bool {
	if condition.RequiredValue != "" {
		switch value.DType {
		case formTypes.ANSWER_DTYPE_STR:
			return value.Str == condition.RequiredValue
		case formTypes.ANSWER_DTYPE_NUM:
			expected, err := strconv.ParseFloat(condition.RequiredValue, 64)
			if err != nil {
				return false
			}
			return value.Num == expected
		default:
			return false
		}
	}
	selected, ok := answerAsOptionIndex(value)
	if !ok {
		return false
	}
	return selected == condition.RequiredOption
}
