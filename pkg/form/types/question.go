package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// question types
const (
	QUESTION_TYPE_SINGLE_CHOICE   = "single_choice"
	QUESTION_TYPE_MULTIPLE_CHOICE = "multiple_choice"
	QUESTION_TYPE_DROPDOWN        = "dropdown"
	QUESTION_TYPE_TEXT            = "text"
	QUESTION_TYPE_PARAGRAPH       = "paragraph"
	QUESTION_TYPE_DISPLAY         = "display"
	QUESTION_TYPE_NUMBER          = "number"
	QUESTION_TYPE_DATE            = "date"
	QUESTION_TYPE_NUMBER_RANGE    = "number_range"
	QUESTION_TYPE_DATE_RANGE      = "date_range"
)

var KnownQuestionTypes = []string{
	QUESTION_TYPE_SINGLE_CHOICE,
	QUESTION_TYPE_MULTIPLE_CHOICE,
	QUESTION_TYPE_DROPDOWN,
	QUESTION_TYPE_TEXT,
	QUESTION_TYPE_PARAGRAPH,
	QUESTION_TYPE_DISPLAY,
	QUESTION_TYPE_NUMBER,
	QUESTION_TYPE_DATE,
	QUESTION_TYPE_NUMBER_RANGE,
	QUESTION_TYPE_DATE_RANGE,
}

type Question struct {
	DBID         primitive.ObjectID `bson:"_id,omitempty" json:"dbId,omitempty"`
	ID           string             `bson:"id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title,omitempty" json:"title,omitempty"`
	QuestionType string             `bson:"questionType" json:"questionType"`
	Required     bool               `bson:"required,omitempty" json:"required,omitempty"`
	Score        *float64           `bson:"score,omitempty" json:"score,omitempty"`
	Page         int                `bson:"page,omitempty" json:"page,omitempty"`

	// only for choice-like question types
	Options []Option `bson:"options,omitempty" json:"options,omitempty"`

	// present if the question is conditional, absent for root questions
	Condition *ParentRef `bson:"condition,omitempty" json:"condition,omitempty"`
}

type Option struct {
	Index int    `bson:"index" json:"index"`
	Label string `bson:"label" json:"label"`
}

// ParentRef links a conditional question to the answer of its parent question.
type ParentRef struct {
	ParentQuestionID string `bson:"parentQuestionId" json:"parentQuestionId"`
	// legacy fallback when the id cannot be resolved
	ParentPosition *int `bson:"parentPosition,omitempty" json:"parentPosition,omitempty"`
	// option index that must be selected on a choice-typed parent
	RequiredOption int `bson:"requiredOption" json:"requiredOption"`
	// raw value compared against the parent answer for non-choice parents
	RequiredValue string `bson:"requiredValue,omitempty" json:"requiredValue,omitempty"`
}

func (q Question) IsConditional() bool {
	return q.Condition != nil
}

// IsChoiceType reports whether answers to this question are option indices.
func IsChoiceType(questionType string) bool {
	switch questionType {
	case QUESTION_TYPE_SINGLE_CHOICE, QUESTION_TYPE_MULTIPLE_CHOICE, QUESTION_TYPE_DROPDOWN:
		return true
	}
	return false
}

func IsKnownQuestionType(questionType string) bool {
	for _, t := range KnownQuestionTypes {
		if t == questionType {
			return true
		}
	}
	return false
}

// HasOption reports whether the question defines an option with the given index.
func (q Question) HasOption(index int) bool {
	for _, opt := range q.Options {
		if opt.Index == index {
			return true
		}
	}
	return false
}
