package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// Form is the stored definition a filling session works against.
// The question catalog is treated as immutable input by the engine,
// mutations go through the form management API only.
type Form struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FormKey     string             `bson:"formKey,omitempty" json:"formKey,omitempty"`
	Props       FormProps          `bson:"props,omitempty" json:"props,omitempty"`
	VersionID   string             `bson:"versionID,omitempty" json:"versionId,omitempty"`
	Published   int64              `bson:"published,omitempty" json:"published,omitempty"`
	Unpublished int64              `bson:"unpublished,omitempty" json:"unpublished,omitempty"`
	Questions   []Question         `bson:"questions,omitempty" json:"questions,omitempty"`

	Metadata map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type FormProps struct {
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// QuestionByID resolves a catalog entry by its stable id.
func (f Form) QuestionByID(questionID string) (question Question, found bool) {
	for _, q := range f.Questions {
		if q.ID != "" && q.ID == questionID {
			return q, true
		}
	}
	return question, false
}

// QuestionsOnPage returns the catalog entries assigned to the given page
// in their original order.
func (f Form) QuestionsOnPage(page int) []Question {
	questions := []Question{}
	for _, q := range f.Questions {
		if q.Page == page {
			questions = append(questions, q)
		}
	}
	return questions
}
