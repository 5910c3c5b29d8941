package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// Response is one in-memory answer entry of a filling session.
// A response set holds at most one entry per question id.
type Response struct {
	QuestionID string      `bson:"questionId" json:"questionId"`
	Value      AnswerValue `bson:"value" json:"value"`
}

// FindResponse returns the entry for the given question id, nil if absent.
func FindResponse(responses []Response, questionID string) *Response {
	for i := range responses {
		if responses[i].QuestionID == questionID {
			return &responses[i]
		}
	}
	return nil
}

// AnswerFor returns the stored value for the question, an empty value if absent.
func AnswerFor(responses []Response, questionID string) AnswerValue {
	if entry := FindResponse(responses, questionID); entry != nil {
		return entry.Value
	}
	return EmptyAnswer()
}

// FormResponse is a submitted answer set as persisted per form.
type FormResponse struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FormKey     string             `bson:"formKey" json:"formKey"`
	SessionID   string             `bson:"sessionID" json:"sessionId"`
	VersionID   string             `bson:"versionID" json:"versionId"`
	OpenedAt    int64              `bson:"openedAt" json:"openedAt"`
	SubmittedAt int64              `bson:"submittedAt" json:"submittedAt"`
	ArrivedAt   int64              `bson:"arrivedAt" json:"arrivedAt"`
	Answers     []Response         `bson:"answers" json:"answers"`
}
