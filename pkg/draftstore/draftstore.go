package draftstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/formtracer/form-backend/pkg/form/engine"
	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

const DEFAULT_DRAFT_TTL = 14 * 24 * time.Hour

type DraftStoreConfig struct {
	Address  string        `json:"address" yaml:"address"`
	Username string        `json:"username" yaml:"username"`
	Password string        `json:"password" yaml:"password"`
	DB       int           `json:"db" yaml:"db"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
	DraftTTL time.Duration `json:"draft_ttl" yaml:"draft_ttl"`
}

// DraftStore keeps the unsubmitted answers of filling sessions in redis,
// one hash per session, so a respondent can resume a form later. Cascading
// clears in the response engine are mirrored here through the AnswerSink
// bound to a session.
type DraftStore struct {
	client  *redis.Client
	timeout time.Duration
	ttl     time.Duration
}

func NewDraftStore(config DraftStoreConfig) (*DraftStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Username: config.Username,
		Password: config.Password,
		DB:       config.DB,
	})

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	ttl := config.DraftTTL
	if ttl <= 0 {
		ttl = DEFAULT_DRAFT_TTL
	}

	return &DraftStore{
		client:  client,
		timeout: timeout,
		ttl:     ttl,
	}, nil
}

func draftKey(instanceID string, formKey string, sessionID string) string {
	return fmt.Sprintf("draft:%s:%s:%s", instanceID, formKey, sessionID)
}

func (s *DraftStore) getContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// SaveAnswers upserts the given entries into the session draft and
// refreshes its TTL.
func (s *DraftStore) SaveAnswers(instanceID string, formKey string, sessionID string, answers []formTypes.Response) error {
	if len(answers) == 0 {
		return nil
	}

	ctx, cancel := s.getContext()
	defer cancel()

	values := make(map[string]interface{}, len(answers))
	for _, answer := range answers {
		payload, err := json.Marshal(answer.Value)
		if err != nil {
			return err
		}
		values[answer.QuestionID] = payload
	}

	key := draftKey(instanceID, formKey, sessionID)
	if err := s.client.HSet(ctx, key, values).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, s.ttl).Err()
}

// GetAnswers loads the stored draft of a session. A missing draft is an
// empty answer set, not an error.
func (s *DraftStore) GetAnswers(instanceID string, formKey string, sessionID string) ([]formTypes.Response, error) {
	ctx, cancel := s.getContext()
	defer cancel()

	stored, err := s.client.HGetAll(ctx, draftKey(instanceID, formKey, sessionID)).Result()
	if err != nil {
		return nil, err
	}

	answers := []formTypes.Response{}
	for questionID, payload := range stored {
		var value formTypes.AnswerValue
		if err := json.Unmarshal([]byte(payload), &value); err != nil {
			return nil, err
		}
		answers = append(answers, formTypes.Response{QuestionID: questionID, Value: value})
	}
	return answers, nil
}

func (s *DraftStore) RemoveAnswer(instanceID string, formKey string, sessionID string, questionID string) error {
	ctx, cancel := s.getContext()
	defer cancel()

	return s.client.HDel(ctx, draftKey(instanceID, formKey, sessionID), questionID).Err()
}

// DeleteDraft drops the whole session draft, used after submission.
func (s *DraftStore) DeleteDraft(instanceID string, formKey string, sessionID string) error {
	ctx, cancel := s.getContext()
	defer cancel()

	return s.client.Del(ctx, draftKey(instanceID, formKey, sessionID)).Err()
}

// ForSession binds the store to one filling session as an engine.AnswerSink.
func (s *DraftStore) ForSession(instanceID string, formKey string, sessionID string) engine.AnswerSink {
	return &sessionSink{
		store:      s,
		instanceID: instanceID,
		formKey:    formKey,
		sessionID:  sessionID,
	}
}

type sessionSink struct {
	store      *DraftStore
	instanceID string
	formKey    string
	sessionID  string
}

func (s *sessionSink) RemoveSavedAnswer(questionID string) error {
	return s.store.RemoveAnswer(s.instanceID, s.formKey, s.sessionID, questionID)
}
