package form

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/formtracer/form-backend/pkg/db"
)

// collection names
const (
	COLLECTION_NAME_FORMS            = "forms"
	COLLECTION_NAME_SUFFIX_RESPONSES = "formResponses"
)

type FormDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
	InstanceIDs     []string
}

func NewFormDBService(configs db.DBConfig) (*FormDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	formDBSc := &FormDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
		InstanceIDs:     configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := formDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for form DB", slog.String("error", err.Error()))
		}
	}

	return formDBSc, nil
}

func (dbService *FormDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_formDB"
}

func (dbService *FormDBService) collectionForms(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_FORMS)
}

func (dbService *FormDBService) collectionResponses(instanceID string, formKey string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(formKey + "_" + COLLECTION_NAME_SUFFIX_RESPONSES)
}

func (dbService *FormDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *FormDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for form DB")
	for _, instanceID := range dbService.InstanceIDs {
		err := dbService.createIndexForFormsCollection(instanceID)
		if err != nil {
			slog.Error("Error creating index for forms", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		}

		forms, err := dbService.GetFormInfos(instanceID)
		if err != nil {
			slog.Error("Error fetching forms", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
			return err
		}

		for _, form := range forms {
			err = dbService.createIndexForResponsesCollection(instanceID, form.FormKey)
			if err != nil {
				slog.Error("Error creating index for form responses", slog.String("formKey", form.FormKey), slog.String("error", err.Error()))
			}
		}
	}
	return nil
}

func (dbService *FormDBService) createIndexForFormsCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionForms(instanceID).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "formKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	)
	return err
}

func (dbService *FormDBService) createIndexForResponsesCollection(instanceID string, formKey string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "sessionID", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "submittedAt", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "arrivedAt", Value: 1},
			},
		},
	}
	_, err := dbService.collectionResponses(instanceID, formKey).Indexes().CreateMany(ctx, indexes)
	return err
}
