package form

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

// FormInfo is the form list representation without the question catalog.
type FormInfo struct {
	ID        primitive.ObjectID  `bson:"_id" json:"id"`
	FormKey   string              `bson:"formKey" json:"formKey"`
	Props     formTypes.FormProps `bson:"props" json:"props"`
	Published int64               `bson:"published" json:"published"`
}

func (dbService *FormDBService) CreateForm(instanceID string, form formTypes.Form) (formTypes.Form, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if form.FormKey == "" {
		return form, errors.New("formKey must not be empty")
	}

	res, err := dbService.collectionForms(instanceID).InsertOne(ctx, form)
	if err != nil {
		return form, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if ok {
		form.ID = id
	}
	return form, nil
}

func (dbService *FormDBService) GetFormByKey(instanceID string, formKey string) (form formTypes.Form, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"formKey": formKey}
	err = dbService.collectionForms(instanceID).FindOne(ctx, filter).Decode(&form)
	return form, err
}

func (dbService *FormDBService) GetFormInfos(instanceID string) (infos []FormInfo, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetProjection(bson.M{
		"formKey":   1,
		"props":     1,
		"published": 1,
	})

	cursor, err := dbService.collectionForms(instanceID).Find(ctx, bson.M{}, opts)
	if err != nil {
		return infos, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &infos)
	return infos, err
}

// UpdateForm replaces the stored definition for the form key.
func (dbService *FormDBService) UpdateForm(instanceID string, form formTypes.Form) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if form.FormKey == "" {
		return errors.New("formKey must not be empty")
	}

	filter := bson.M{"formKey": form.FormKey}
	form.ID = primitive.NilObjectID

	res, err := dbService.collectionForms(instanceID).ReplaceOne(ctx, filter, form)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *FormDBService) DeleteForm(instanceID string, formKey string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"formKey": formKey}
	res, err := dbService.collectionForms(instanceID).DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
