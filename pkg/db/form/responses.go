package form

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/formtracer/form-backend/pkg/db"
	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

func (dbService *FormDBService) AddResponse(instanceID string, formKey string, response formTypes.FormResponse) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionResponses(instanceID, formKey).InsertOne(ctx, response)
	if err != nil {
		return "", err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return id.Hex(), nil
}

func (dbService *FormDBService) GetResponsesCount(instanceID string, formKey string, filter bson.M) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionResponses(instanceID, formKey).CountDocuments(ctx, filter)
}

// GetResponses returns submitted responses page by page.
func (dbService *FormDBService) GetResponses(instanceID string, formKey string, filter bson.M, sort bson.M, page int64, limit int64) (responses []formTypes.FormResponse, paginationInfo db.PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	totalCount, err := dbService.GetResponsesCount(instanceID, formKey, filter)
	if err != nil {
		return responses, paginationInfo, err
	}

	paginationInfo = db.PrepPaginationInfos(totalCount, page, limit)
	skip := (paginationInfo.CurrentPage - 1) * paginationInfo.PageSize

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(paginationInfo.PageSize)
	cursor, err := dbService.collectionResponses(instanceID, formKey).Find(ctx, filter, opts)
	if err != nil {
		return responses, paginationInfo, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	return responses, paginationInfo, err
}

func (dbService *FormDBService) DeleteResponseByID(instanceID string, formKey string, responseID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(responseID)
	if err != nil {
		return err
	}

	_, err = dbService.collectionResponses(instanceID, formKey).DeleteOne(ctx, bson.M{"_id": _id})
	return err
}
