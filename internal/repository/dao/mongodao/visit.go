package mongodao

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/festivefusion/festival-api/internal/repository/dao"
)

type VisitDAO struct {
	coll *mongo.Collection
}

func NewVisitDAO(db *mongo.Database) *VisitDAO {
	return &VisitDAO{
		coll: db.Collection(VisitsCollection),
	}
}

func (d *VisitDAO) ValidID(id string) bool {
	return ValidID(id)
}

func (d *VisitDAO) Insert(ctx context.Context, visit dao.PlannedVisit) (dao.PlannedVisit, error) {
	now := time.Now().UTC()
	visit.ID = newID()
	visit.CreatedAt = now
	visit.UpdatedAt = now

	if _, err := d.coll.InsertOne(ctx, visit); err != nil {
		return dao.PlannedVisit{}, err
	}

	return visit, nil
}

func (d *VisitDAO) FindByUserID(ctx context.Context, userID string) ([]dao.PlannedVisit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "visitDate", Value: 1}})
	cursor, err := d.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}

	visits := []dao.PlannedVisit{}
	if err = cursor.All(ctx, &visits); err != nil {
		return nil, err
	}

	return visits, nil
}

func (d *VisitDAO) FindOwned(ctx context.Context, id, userID string) (dao.PlannedVisit, error) {
	if !ValidID(id) {
		return dao.PlannedVisit{}, dao.ErrVisitNotFound
	}

	var visit dao.PlannedVisit
	err := d.coll.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&visit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dao.PlannedVisit{}, dao.ErrVisitNotFound
		}

		return dao.PlannedVisit{}, err
	}

	return visit, nil
}

func (d *VisitDAO) UpdateOwned(ctx context.Context, visit dao.PlannedVisit) (dao.PlannedVisit, error) {
	if !ValidID(visit.ID) {
		return dao.PlannedVisit{}, dao.ErrVisitNotFound
	}

	update := bson.M{"$set": bson.M{
		"visitDate":           visit.VisitDate,
		"groupSize":           visit.GroupSize,
		"specialRequirements": visit.SpecialRequirements,
		"status":              visit.Status,
		"updatedAt":           time.Now().UTC(),
	}}

	var updated dao.PlannedVisit
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := d.coll.FindOneAndUpdate(ctx, bson.M{"_id": visit.ID, "userId": visit.UserID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dao.PlannedVisit{}, dao.ErrVisitNotFound
		}

		return dao.PlannedVisit{}, err
	}

	return updated, nil
}

func (d *VisitDAO) DeleteOwned(ctx context.Context, id, userID string) error {
	if !ValidID(id) {
		return dao.ErrVisitNotFound
	}

	result, err := d.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return dao.ErrVisitNotFound
	}

	return nil
}

func (d *VisitDAO) DeleteByFestivalID(ctx context.Context, festivalID string) (int64, error) {
	result, err := d.coll.DeleteMany(ctx, bson.M{"festivalId": festivalID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
