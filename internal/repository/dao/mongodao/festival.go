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

type FestivalDAO struct {
	coll *mongo.Collection
}

func NewFestivalDAO(db *mongo.Database) *FestivalDAO {
	return &FestivalDAO{
		coll: db.Collection(FestivalsCollection),
	}
}

func (d *FestivalDAO) ValidID(id string) bool {
	return ValidID(id)
}

func (d *FestivalDAO) Insert(ctx context.Context, festival dao.Festival) (dao.Festival, error) {
	now := time.Now().UTC()
	festival.ID = newID()
	festival.CreatedAt = now
	festival.UpdatedAt = now

	if _, err := d.coll.InsertOne(ctx, festival); err != nil {
		return dao.Festival{}, err
	}

	return festival, nil
}

func (d *FestivalDAO) FindByID(ctx context.Context, id string) (dao.Festival, error) {
	if !ValidID(id) {
		return dao.Festival{}, dao.ErrFestivalNotFound
	}

	var festival dao.Festival
	err := d.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&festival)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dao.Festival{}, dao.ErrFestivalNotFound
		}

		return dao.Festival{}, err
	}

	return festival, nil
}

func (d *FestivalDAO) FindByIDs(ctx context.Context, ids []string) ([]dao.Festival, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if ValidID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []dao.Festival{}, nil
	}

	return d.find(ctx, bson.M{"_id": bson.M{"$in": valid}}, nil)
}

func (d *FestivalDAO) Find(ctx context.Context, q dao.FestivalQuery) ([]dao.Festival, error) {
	filter := bson.M{}

	if q.Region != nil {
		filter["region"] = *q.Region
	}
	if q.Type != nil {
		filter["type"] = *q.Type
	}
	if q.CrowdLevel != nil {
		filter["touristInfo.crowdLevel"] = *q.CrowdLevel
	}
	if q.BudgetLevel != nil {
		filter["touristInfo.budgetLevel"] = *q.BudgetLevel
	}
	if q.IsHiddenGem != nil {
		filter["isHiddenGem"] = *q.IsHiddenGem
	}
	if q.StartsFrom != nil {
		filter["startDate"] = bson.M{"$gte": *q.StartsFrom}
	}
	if q.EndsBy != nil {
		filter["endDate"] = bson.M{"$lte": *q.EndsBy}
	}

	return d.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}}))
}

func (d *FestivalDAO) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]dao.Festival, error) {
	cursor, err := d.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	festivals := []dao.Festival{}
	if err = cursor.All(ctx, &festivals); err != nil {
		return nil, err
	}

	return festivals, nil
}

func (d *FestivalDAO) Update(ctx context.Context, festival dao.Festival) (dao.Festival, error) {
	if !ValidID(festival.ID) {
		return dao.Festival{}, dao.ErrFestivalNotFound
	}

	existing, err := d.FindByID(ctx, festival.ID)
	if err != nil {
		return dao.Festival{}, err
	}
	festival.CreatedAt = existing.CreatedAt
	festival.UpdatedAt = time.Now().UTC()

	result, err := d.coll.ReplaceOne(ctx, bson.M{"_id": festival.ID}, festival)
	if err != nil {
		return dao.Festival{}, err
	}
	if result.MatchedCount == 0 {
		return dao.Festival{}, dao.ErrFestivalNotFound
	}

	return festival, nil
}

func (d *FestivalDAO) Delete(ctx context.Context, id string) error {
	if !ValidID(id) {
		return dao.ErrFestivalNotFound
	}

	result, err := d.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return dao.ErrFestivalNotFound
	}

	return nil
}
