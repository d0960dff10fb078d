package mongodao

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/datatypes"

	"github.com/festivefusion/festival-api/internal/repository/dao"
)

type UserDAO struct {
	coll *mongo.Collection
}

func NewUserDAO(db *mongo.Database) *UserDAO {
	return &UserDAO{
		coll: db.Collection(UsersCollection),
	}
}

func (d *UserDAO) Insert(ctx context.Context, user dao.User) (dao.User, error) {
	now := time.Now().UTC()
	user.ID = newID()
	user.CreatedAt = now
	user.UpdatedAt = now
	// $addToSet and $pull need an array, never null.
	if user.SavedFestivals == nil {
		user.SavedFestivals = datatypes.JSONSlice[string]{}
	}

	if _, err := d.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dao.User{}, dao.ErrUserEmailExists
		}

		return dao.User{}, err
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id string) (dao.User, error) {
	if !ValidID(id) {
		return dao.User{}, dao.ErrUserNotFound
	}

	return d.findOne(ctx, bson.M{"_id": id})
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (dao.User, error) {
	return d.findOne(ctx, bson.M{"email": email})
}

func (d *UserDAO) findOne(ctx context.Context, filter bson.M) (dao.User, error) {
	var user dao.User
	err := d.coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dao.User{}, dao.ErrUserNotFound
		}

		return dao.User{}, err
	}

	return user, nil
}

func (d *UserDAO) UpdatePreferences(ctx context.Context, id string, prefs dao.UserPreferences) (dao.User, error) {
	return d.update(ctx, id, bson.M{
		"$set": bson.M{"preferences": prefs, "updatedAt": time.Now().UTC()},
	})
}

func (d *UserDAO) AddSavedFestival(ctx context.Context, id, festivalID string) (dao.User, error) {
	return d.update(ctx, id, bson.M{
		"$addToSet": bson.M{"savedFestivals": festivalID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (d *UserDAO) RemoveSavedFestival(ctx context.Context, id, festivalID string) (dao.User, error) {
	return d.update(ctx, id, bson.M{
		"$pull": bson.M{"savedFestivals": festivalID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (d *UserDAO) update(ctx context.Context, id string, update bson.M) (dao.User, error) {
	if !ValidID(id) {
		return dao.User{}, dao.ErrUserNotFound
	}

	var user dao.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := d.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dao.User{}, dao.ErrUserNotFound
		}

		return dao.User{}, err
	}

	return user, nil
}
