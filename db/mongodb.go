package db

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/avinashankur/user-accounts-backend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// verify MongoDB implements database interface in compile time
var _ Database = (*MongoDB)(nil)

const (
	USER_COLL = "users"
)

type MongoDB struct {
	client *mongo.Client
	db     string
}

func NewMongo(ctx context.Context, conn string, db string) (*MongoDB, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(conn))
	if err != nil {
		return nil, err
	}

	m := &MongoDB{client: client, db: db}
	if err := m.Ping(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *MongoDB) users() *mongo.Collection {
	return m.client.Database(m.db).Collection(USER_COLL)
}

// EnsureIndexes creates the unique indexes on username and email. Concurrent
// registrations that slip past the services' existence checks are rejected
// here with a duplicate key error.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := m.users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoDB) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoDB) CreateUser(ctx context.Context, user CreateUser) (models.User, error) {
	now := time.Now().Unix()
	dbuser := models.User{
		ID:        models.NewUserID(),
		CreatedAt: now,
		UpdatedAt: now,
		Name:      strings.TrimSpace(user.Name),
		Username:  strings.TrimSpace(user.Username),
		Email:     normalizeEmail(user.Email),
		Password:  user.PwdHash,
	}

	_, err := m.users().InsertOne(ctx, dbuser)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}

	return dbuser, nil
}

func (m *MongoDB) FindByID(ctx context.Context, id models.UserID) (models.User, error) {
	return m.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (m *MongoDB) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return m.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (m *MongoDB) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return m.findOne(ctx, bson.D{{Key: "email", Value: normalizeEmail(email)}})
}

func (m *MongoDB) FindByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	return m.findOne(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: identifier}},
		bson.D{{Key: "email", Value: normalizeEmail(identifier)}},
	}}})
}

func (m *MongoDB) findOne(ctx context.Context, filter bson.D) (user models.User, err error) {
	err = m.users().FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (m *MongoDB) SearchByText(ctx context.Context, query string, limit int64) ([]models.User, error) {
	pattern := bson.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "name", Value: pattern}},
		bson.D{{Key: "username", Value: pattern}},
		bson.D{{Key: "email", Value: pattern}},
	}}}

	cursor, err := m.users().Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (m *MongoDB) ListAll(ctx context.Context) ([]models.User, error) {
	cursor, err := m.users().Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (m *MongoDB) UpdateUser(ctx context.Context, id models.UserID, fields UserUpdate) (models.User, error) {
	set := bson.D{{Key: "updated_at", Value: time.Now().Unix()}}
	if fields.Name != nil {
		set = append(set, bson.E{Key: "name", Value: strings.TrimSpace(*fields.Name)})
	}
	if fields.Username != nil {
		set = append(set, bson.E{Key: "username", Value: strings.TrimSpace(*fields.Username)})
	}
	if fields.Email != nil {
		set = append(set, bson.E{Key: "email", Value: normalizeEmail(*fields.Email)})
	}
	if fields.PwdHash != nil {
		set = append(set, bson.E{Key: "password", Value: *fields.PwdHash})
	}

	var user models.User
	err := m.users().FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return models.User{}, ErrDuplicate
	}
	return user, err
}

func (m *MongoDB) SetRefreshToken(ctx context.Context, id models.UserID, token string) error {
	result, err := m.users().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "refresh_token", Value: token},
			{Key: "updated_at", Value: time.Now().Unix()},
		}}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
