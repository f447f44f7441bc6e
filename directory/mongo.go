package directory

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type userDoc struct {
	Account  string `bson:"account"`
	Password string `bson:"password"`
	Email    string `bson:"email"`
}

// Mongo stores users in the "users" collection. A unique index on account
// makes Save an atomic insert-if-absent.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongo")
	}
	coll := client.Database(database).Collection("users")

	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "account", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, errors.Wrap(err, "failed to create account index")
	}
	return &Mongo{client: client, coll: coll}, nil
}

func (m *Mongo) FindByAccount(ctx context.Context, account string) (User, error) {
	var doc userDoc
	err := m.coll.FindOne(ctx, bson.M{"account": account}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return User{}, errors.Wrapf(ErrUserNotFound, "account %q", account)
	}
	if err != nil {
		return User{}, errors.Wrap(err, "failed to find user")
	}
	return User(doc), nil
}

func (m *Mongo) Save(ctx context.Context, u User) error {
	_, err := m.coll.InsertOne(ctx, userDoc(u))
	if mongo.IsDuplicateKeyError(err) {
		return errors.Wrapf(ErrAlreadyRegistered, "account %q", u.Account)
	}
	if err != nil {
		return errors.Wrap(err, "failed to insert user")
	}
	return nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
