package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type tokenDoc struct {
	ID        string    `bson:"_id"`
	Token     string    `bson:"token"`
	User      string    `bson:"user"`
	CreatedAt time.Time `bson:"createdAt"`
}

type TokenRepository struct {
	tokens *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{tokens: db.Collection(tokensCollection)}
}

func (r *TokenRepository) Create(ctx context.Context, t *domain.Token) error {
	_, err := r.tokens.InsertOne(ctx, tokenDoc{
		ID:        t.ID,
		Token:     t.Token,
		User:      t.UserID,
		CreatedAt: t.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("create token: %w", err)
	}
	return nil
}

func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*domain.Token, error) {
	var doc tokenDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if err := r.tokens.FindOne(ctx, bson.M{"token": token}, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return &domain.Token{ID: doc.ID, Token: doc.Token, UserID: doc.User, CreatedAt: doc.CreatedAt}, nil
}

func (r *TokenRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.tokens.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (r *TokenRepository) DeleteIssuedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.tokens.DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return int(res.DeletedCount), nil
}
