package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rentease_backend/internal/feature/auth/domain/entity"
	"rentease_backend/internal/feature/auth/usecase"
)

// UserCollection はユーザーを保存するコレクション名です。
const UserCollection = "users"

// userDocument は users コレクションのドキュメントです。
type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// userMongo はUserRepositoryインターフェースのMongoDB実装です。
type userMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// userMongoがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userMongo)(nil)

// NewUserMongo は db の users コレクションを使うリポジトリを生成します。
func NewUserMongo(db *mongo.Database) *userMongo {
	return &userMongo{coll: db.Collection(UserCollection), now: time.Now}
}

// EnsureIndexes は email のユニークインデックスを作成します。
func (r *userMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}
	return nil
}

// Create はユーザーを追加します。メールアドレスが重複する場合は usecase.ErrEmailAlreadyExists です。
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	now := r.now().UTC()
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	u.ID = doc.ID.Hex()
	u.CreatedAt, u.UpdatedAt = now, now
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
func (r *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID はIDでユーザーを取得します。不正な ID は usecase.ErrUserNotFound です。
func (r *userMongo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

// UpdatePassword はメールアドレスに一致するユーザーのパスワードハッシュを置き換えます。
func (r *userMongo) UpdatePassword(ctx context.Context, email, hash string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"password": hash, "updatedAt": r.now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

func (r *userMongo) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &entity.User{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Email:     doc.Email,
		Password:  doc.Password,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
