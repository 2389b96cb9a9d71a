// Package adapters はpropertyフィーチャーのリポジトリ実装と外部サービス連携を提供します。
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

	"rentease_backend/internal/feature/property/domain/entity"
	"rentease_backend/internal/feature/property/usecase"
)

// PropertyCollection は物件を保存するコレクション名です。
const PropertyCollection = "properties"

// roomDocument は1カテゴリ分の部屋情報の BSON 表現です。
type roomDocument struct {
	Price     string `bson:"price,omitempty"`
	Deposit   string `bson:"deposit,omitempty"`
	Beds      string `bson:"beds,omitempty"`
	Baths     string `bson:"baths,omitempty"`
	BathType  string `bson:"bathType,omitempty"`
	Kitchen   string `bson:"kitchen,omitempty"`
	Area      string `bson:"area,omitempty"`
	MaxGuests string `bson:"maxGuests,omitempty"`
}

// propertyDocument は properties コレクションのドキュメントです。
type propertyDocument struct {
	ID                 primitive.ObjectID      `bson:"_id,omitempty"`
	UserID             primitive.ObjectID      `bson:"userId"`
	Type               string                  `bson:"type"`
	Title              string                  `bson:"title"`
	Location           string                  `bson:"location"`
	Description        string                  `bson:"description,omitempty"`
	Price              string                  `bson:"price"`
	Deposit            string                  `bson:"deposit,omitempty"`
	Beds               int                     `bson:"beds"`
	Baths              int                     `bson:"baths"`
	SqFt               string                  `bson:"sqFt,omitempty"`
	MaxGuests          int                     `bson:"maxGuests,omitempty"`
	Gender             string                  `bson:"gender"`
	Furnishing         string                  `bson:"furnishing,omitempty"`
	Phone              string                  `bson:"phone,omitempty"`
	Whatsapp           string                  `bson:"whatsapp,omitempty"`
	GmapLink           string                  `bson:"gmapLink,omitempty"`
	Amenities          []string                `bson:"amenities"`
	Images             []string                `bson:"images"`
	Verified           bool                    `bson:"verified"`
	AvailabilityStatus string                  `bson:"availabilityStatus,omitempty"`
	AvailableFrom      string                  `bson:"availableFrom,omitempty"`
	AvailableTo        string                  `bson:"availableTo,omitempty"`
	PGTypes            []string                `bson:"pgTypes,omitempty"`
	RentHouseTypes     []string                `bson:"rentHouseTypes,omitempty"`
	FlatTypes          []string                `bson:"flatTypes,omitempty"`
	TotalBathrooms     int                     `bson:"totalBathrooms,omitempty"`
	CommonKitchens     int                     `bson:"commonKitchens,omitempty"`
	Rooms              map[string]roomDocument `bson:"rooms,omitempty"`
	Details            bson.M                  `bson:"details,omitempty"`
	CreatedAt          time.Time               `bson:"createdAt"`
	UpdatedAt          time.Time               `bson:"updatedAt"`
}

// propertyMongo は PropertyRepository の MongoDB 実装です。
type propertyMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// propertyMongoがPropertyRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PropertyRepository = (*propertyMongo)(nil)

// NewPropertyMongo は db の properties コレクションを使うリポジトリを生成します。
func NewPropertyMongo(db *mongo.Database) *propertyMongo {
	return &propertyMongo{coll: db.Collection(PropertyCollection), now: time.Now}
}

// Create は物件を挿入し、ID と作成日時を p に設定します。
func (r *propertyMongo) Create(ctx context.Context, p *entity.Property) error {
	owner, err := primitive.ObjectIDFromHex(p.UserID)
	if err != nil {
		return fmt.Errorf("invalid owner id %q: %w", p.UserID, err)
	}
	now := r.now().UTC()
	doc := toDocument(p)
	doc.ID = primitive.NewObjectID()
	doc.UserID = owner
	doc.CreatedAt, doc.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	p.ID = doc.ID.Hex()
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

// List は全物件を新しい順に返します。
func (r *propertyMongo) List(ctx context.Context) ([]entity.Property, error) {
	return r.find(ctx, bson.M{})
}

// ListByOwner は ownerID の物件を新しい順に返します。不正な ID は空リストです。
func (r *propertyMongo) ListByOwner(ctx context.Context, ownerID string) ([]entity.Property, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []entity.Property{}, nil
	}
	return r.find(ctx, bson.M{"userId": owner})
}

// FindByID は ID で物件を取得します。存在しない・不正な ID は ErrPropertyNotFound です。
func (r *propertyMongo) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrPropertyNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

// FindByIDAndOwner は所有者が一致する場合のみ物件を返します。
func (r *propertyMongo) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Property, error) {
	filter, ok := ownerFilter(id, ownerID)
	if !ok {
		return nil, usecase.ErrPropertyNotFound
	}
	return r.findOne(ctx, filter)
}

// Update は p.ID と p.UserID に一致するドキュメントを置き換えます。作成日時は保持されます。
func (r *propertyMongo) Update(ctx context.Context, p *entity.Property) error {
	filter, ok := ownerFilter(p.ID, p.UserID)
	if !ok {
		return usecase.ErrPropertyNotFound
	}
	now := r.now().UTC()
	doc := toDocument(p)
	doc.ID = filter["_id"].(primitive.ObjectID)
	doc.UserID = filter["userId"].(primitive.ObjectID)
	doc.CreatedAt = p.CreatedAt.UTC()
	doc.UpdatedAt = now

	res, err := r.coll.ReplaceOne(ctx, filter, doc)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrPropertyNotFound
	}
	p.UpdatedAt = now
	return nil
}

// DeleteByIDAndOwner は所有者スコープで削除し、削除前のドキュメントを返します。
func (r *propertyMongo) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Property, error) {
	filter, ok := ownerFilter(id, ownerID)
	if !ok {
		return nil, usecase.ErrPropertyNotFound
	}
	var doc propertyDocument
	if err := r.coll.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to delete property: %w", err)
	}
	return toEntity(&doc), nil
}

// UpdatePrice は見出し価格のみを更新します。
func (r *propertyMongo) UpdatePrice(ctx context.Context, id, price string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return usecase.ErrPropertyNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"price": price}})
	if err != nil {
		return fmt.Errorf("failed to update price: %w", err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrPropertyNotFound
	}
	return nil
}

func (r *propertyMongo) find(ctx context.Context, filter bson.M) ([]entity.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer cur.Close(ctx)

	out := []entity.Property{}
	for cur.Next(ctx) {
		var doc propertyDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode property: %w", err)
		}
		out = append(out, *toEntity(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}
	return out, nil
}

func (r *propertyMongo) findOne(ctx context.Context, filter bson.M) (*entity.Property, error) {
	var doc propertyDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return toEntity(&doc), nil
}

// ownerFilter は _id と userId の両方で絞り込むフィルターを返します。
func ownerFilter(id, ownerID string) (bson.M, bool) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": objID, "userId": owner}, true
}

func toDocument(p *entity.Property) propertyDocument {
	doc := propertyDocument{
		Type:               p.Type,
		Title:              p.Title,
		Location:           p.Location,
		Description:        p.Description,
		Price:              p.Price,
		Deposit:            p.Deposit,
		Beds:               p.Beds,
		Baths:              p.Baths,
		SqFt:               p.SqFt,
		MaxGuests:          p.MaxGuests,
		Gender:             string(p.Gender),
		Furnishing:         p.Furnishing,
		Phone:              p.Phone,
		Whatsapp:           p.Whatsapp,
		GmapLink:           p.GmapLink,
		Amenities:          nonNil(p.Amenities),
		Images:             nonNil(p.Images),
		Verified:           p.Verified,
		AvailabilityStatus: p.AvailabilityStatus,
		AvailableFrom:      p.AvailableFrom,
		AvailableTo:        p.AvailableTo,
		PGTypes:            p.PGTypes,
		RentHouseTypes:     p.RentHouseTypes,
		FlatTypes:          p.FlatTypes,
		TotalBathrooms:     p.TotalBathrooms,
		CommonKitchens:     p.CommonKitchens,
	}
	if len(p.Rooms) > 0 {
		doc.Rooms = make(map[string]roomDocument, len(p.Rooms))
		for name, d := range p.Rooms {
			doc.Rooms[name] = roomDocument(d)
		}
	}
	if len(p.Details) > 0 {
		doc.Details = bson.M(p.Details)
	}
	return doc
}

func toEntity(doc *propertyDocument) *entity.Property {
	p := &entity.Property{
		ID:                 doc.ID.Hex(),
		UserID:             doc.UserID.Hex(),
		Type:               doc.Type,
		Title:              doc.Title,
		Location:           doc.Location,
		Description:        doc.Description,
		Price:              doc.Price,
		Deposit:            doc.Deposit,
		Beds:               doc.Beds,
		Baths:              doc.Baths,
		SqFt:               doc.SqFt,
		MaxGuests:          doc.MaxGuests,
		Gender:             entity.ParseGender(doc.Gender),
		Furnishing:         doc.Furnishing,
		Phone:              doc.Phone,
		Whatsapp:           doc.Whatsapp,
		GmapLink:           doc.GmapLink,
		Amenities:          nonNil(doc.Amenities),
		Images:             nonNil(doc.Images),
		Verified:           doc.Verified,
		AvailabilityStatus: doc.AvailabilityStatus,
		AvailableFrom:      doc.AvailableFrom,
		AvailableTo:        doc.AvailableTo,
		PGTypes:            doc.PGTypes,
		RentHouseTypes:     doc.RentHouseTypes,
		FlatTypes:          doc.FlatTypes,
		TotalBathrooms:     doc.TotalBathrooms,
		CommonKitchens:     doc.CommonKitchens,
		Rooms:              map[string]entity.RoomDetail{},
		Details:            map[string]any{},
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
	}
	for name, d := range doc.Rooms {
		p.Rooms[name] = entity.RoomDetail(d)
	}
	for k, v := range doc.Details {
		p.Details[k] = plain(v)
	}
	return p
}

// plain は BSON のネスト型（primitive.D / primitive.M / primitive.A）を
// JSON 化しやすい map / slice に変換します。
func plain(v any) any {
	switch t := v.(type) {
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plain(e)
		}
		return m
	case primitive.A:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = plain(e)
		}
		return s
	default:
		return v
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
