package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoOfferArchive implements OfferArchiveRepository. Raw provider
// payloads stay opaque; Mongo just holds them for later inspection.
type MongoOfferArchive struct {
	collection *mongo.Collection
}

type offerPayloadDoc struct {
	ID              string    `bson:"_id,omitempty"`
	DepartureDate   string    `bson:"departureDate"`
	ReturnDate      string    `bson:"returnDate"`
	Direction       string    `bson:"direction"`
	InboundAirport  string    `bson:"inboundAirport"`
	OutboundAirport string    `bson:"outboundAirport"`
	Outbound        []byte    `bson:"outbound"`
	Return          []byte    `bson:"return"`
	ArchivedAt      time.Time `bson:"archivedAt"`
}

// NewMongoOfferArchive creates a new offer payload archive
func NewMongoOfferArchive(db *mongo.Database) repository.OfferArchiveRepository {
	collection := db.Collection("offer_payloads")

	// Index on the date pair for inspection queries
	ctx := context.Background()
	dateIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "departureDate", Value: 1}, {Key: "returnDate", Value: 1}},
	}
	collection.Indexes().CreateOne(ctx, dateIndex)

	return &MongoOfferArchive{
		collection: collection,
	}
}

// Archive stores one route option's raw outbound and return payloads
func (r *MongoOfferArchive) Archive(ctx context.Context, payload *entity.OfferPayload) (string, error) {
	doc := offerPayloadDoc{
		ID:              primitive.NewObjectID().Hex(),
		DepartureDate:   payload.DepartureDate,
		ReturnDate:      payload.ReturnDate,
		Direction:       payload.Direction,
		InboundAirport:  payload.InboundAirport,
		OutboundAirport: payload.OutboundAirport,
		Outbound:        payload.Outbound,
		Return:          payload.Return,
		ArchivedAt:      payload.ArchivedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", &entity.PersistenceError{Op: "ArchiveOffer", Err: err}
	}
	payload.ID = doc.ID
	return doc.ID, nil
}

// Find loads an archived payload by document id
func (r *MongoOfferArchive) Find(ctx context.Context, id string) (*entity.OfferPayload, error) {
	var doc offerPayloadDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, &entity.PersistenceError{Op: "FindOffer", Err: err}
	}
	return &entity.OfferPayload{
		ID:              doc.ID,
		DepartureDate:   doc.DepartureDate,
		ReturnDate:      doc.ReturnDate,
		Direction:       doc.Direction,
		InboundAirport:  doc.InboundAirport,
		OutboundAirport: doc.OutboundAirport,
		Outbound:        doc.Outbound,
		Return:          doc.Return,
		ArchivedAt:      doc.ArchivedAt,
	}, nil
}
