package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"coachhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// withTransaction runs fn inside a Mongo transaction on this repo's client.
func (r *MongoSessionRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// CreateIfNoConflict closes the check-then-insert race: the overlap count and
// the insert commit together or not at all.
func (r *MongoSessionRepo) CreateIfNoConflict(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		count, err := r.coll.CountDocuments(sc, overlapFilter(session.CoachID, session.ScheduledAt, session.EndsAt, ""))
		if err != nil {
			return fmt.Errorf("conflict check failed: %w", err)
		}
		if count > 0 {
			return ErrSlotTaken
		}
		if _, err := r.coll.InsertOne(sc, session); err != nil {
			return fmt.Errorf("insert session failed: %w", err)
		}
		return nil
	})
}

// RescheduleIfNoConflict re-runs the overlap check against the coach's other
// scheduled sessions before persisting the new schedule.
func (r *MongoSessionRepo) RescheduleIfNoConflict(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		count, err := r.coll.CountDocuments(sc, overlapFilter(session.CoachID, session.ScheduledAt, session.EndsAt, session.ID))
		if err != nil {
			return fmt.Errorf("conflict check failed: %w", err)
		}
		if count > 0 {
			return ErrSlotTaken
		}
		update := bson.M{"$set": bson.M{
			"scheduled_at":     session.ScheduledAt,
			"duration_minutes": session.DurationMinutes,
			"ends_at":          session.EndsAt,
			"updated_at":       session.UpdatedAt,
		}}
		res, err := r.coll.UpdateOne(sc, bson.M{"id": session.ID, "status": models.SessionScheduled}, update)
		if err != nil {
			return fmt.Errorf("update session schedule failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return mongo.ErrNoDocuments
		}
		return nil
	})
}
