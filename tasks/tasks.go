package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wardrobeapi/models"
	"wardrobeapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	TypeOutfitWorn = "clothing:worn"
	TypeWearSweep  = "clothing:wear_sweep"
	DefaultQueue   = "default"

	// records younger than this may still have their task in flight
	sweepGrace = 10 * time.Minute
	sweepBatch = 200
)

type OutfitWornPayload struct {
	OutfitRecordID uint `json:"outfit_record_id"`
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

func NewOutfitWornTask(recordID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(OutfitWornPayload{OutfitRecordID: recordID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeOutfitWorn, payload), nil
}

func EnqueueOutfitWorn(enqueuer Enqueuer, recordID uint) (*asynq.TaskInfo, error) {
	task, err := NewOutfitWornTask(recordID)
	if err != nil {
		return nil, err
	}
	return enqueuer.Enqueue(task, asynq.MaxRetry(3), asynq.Queue(DefaultQueue))
}

func NewWearSweepTask() *asynq.Task {
	return asynq.NewTask(TypeWearSweep, nil)
}

// HandleOutfitWornTask applies the wear of one outfit record. Missing
// records and malformed payloads are not retried.
func HandleOutfitWornTask(ctx context.Context, t *asynq.Task, db *gorm.DB, logger zerolog.Logger) error {
	var p OutfitWornPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		services.WearTasksProcessed.WithLabelValues("bad_payload").Inc()
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	_, err := ApplyOutfitWear(ctx, db, p.OutfitRecordID, logger)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("outfit record %d: %w", p.OutfitRecordID, asynq.SkipRetry)
	}
	return err
}

// ApplyOutfitWear bumps wear count and last worn time of every clothing item
// of the record that still belongs to its owner. A record is applied at most
// once; the returned outcome is "applied" or "duplicate".
func ApplyOutfitWear(ctx context.Context, db *gorm.DB, recordID uint, logger zerolog.Logger) (string, error) {
	log := logger.With().Uint("outfit_record_id", recordID).Logger()

	outcome := "applied"
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.OutfitRecord
		if err := tx.First(&record, recordID).Error; err != nil {
			return err
		}
		if record.WearApplied {
			outcome = "duplicate"
			return nil
		}
		if len(record.ClothingIDs) > 0 {
			result := tx.Model(&models.Clothing{}).
				Where("id IN ? AND owner_id = ?", []uint(record.ClothingIDs), record.OwnerID).
				Updates(map[string]interface{}{
					"wear_count":   gorm.Expr("wear_count + ?", 1),
					"last_worn_at": record.WornAt,
				})
			if result.Error != nil {
				return result.Error
			}
			log.Info().Int64("clothes", result.RowsAffected).Msg("wear counts updated")
		}
		return tx.Model(&record).Update("wear_applied", true).Error
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		services.WearTasksProcessed.WithLabelValues("missing").Inc()
		log.Warn().Msg("outfit record not found")
		return "", err
	}
	if err != nil {
		services.WearTasksProcessed.WithLabelValues("failed").Inc()
		sentry.CaptureException(err)
		return "", fmt.Errorf("apply outfit record %d: %w", recordID, err)
	}
	services.WearTasksProcessed.WithLabelValues(outcome).Inc()
	return outcome, nil
}

// HandleWearSweepTask applies outfit records whose wear task never ran.
func HandleWearSweepTask(ctx context.Context, t *asynq.Task, db *gorm.DB, logger zerolog.Logger) error {
	return SweepPendingWear(ctx, db, time.Now().Add(-sweepGrace), logger)
}

func SweepPendingWear(ctx context.Context, db *gorm.DB, createdBefore time.Time, logger zerolog.Logger) error {
	var ids []uint
	err := db.WithContext(ctx).Model(&models.OutfitRecord{}).
		Where("wear_applied = ? AND created_at < ?", false, createdBefore).
		Order("id asc").Limit(sweepBatch).
		Pluck("id", &ids).Error
	if err != nil {
		return fmt.Errorf("list pending outfit records: %w", err)
	}
	var failed int
	for _, id := range ids {
		if _, err := ApplyOutfitWear(ctx, db, id, logger); err != nil {
			failed++
		}
	}
	logger.Info().Int("pending", len(ids)).Int("failed", failed).Msg("wear sweep done")
	if failed > 0 {
		return fmt.Errorf("wear sweep: %d of %d records failed", failed, len(ids))
	}
	return nil
}
