package main

import (
	"context"
	"log"

	"wardrobeapi/dbhelper"
	"wardrobeapi/services"
	"wardrobeapi/tasks"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

func runScheduler(redis asynq.RedisClientOpt, logger zerolog.Logger) {
	scheduler := asynq.NewScheduler(redis, &asynq.SchedulerOpts{
		Logger:   services.AsynqLogger{Logger: logger},
		LogLevel: asynq.InfoLevel,
	})

	entries := []struct {
		cron string
		task *asynq.Task
		desc string
	}{
		{
			cron: "*/15 * * * *",
			task: tasks.NewWearSweepTask(),
			desc: "Apply outfit records whose wear task was lost",
		},
	}
	for _, t := range entries {
		entryID, err := scheduler.Register(t.cron, t.task, asynq.Queue(tasks.DefaultQueue))
		if err != nil {
			logger.Fatal().Err(err).Str("task", t.desc).Msg("failed to register scheduled task")
		}
		logger.Info().Str("task", t.desc).Str("entry_id", entryID).Str("cron", t.cron).Msg("registered scheduled task")
	}

	if err := scheduler.Run(); err != nil {
		logger.Fatal().Err(err).Msg("scheduler failed")
	}
}

func main() {
	logger := services.LoggerFromEnv().With().Str("process", "worker").Logger()
	redis := asynq.RedisClientOpt{Addr: services.GetEnv("ASYNC_BROKER_ADDRESS", "localhost:6379")}

	srv := asynq.NewServer(redis, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{tasks.DefaultQueue: 1},
		Logger:      services.AsynqLogger{Logger: logger},
	})

	db := dbhelper.SetupDB()
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeOutfitWorn, func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandleOutfitWornTask(ctx, t, db, logger)
	})
	mux.HandleFunc(tasks.TypeWearSweep, func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandleWearSweepTask(ctx, t, db, logger)
	})

	go runScheduler(redis, logger)
	if err := srv.Run(mux); err != nil {
		log.Fatal(err)
	}
}
