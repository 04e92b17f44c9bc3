package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"velour/config"
	"velour/services/booking"
	"velour/services/notification"
	"velour/services/payment"

	"github.com/hibiken/asynq"
)

// TypeBookingSweep is the periodic task that purges expired bookings.
const TypeBookingSweep = "booking:sweep"

// TypePaymentSweep is the periodic task that releases stale payment attempts.
const TypePaymentSweep = "payment:sweep"

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewQueueClient returns the asynq client handlers enqueue tasks on.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

// InitWorker runs the async worker in background. It processes queued emails
// and the periodic booking and payment sweeps.
func InitWorker(mailer notification.Mailer, bookingSvc booking.BookingService, payments payment.Orchestrator) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeEmailSend, handleEmailTask(mailer))
	mux.HandleFunc(TypeBookingSweep, handleSweepTask(bookingSvc))
	mux.HandleFunc(TypePaymentSweep, handlePaymentSweepTask(payments))

	go func() {
		log.Println("[Worker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] failed to start worker: %v", err)
		}
	}()
}

// InitScheduler registers the periodic sweep tasks. The interval comes from
// configuration and defaults to hourly.
func InitScheduler() {
	interval := config.AppConfig.SweepInterval
	if interval <= 0 {
		interval = time.Hour
	}

	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{
		Location: config.Location(),
	})
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeBookingSweep, nil)); err != nil {
		log.Fatalf("[Scheduler] failed to register booking sweep task: %v", err)
	}
	if _, err := scheduler.Register(spec, asynq.NewTask(TypePaymentSweep, nil)); err != nil {
		log.Fatalf("[Scheduler] failed to register payment sweep task: %v", err)
	}

	go func() {
		log.Printf("[Scheduler] sweeping expired bookings and stale payments %s", spec)
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[Scheduler] failed to start scheduler: %v", err)
		}
	}()
}

func handleEmailTask(mailer notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var msg notification.EmailMessage
		if err := json.Unmarshal(task.Payload(), &msg); err != nil {
			log.Printf("[EmailHandler] invalid payload: %v", err)
			return err
		}

		sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := mailer.Send(sendCtx, msg); err != nil {
			log.Printf("[EmailHandler] failed to send to %s: %v", msg.To, err)
			return err
		}
		return nil
	}
}

func handleSweepTask(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		_, err := bookingSvc.Sweep(ctx)
		return err
	}
}

func handlePaymentSweepTask(payments payment.Orchestrator) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		_, err := payments.ReleaseStale(ctx)
		return err
	}
}
