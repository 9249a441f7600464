package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zeeddd0107/GymPlify-sub000/internal/logger"
	"github.com/zeeddd0107/GymPlify-sub000/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "notifications"
	failedQueueKey = "notifications:failed"
)

// Service queues notification jobs in redis and delivers them to the
// notifications table from a background worker, so a slow or failing write
// never blocks the request path.
type Service struct {
	redis *redis.Client
	repo  Repository
}

func New(redisAddr string, repo Repository) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		repo: repo,
	}
}

func (s *Service) Enqueue(ctx context.Context, userID int, ntype, title, message string) error {
	job := Job{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
		Tries:   0,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal notification job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue notification for user %d: %v", userID, err)
		metrics.RecordNotification(ntype, "queue_error")
		return err
	}

	metrics.RecordNotification(ntype, "queued")
	logger.Infof("Notification queued: %s for user %d", ntype, userID)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Notification dispatcher started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification dispatcher stopped")
			return
		default:
			s.processNext(ctx)
			s.QueueLength(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notification data: %v", err)
		return
	}

	job.Tries++
	if _, err := s.repo.Insert(ctx, job.UserID, job.Type, job.Title, job.Message); err != nil {
		logger.Errorf("Failed to deliver notification to user %d: %v", job.UserID, err)

		if job.Tries < 3 {
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			return
		}

		s.saveFailed(job, err)
		metrics.RecordNotification(job.Type, "failed")
		return
	}

	metrics.RecordNotification(job.Type, "delivered")
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Notification moved to failed queue: user %d", job.UserID)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.NotificationQueueLength.Set(float64(length))
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) NotifySessionBooked(ctx context.Context, userID int, timeSlot string, when time.Time) error {
	message := fmt.Sprintf("Your gym session on %s (%s) is confirmed. See you there!",
		when.Format("Jan 2, 2006"), timeSlot)
	return s.Enqueue(ctx, userID, TypeSessionBooked, "Session Booked", message)
}

func (s *Service) NotifyRequestPending(ctx context.Context, adminID int, memberName, plan string) error {
	message := fmt.Sprintf("%s requested a %s subscription and is waiting for review.", memberName, plan)
	return s.Enqueue(ctx, adminID, TypeRequestPending, "New Subscription Request", message)
}

func (s *Service) NotifyRequestDecision(ctx context.Context, userID int, plan, decision string) error {
	message := fmt.Sprintf("Your %s subscription request was %s.", plan, decision)
	return s.Enqueue(ctx, userID, TypeRequestDecision, "Subscription Request Update", message)
}
