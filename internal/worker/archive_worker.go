package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/repository"
	"github.com/kingrain94/school-tenancy-api/internal/service/queue"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

// maxArchiveBatch caps how many events one archive object holds.
const maxArchiveBatch = 5000

var errNoArchiveProgress = errors.New("archive batch shares one timestamp; raise the batch size")

// ObjectStore is the subset of the S3 client the archive worker uses.
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ArchiveQueue consumes archive requests and can requeue the remainder of one.
type ArchiveQueue interface {
	MessageQueue
	SendArchiveMessage(ctx context.Context, beforeDate time.Time) error
}

// ArchiveWorker ships security events older than a cutoff to S3, then purges
// them from the directory database. Nothing is deleted before its upload
// succeeds.
type ArchiveWorker struct {
	*poller
	archiveQueue ArchiveQueue
	events       repository.SecurityEventRepository
	store        ObjectStore
	bucket       string
	batchSize    int
	now          func() time.Time
}

func NewArchiveWorker(
	q ArchiveQueue,
	queueURL string,
	events repository.SecurityEventRepository,
	store ObjectStore,
	bucket string,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
) *ArchiveWorker {
	w := &ArchiveWorker{
		poller:       newPoller("archive", q, queueURL, logger, workerCount, pollInterval),
		archiveQueue: q,
		events:       events,
		store:        store,
		bucket:       bucket,
		batchSize:    maxArchiveBatch,
		now:          time.Now,
	}
	w.handle = w.processMessage
	return w
}

func (w *ArchiveWorker) Start() { w.start() }

func (w *ArchiveWorker) Stop() { w.stop() }

func (w *ArchiveWorker) processMessage(ctx context.Context, msg queue.Message) error {
	if msg.Type != queue.MessageTypeArchive {
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
	if msg.BeforeDate.IsZero() {
		return fmt.Errorf("archive message without before_date")
	}

	events, err := w.events.ListBefore(ctx, msg.BeforeDate, w.batchSize)
	if err != nil {
		return fmt.Errorf("failed to fetch events for archival: %w", err)
	}
	if len(events) == 0 {
		w.logger.Infof("No security events to archive before %s", msg.BeforeDate.Format(time.RFC3339))
		return nil
	}

	// A full batch may leave older events behind. Purge only what is strictly
	// older than the newest archived event and requeue the same cutoff.
	cutoff := msg.BeforeDate
	partial := len(events) == w.batchSize
	if partial {
		cutoff = events[len(events)-1].OccurredAt
		if !cutoff.After(events[0].OccurredAt) {
			return errNoArchiveProgress
		}
	}

	key, err := w.upload(ctx, events, msg.BeforeDate)
	if err != nil {
		return err
	}

	deleted, err := w.events.DeleteBeforeDate(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete archived events: %w", err)
	}
	w.logger.Infof("Archived %d security events to s3://%s/%s and deleted %d", len(events), w.bucket, key, deleted)

	if partial {
		if err := w.archiveQueue.SendArchiveMessage(ctx, msg.BeforeDate); err != nil {
			return fmt.Errorf("failed to requeue archive remainder: %w", err)
		}
	}
	return nil
}

func (w *ArchiveWorker) upload(ctx context.Context, events []domain.SecurityEvent, beforeDate time.Time) (string, error) {
	archivedAt := w.now().UTC()
	key := fmt.Sprintf("security-events/before_%s/%s.json",
		beforeDate.UTC().Format("2006-01-02"),
		archivedAt.Format("20060102T150405.000000000"))

	body, err := json.MarshalIndent(map[string]interface{}{
		"before_date": beforeDate,
		"archived_at": archivedAt,
		"event_count": len(events),
		"events":      events,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal events to JSON: %w", err)
	}

	_, err = w.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"archived-at": archivedAt.Format(time.RFC3339),
			"event-count": strconv.Itoa(len(events)),
			"before-date": beforeDate.Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload archive to S3: %w", err)
	}
	return key, nil
}
