package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kingrain94/school-tenancy-api/internal/service/queue"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

const (
	defaultMaxMessages int32 = 10
	// Long polling: wait up to 20 seconds for messages.
	defaultWaitTime int32 = 20
)

// MessageQueue is the consumer side of the SQS service.
type MessageQueue interface {
	ReceiveMessages(ctx context.Context, queueURL string, maxMessages int32, waitTimeSeconds int32) ([]queue.ReceivedMessage, error)
	DeleteMessage(ctx context.Context, queueURL string, receiptHandle *string) error
}

// poller runs workerCount goroutines that drain one queue. A message is
// deleted only after handle succeeds, so failures are redelivered by SQS.
type poller struct {
	name         string
	queue        MessageQueue
	queueURL     string
	handle       func(ctx context.Context, msg queue.Message) error
	logger       *logger.Logger
	workerCount  int
	pollInterval time.Duration
	maxMessages  int32
	waitTime     int32

	ctx       context.Context
	cancel    context.CancelFunc
	waitGroup sync.WaitGroup
}

func newPoller(name string, q MessageQueue, queueURL string, logger *logger.Logger, workerCount int, pollInterval time.Duration) *poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &poller{
		name:         name,
		queue:        q,
		queueURL:     queueURL,
		logger:       logger.Named(name),
		workerCount:  workerCount,
		pollInterval: pollInterval,
		maxMessages:  defaultMaxMessages,
		waitTime:     defaultWaitTime,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (p *poller) start() {
	p.logger.Infof("Starting %d %s workers on %s", p.workerCount, p.name, p.queueURL)
	for i := 0; i < p.workerCount; i++ {
		p.waitGroup.Add(1)
		go p.runWorker(i)
	}
}

// stop cancels in-flight polls and waits for every worker to return.
func (p *poller) stop() {
	p.logger.Infof("Stopping %s workers...", p.name)
	p.cancel()
	p.waitGroup.Wait()
	p.logger.Infof("All %s workers stopped", p.name)
}

func (p *poller) runWorker(workerID int) {
	defer p.waitGroup.Done()

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			p.logger.Infof("Worker %d shutting down", workerID)
			return
		case <-ticker.C:
			if err := p.processMessages(p.ctx); err != nil && p.ctx.Err() == nil {
				p.logger.Errorf("Worker %d failed to process messages: %v", workerID, err)
			}
		}
	}
}

func (p *poller) processMessages(ctx context.Context) error {
	messages, err := p.queue.ReceiveMessages(ctx, p.queueURL, p.maxMessages, p.waitTime)
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, msg := range messages {
		if err := p.handle(ctx, msg.Message); err != nil {
			p.logger.Errorf("Failed to process %s message: %v", msg.Message.Type, err)
			continue
		}

		if err := p.queue.DeleteMessage(ctx, p.queueURL, msg.ReceiptHandle); err != nil {
			p.logger.Errorf("Failed to delete message: %v", err)
		}
	}
	return nil
}
