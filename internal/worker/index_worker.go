package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/kingrain94/school-tenancy-api/internal/repository"
	"github.com/kingrain94/school-tenancy-api/internal/service/queue"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

// IndexWorker copies recorded security events into OpenSearch.
type IndexWorker struct {
	*poller
	indexer repository.OpenSearchRepository
}

func NewIndexWorker(
	q MessageQueue,
	queueURL string,
	indexer repository.OpenSearchRepository,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
) *IndexWorker {
	w := &IndexWorker{
		poller:  newPoller("index", q, queueURL, logger, workerCount, pollInterval),
		indexer: indexer,
	}
	w.handle = w.processMessage
	return w
}

func (w *IndexWorker) Start() { w.start() }

func (w *IndexWorker) Stop() { w.stop() }

func (w *IndexWorker) processMessage(ctx context.Context, msg queue.Message) error {
	switch msg.Type {
	case queue.MessageTypeIndex:
		if len(msg.Events) != 1 {
			return fmt.Errorf("invalid number of events for INDEX message: %d", len(msg.Events))
		}
		return w.indexer.Index(ctx, &msg.Events[0])

	case queue.MessageTypeBulkIndex:
		if len(msg.Events) == 0 {
			return fmt.Errorf("empty events array for BULK_INDEX message")
		}
		return w.indexer.BulkIndex(ctx, msg.Events)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
