package cmd

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"orderdesk/internal/adapters/out/eventlog"
	"orderdesk/internal/adapters/out/kafka"
	"orderdesk/internal/adapters/out/memstore"
	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config   Config
	logger   *slog.Logger
	policy   order.TransitionPolicy
	location *time.Location

	store          ports.OrderStore
	eventLog       *eventlog.Log
	kafkaPublisher *kafka.Publisher
	publisher      ports.StatusChangePublisher
}

// NewCompositionRoot wires the object graph once at startup. The order store
// is in-memory by default; ORDER_STORE=postgres switches to the durable
// adapter on the supplied gorm DB. The Kafka publisher is optional: without a
// configured broker, status changes only feed the in-process activity log.
func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	location := time.Local
	if config.VendorTimezone != "" {
		loaded, err := time.LoadLocation(config.VendorTimezone)
		if err != nil {
			logger.Warn("Unknown vendor timezone, falling back to local",
				"timezone", config.VendorTimezone, "error", err)
		} else {
			location = loaded
		}
	}

	var store ports.OrderStore
	if strings.EqualFold(config.OrderStore, "postgres") {
		store = orderrepo.NewGormOrderRepository(gormDB)
	} else {
		store = memstore.NewStore()
	}

	log := eventlog.NewLog(eventlog.DefaultCapacity)
	publishers := []ports.StatusChangePublisher{log}

	var kafkaPublisher *kafka.Publisher
	if config.KafkaHost != "" {
		created, err := kafka.NewPublisher(
			strings.Split(config.KafkaHost, ","),
			config.KafkaStatusChangedTopic,
			logger,
		)
		if err != nil {
			logger.Error("Kafka publisher unavailable, continuing without it", "error", err)
		} else {
			kafkaPublisher = created
			publishers = append(publishers, created)
		}
	}

	return CompositionRoot{
		config:         config,
		logger:         logger,
		policy:         order.DefaultTransitionPolicy(),
		location:       location,
		store:          store,
		eventLog:       log,
		kafkaPublisher: kafkaPublisher,
		publisher:      multiPublisher(publishers),
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) Location() *time.Location {
	return c.location
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.store, c.policy, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAttachTrackingCommandHandler() commands.AttachTrackingCommandHandler {
	return commands.NewAttachTrackingCommandHandler(c.store)
}

func (c *CompositionRoot) CreateBulkChangeStatusCommandHandler() commands.BulkChangeStatusCommandHandler {
	return commands.NewBulkChangeStatusCommandHandler(
		c.store, c.policy, c.publisher, c.bulkConfig(), c.logger)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.store)
}

func (c *CompositionRoot) CreateOrderStatisticsQueryHandler() queries.OrderStatisticsQueryHandler {
	return queries.NewOrderStatisticsQueryHandler(c.store)
}

func (c *CompositionRoot) CreateActivityFeedQueryHandler() queries.ActivityFeedQueryHandler {
	return queries.NewActivityFeedQueryHandler(c.eventLog)
}

func (c *CompositionRoot) CreateExportOrdersQueryHandler() queries.ExportOrdersQueryHandler {
	return queries.NewExportOrdersQueryHandler(c.CreateListOrdersQueryHandler())
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateOrderStatisticsQueryHandler(), c.location, c.logger)
}

// Close releases external connections held by the graph.
func (c *CompositionRoot) Close() {
	if c.kafkaPublisher != nil {
		if err := c.kafkaPublisher.Close(); err != nil {
			c.logger.Error("Failed to close Kafka publisher", "error", err)
		}
	}
}

// bulkConfig parses the bulk tuning knobs; malformed or absent values fall
// back to the handler defaults.
func (c *CompositionRoot) bulkConfig() commands.BulkConfig {
	config := commands.BulkConfig{}
	if c.config.BulkConcurrency != "" {
		if parsed, err := strconv.Atoi(c.config.BulkConcurrency); err == nil {
			config.Concurrency = parsed
		}
	}
	if c.config.BulkItemTimeout != "" {
		if parsed, err := time.ParseDuration(c.config.BulkItemTimeout); err == nil {
			config.ItemTimeout = parsed
		}
	}
	return config
}

// multiPublisher fans one status-change event out to every configured sink.
// Sink errors do not short-circuit the remaining sinks; the first error is
// returned for logging by the caller.
type multiPublisher []ports.StatusChangePublisher

func (m multiPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	var firstErr error
	for _, publisher := range m {
		if err := publisher.PublishStatusChanged(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
