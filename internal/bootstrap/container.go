package bootstrap

import (
	"context"
	"time"

	"portfolio-be/internal/config"
	"portfolio-be/internal/controller"
	"portfolio-be/internal/pkg/logger"
	"portfolio-be/internal/pkg/mailer"
	"portfolio-be/internal/repository/contract"
	"portfolio-be/internal/repository/implementation"
	"portfolio-be/internal/repository/memory"
	"portfolio-be/internal/service"

	pktNats "portfolio-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const ContactEventsTopic = "contact_events"

type Container struct {
	// Controllers
	ContactController controller.IContactController
	SectionController controller.ISectionController
	SiteController    controller.ISiteController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

// Options lets tests swap the infrastructure the container would otherwise
// build from config.
type Options struct {
	Logger   logger.ILogger
	Mailer   mailer.IEmailService
	Throttle contract.ThrottleRepository
}

func NewContainer(cfg *config.Config) *Container {
	return NewContainerWithOptions(cfg, Options{})
}

func NewContainerWithOptions(cfg *config.Config, opts Options) *Container {
	c := &Container{}

	// 1. Core Facades
	sysLogger := opts.Logger
	eventsLogger := opts.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
		eventsLogger = logger.NewIsolatedLogger("logs/contact_events.log")
	}
	c.Logger = sysLogger

	emailService := opts.Mailer
	if emailService == nil {
		var err error
		emailService, err = mailer.NewEmailService(cfg, sysLogger)
		if err != nil {
			// An unknown provider still boots; every submission answers
			// "not configured" until the environment is fixed.
			sysLogger.Error("MAILER", "Falling back to Mailgun provider", map[string]interface{}{
				"error": err.Error(),
			})
			emailService = mailer.NewMailgunService(cfg.Mail, sysLogger)
		}
	}

	// 2. Infrastructure
	throttle := opts.Throttle
	if throttle == nil {
		throttle = c.newThrottle(cfg, sysLogger)
	}

	// NATS
	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("EVENTS", "Failed to connect to NATS, events stay in-process", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 3. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 4. Services
	contactService := service.NewContactService(
		emailService,
		throttle,
		service.ThrottleSettings{Limit: cfg.Throttle.Limit, Window: cfg.Throttle.Window},
		pubSub,
		ContactEventsTopic,
		sysLogger,
	)
	sectionService := service.NewSectionService()
	siteService := service.NewSiteService(cfg.Site.URL, cfg.IsProduction())

	c.ConsumerService = service.NewConsumerService(pubSub, ContactEventsTopic, forwarder, eventsLogger, sysLogger)

	// Surface missing credentials at boot instead of on the first visitor.
	_ = contactService.CheckReady()

	// 5. Controllers
	c.ContactController = controller.NewContactController(contactService)
	c.SectionController = controller.NewSectionController(sectionService)
	c.SiteController = controller.NewSiteController(siteService)

	return c
}

// newThrottle prefers Redis so limits hold across replicas and falls back to
// an in-process counter when Redis is absent or unreachable.
func (c *Container) newThrottle(cfg *config.Config, log logger.ILogger) contract.ThrottleRepository {
	if cfg.App.RedisURL == "" {
		return memory.NewThrottleRepository()
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("THROTTLE", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("THROTTLE", "Failed to connect to Redis, using in-memory throttle", map[string]interface{}{
			"error": err.Error(),
		})
		_ = rdb.Close()
		return memory.NewThrottleRepository()
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return implementation.NewThrottleRepository(rdb)
}

// Close releases the connections opened by NewContainer, newest first.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
