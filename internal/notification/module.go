package notification

import (
	"context"

	"github.com/shandysiswandi/goverify/internal/notification/inbound"
	"github.com/shandysiswandi/goverify/internal/notification/outbound/sms"
	"github.com/shandysiswandi/goverify/internal/notification/usecase"
	"github.com/shandysiswandi/goverify/internal/pkg/clock"
	"github.com/shandysiswandi/goverify/internal/pkg/config"
	"github.com/shandysiswandi/goverify/internal/pkg/goroutine"
	"github.com/shandysiswandi/goverify/internal/pkg/idempotency"
	"github.com/shandysiswandi/goverify/internal/pkg/instrument"
	"github.com/shandysiswandi/goverify/internal/pkg/messaging"
	"github.com/shandysiswandi/goverify/internal/pkg/uid"
	"github.com/shandysiswandi/goverify/internal/pkg/validator"
)

type Dependency struct {
	Ctx         context.Context
	Messaging   messaging.Messaging
	Idempotency idempotency.Idempotency
	Config      config.Config
	Instrument  instrument.Instrumentation
	UUID        uid.StringID
	Clock       clock.Clocker
	Goroutine   *goroutine.Manager
	Validator   validator.Validator
}

func New(dep Dependency) error {
	repoSMS := sms.New(sms.Config{
		BaseURL:     dep.Config.GetString("modules.notification.sms.base_url"),
		APIKey:      dep.Config.GetString("modules.notification.sms.api_key"),
		SenderID:    dep.Config.GetString("modules.notification.sms.sender_id"),
		Timeout:     dep.Config.GetSecond("modules.notification.sms.timeout_seconds"),
		MaxRetries:  uint64(dep.Config.GetInt("modules.notification.sms.max_retries")),
		BaseBackoff: dep.Config.GetSecond("modules.notification.sms.base_backoff_seconds"),
	}, dep.Instrument)

	uc := usecase.NewNotification(usecase.Dependency{
		RepoSMS:     repoSMS,
		Idempotency: dep.Idempotency,
		Config:      dep.Config,
		Clock:       dep.Clock,
		Validator:   dep.Validator,
		Instrument:  dep.Instrument,
	})

	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
