package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/goverify/internal/notification"
	"github.com/shandysiswandi/goverify/internal/verification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.verification.enabled") {
		if err := verification.New(verification.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Storage:    a.storage,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			HMAC:       a.hmac,
			CodeGen:    a.codeGen,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module verification", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:         a.ctx,
			Messaging:   a.messaging,
			Idempotency: a.idemp,
			Config:      a.config,
			Instrument:  a.ins,
			UUID:        a.uuid,
			Clock:       a.clock,
			Goroutine:   a.goroutine,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
