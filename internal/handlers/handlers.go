package handlers

import (
	"time"

	"github.com/justjobs360/fileconverter/internal/config"
	"github.com/justjobs360/fileconverter/internal/engine"
	"github.com/justjobs360/fileconverter/internal/router"
)

// Handlers carries the shared state for the HTTP surface.
type Handlers struct {
	cfg        *config.Config
	dispatcher *router.Dispatcher
	engine     *engine.Engine
	startTime  time.Time
}

// New builds the handler set. The engine may be nil when the deployment
// disables in-process media conversion.
func New(cfg *config.Config, dispatcher *router.Dispatcher, eng *engine.Engine) *Handlers {
	return &Handlers{
		cfg:        cfg,
		dispatcher: dispatcher,
		engine:     eng,
		startTime:  time.Now(),
	}
}
