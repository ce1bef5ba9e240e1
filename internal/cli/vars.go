package cli

import (
	"github.com/valter-silva-au/tasktrack/internal/observability"
	"github.com/valter-silva-au/tasktrack/internal/session"
	"github.com/valter-silva-au/tasktrack/internal/storage"
	"github.com/valter-silva-au/tasktrack/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath string
	Config   *models.Config
	Store    storage.TaskStore
	Catalog  *session.Catalog
)

// Observability service instances. Both are nil when the event log is
// disabled.
var (
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)
