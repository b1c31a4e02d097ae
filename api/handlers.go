package api

import (
	"time"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
)

// Dependencies are the collaborators the HTTP layer is built on.
type Dependencies struct {
	Database database.Database
	Auth     *auth.Service
	Notifier services.FeedbackNotifier
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		projectHandler:      newProjectHandler(deps.Database.ProjectRepo()),
		feedbackHandler:     newFeedbackHandler(deps.Database.FeedbackRepo(), deps.Notifier),
		adminDetailsHandler: newAdminDetailsHandler(deps.Database.AdminDetailsRepo()),
		adminAuthHandler:    newAdminAuthHandler(deps.Auth),
		healthHandler:       newHealthHandler(deps.Database, startupTime),
	}
}
