package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body models.Project true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - All fields are required"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project models.Project
		if err := decodeBody(w, r, h.logger, "project", &project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if field := project.MissingField(); field != "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError(field))
			return
		}

		// IDs and timestamps are always assigned by the server
		project.ID = uuid.Nil
		project.CreatedAt = time.Time{}
		project.UpdatedAt = time.Time{}
		if err := h.projectRepo.Add(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.logger.Info().Str("projectId", project.ID.String()).Str("title", project.Title).Msg("Created project")
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// updateProject replaces every field of an existing project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body models.Project true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Verify project exists
		if _, err := h.projectRepo.FindByID(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		var project models.Project
		if err := decodeBody(w, r, h.logger, "project", &project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if field := project.MissingField(); field != "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError(field))
			return
		}

		// Ensure ID matches
		project.ID = projectID

		if err := h.projectRepo.Replace(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		updatedProject, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, updatedProject)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} messageResponse "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.logger.Info().Str("projectId", projectID.String()).Msg("Deleted project")
		h.responder.WriteMessage(w, "Project deleted successfully")
	}
}
