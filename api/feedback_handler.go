package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const notifyTimeout = 15 * time.Second

type feedbackHandler struct {
	responder    Responder
	logger       zerolog.Logger
	feedbackRepo *database.FeedbackRepo
	notifier     services.FeedbackNotifier
}

func newFeedbackHandler(feedbackRepo *database.FeedbackRepo, notifier services.FeedbackNotifier) feedbackHandler {
	logger := log.With().Str("handlerName", "feedbackHandler").Logger()
	if notifier == nil {
		notifier = services.NopNotifier{}
	}

	return feedbackHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		feedbackRepo: feedbackRepo,
		notifier:     notifier,
	}
}

// getAllFeedback lists every message, newest first
// @Summary Get all feedback
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Feedback "List of feedback"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /feedback [get]
func (h feedbackHandler) getAllFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feedback, err := h.feedbackRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "feedback", err))
			return
		}

		h.responder.WriteJSON(w, feedback)
	}
}

// createFeedback stores a visitor message and notifies the admin
// @Summary Leave feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param feedback body models.Feedback true "Feedback"
// @Success 201 {object} models.Feedback "Stored feedback"
// @Failure 400 {object} ErrorResponse "Bad Request - All fields are required"
// @Router /feedback [post]
func (h feedbackHandler) createFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var feedback models.Feedback
		if err := decodeBody(w, r, h.logger, "feedback", &feedback); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if field := feedback.MissingField(); field != "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError(field))
			return
		}

		// IDs and timestamps are always assigned by the server
		feedback.ID = uuid.Nil
		feedback.CreatedAt = time.Time{}
		if err := h.feedbackRepo.Add(r.Context(), &feedback); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "feedback", err))
			return
		}

		go h.notify(context.WithoutCancel(r.Context()), feedback)

		h.responder.WriteJSONStatus(w, http.StatusCreated, feedback)
	}
}

// deleteFeedback deletes a feedback message by ID
// @Summary Delete feedback
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param feedbackID path string true "Feedback ID" format(uuid)
// @Success 200 {object} messageResponse "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Feedback not found"
// @Router /feedback/{feedbackID} [delete]
func (h feedbackHandler) deleteFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feedbackID, err := uuidParam(r, "feedbackID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.feedbackRepo.Delete(r.Context(), feedbackID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "feedback", err))
			return
		}

		h.responder.WriteMessage(w, "Feedback deleted successfully")
	}
}

// notify is best effort: a failed notification never fails the request.
func (h feedbackHandler) notify(ctx context.Context, feedback models.Feedback) {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if err := h.notifier.NotifyFeedback(ctx, feedback); err != nil {
		h.logger.Warn().Err(err).Str("feedbackId", feedback.ID.String()).Msg("Failed to send feedback notification")
	}
}
