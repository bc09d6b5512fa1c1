package server

import (
	"hive-signal/domain"
	"hive-signal/errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

type createMessageRequest struct {
	PhoneNumber string `json:"phone_number"`
	Content     string `json:"content"`
}

func (h *Handler) CreateMessage(c echo.Context) error {
	var body createMessageRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: invalidBodyMessage})
	}

	// A rejected draft must not leave a freshly minted session behind
	carrier := newPendingCarrier(h.carrier(c))
	ownerID, err := h.resolver.Resolve(carrier)
	if err != nil {
		return h.renderError(c, err)
	}

	message, err := h.messages.Submit(c.Request().Context(), domain.MessageDraft{
		OwnerID:     ownerID,
		PhoneNumber: body.PhoneNumber,
		Content:     body.Content,
	})
	if err != nil {
		return h.renderError(c, err)
	}
	carrier.Commit()
	return c.JSON(http.StatusCreated, h.serialize(message))
}

// ListMessages answers an empty list to a caller without a session yet.
func (h *Handler) ListMessages(c echo.Context) error {
	ownerID, err := h.resolver.Peek(h.carrier(c))
	if errors.Is(err, errors.ErrNoIdentity) {
		return c.JSON(http.StatusOK, []map[string]any{})
	}
	if err != nil {
		return h.renderError(c, err)
	}

	messages, err := h.messages.List(ownerID)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(http.StatusOK, lo.Map(messages, func(m domain.Message, _ int) map[string]any {
		return h.serialize(m)
	}))
}

// serialize names the owner field after the scope, session_id or user_id.
func (h *Handler) serialize(m domain.Message) map[string]any {
	serialized := map[string]any{
		"id":           m.ID.String(),
		"phone_number": m.PhoneNumber,
		"content":      m.Content,
		"created_at":   m.CreatedAt.Format(time.RFC3339),
	}
	serialized[h.resolver.Mode().OwnerField()] = m.OwnerID
	return serialized
}
