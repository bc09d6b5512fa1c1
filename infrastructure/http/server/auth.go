package server

import (
	"hive-signal/domain"
	"hive-signal/errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type userEnvelope struct {
	User userResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func envelope(account domain.Account) userEnvelope {
	return userEnvelope{User: userResponse{ID: account.ID, Username: account.Username}}
}

// Register creates the account and signs it in.
func (h *Handler) Register(c echo.Context) error {
	var body credentialsRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: invalidBodyMessage})
	}
	account, err := h.accounts.Register(body.Username, body.Password)
	if err != nil {
		return h.renderError(c, err)
	}
	if err := h.sessions.SignIn(h.carrier(c), account.ID); err != nil {
		return h.renderError(c, err)
	}
	h.log.Info("Account registered", "id", account.ID)
	return c.JSON(http.StatusCreated, envelope(account))
}

// Login answers 401 for blank, unknown and wrong credentials alike.
func (h *Handler) Login(c echo.Context) error {
	var body credentialsRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: invalidBodyMessage})
	}
	account, err := h.accounts.Login(body.Username, body.Password)
	if errors.Is(err, errors.ErrValidation) {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: errors.ErrInvalidCredentials.Error()})
	}
	if err != nil {
		return h.renderError(c, err)
	}
	if err := h.sessions.SignIn(h.carrier(c), account.ID); err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(http.StatusOK, envelope(account))
}

func (h *Handler) Logout(c echo.Context) error {
	carrier := h.carrier(c)
	if _, err := h.sessions.Peek(carrier); err != nil {
		return h.renderError(c, err)
	}
	h.sessions.SignOut(carrier)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out successfully"})
}

func (h *Handler) CurrentUser(c echo.Context) error {
	accountID, err := h.sessions.Peek(h.carrier(c))
	if err != nil {
		return h.renderError(c, err)
	}
	account, err := h.accounts.CurrentUser(accountID)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(http.StatusOK, envelope(account))
}
