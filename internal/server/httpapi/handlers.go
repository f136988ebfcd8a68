package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
	"github.com/labstack/echo/v4"
)

// User-facing result strings.
const (
	msgRegistered       = "Registration Success!"
	msgRegisterFailed   = "Registration Failure!"
	msgAlreadyLoggedIn  = "Already logged in!"
	msgLoginOK          = "Success!"
	msgBadCredentials   = "Incorrect username or password!"
	msgBadSecondFactor  = "Two-factor failure!"
	msgLoggedOut        = "Logged out"
	msgSpellCheckFailed = "spell check failed"
	msgNotFound         = "not found"
	msgInternal         = "internal error"
)

// htmlEntities undoes the quote escaping bluemonday applies to text so that
// apostrophes survive into the spell checker.
var htmlEntities = strings.NewReplacer("&#39;", "'", "&#34;", `"`)

// clean is applied to user names and submitted text. Secrets go to the
// core byte-exact since they are only ever hashed.
func (s *Server) clean(v string) string {
	return htmlEntities.Replace(s.sanitizer.Sanitize(v))
}

func (s *Server) home(c echo.Context) error {
	resp := homeResponse{}
	if tok, ok := c.Get(csrfContextKey).(string); ok {
		resp.CSRFToken = tok
	}
	if id, err := s.users.Resolve(c.Request().Context(), tokenFromRequest(c)); err == nil {
		resp.Authenticated = true
		resp.UserName = id.UserName
		resp.Role = string(id.Role)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, resultResponse{Result: msgRegisterFailed})
	}

	ctx := c.Request().Context()
	_, err := s.users.Register(ctx, tokenFromRequest(c), s.clean(req.UserName), req.Password, req.SecondFactor)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, resultResponse{Result: msgRegistered})
	case errors.Is(err, common.ErrAlreadyLoggedIn):
		return c.JSON(http.StatusOK, resultResponse{Result: msgAlreadyLoggedIn})
	case errors.Is(err, common.ErrAlreadyExists):
		return c.JSON(http.StatusOK, resultResponse{Result: msgRegisterFailed})
	case errors.Is(err, common.ErrValidation):
		return c.JSON(http.StatusBadRequest, resultResponse{Result: msgRegisterFailed})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
	}
}

func (s *Server) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, resultResponse{Result: msgBadCredentials})
	}

	ctx := c.Request().Context()
	res, err := s.users.Login(ctx, tokenFromRequest(c), s.clean(req.UserName), req.Password, req.SecondFactor)
	switch {
	case err == nil:
		setSessionCookie(c, res.Token, res.ExpiresAt)
		return c.JSON(http.StatusOK, resultResponse{
			Result:    msgLoginOK,
			Token:     res.Token,
			ExpiresAt: res.ExpiresAt.UTC().Format(time.RFC3339),
		})
	case errors.Is(err, common.ErrAlreadyLoggedIn):
		return c.JSON(http.StatusOK, resultResponse{Result: msgAlreadyLoggedIn})
	case errors.Is(err, common.ErrBadCredentials):
		return c.JSON(http.StatusOK, resultResponse{Result: msgBadCredentials})
	case errors.Is(err, common.ErrBadSecondFactor):
		return c.JSON(http.StatusOK, resultResponse{Result: msgBadSecondFactor})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
	}
}

func (s *Server) logout(c echo.Context) error {
	if err := s.users.Logout(c.Request().Context(), tokenFromRequest(c)); err != nil {
		s.logger.Error(c.Request().Context(), "logout error", "error", err)
	}
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, resultResponse{Result: msgLoggedOut})
}

func (s *Server) spellCheck(c echo.Context) error {
	var req spellCheckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	ctx := c.Request().Context()
	text := s.clean(req.InputText)
	rec, err := s.queries.Submit(ctx, tokenFromRequest(c), text)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, spellCheckResponse{
			ID:         rec.ID,
			TextOut:    rec.Text,
			Misspelled: strings.Join(rec.Misspelled, ", "),
		})
	case errors.Is(err, common.ErrNotAuthenticated):
		return c.Redirect(http.StatusFound, "/")
	case errors.Is(err, common.ErrCheckEngineFailure):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: msgSpellCheckFailed})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
	}
}

func (s *Server) history(c echo.Context) error {
	return s.renderHistory(c, s.clean(c.FormValue("userquery")))
}

func (s *Server) renderHistory(c echo.Context, target string) error {
	owner, list, err := s.queries.History(c.Request().Context(), tokenFromRequest(c), target)
	if err != nil {
		return s.protectedError(c, err)
	}

	resp := historyResponse{UserName: owner, Count: len(list), Queries: make([]queryItem, 0, len(list))}
	for _, q := range list {
		resp.Queries = append(resp.Queries, queryItem{
			ID:         q.ID,
			Text:       q.Text,
			Misspelled: strings.Join(q.Misspelled, ", "),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// query shows one record. Anything the caller may not see, including ids
// that do not exist or do not parse, falls back to the caller's own list.
func (s *Server) query(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return s.renderHistory(c, "")
	}

	rec, err := s.queries.Query(c.Request().Context(), tokenFromRequest(c), id)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, queryItem{
			ID:         rec.ID,
			UserName:   rec.UserName,
			Text:       rec.Text,
			Misspelled: strings.Join(rec.Misspelled, ", "),
		})
	case errors.Is(err, common.ErrNotAuthorized), errors.Is(err, common.ErrorNotFound):
		return s.renderHistory(c, "")
	default:
		return s.protectedError(c, err)
	}
}

func (s *Server) loginHistory(c echo.Context) error {
	owner, list, err := s.audit.LoginHistory(c.Request().Context(), tokenFromRequest(c), s.clean(c.FormValue("userid")))
	if err != nil {
		return s.protectedError(c, err)
	}

	resp := loginHistoryResponse{UserName: owner, Records: make([]loginItem, 0, len(list))}
	for _, r := range list {
		resp.Records = append(resp.Records, loginRecordItem(r))
	}
	return c.JSON(http.StatusOK, resp)
}

func loginRecordItem(r models.LoginRecord) loginItem {
	return loginItem{
		ID:     r.ID,
		Login:  r.LoginTime.UTC().Format(time.RFC3339),
		Logout: r.LogoutDisplay(),
	}
}

// protectedError renders failures of the history routes. Denial and
// absence look the same.
func (s *Server) protectedError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrNotAuthenticated):
		return c.Redirect(http.StatusFound, "/")
	case errors.Is(err, common.ErrNotAuthorized), errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: msgNotFound})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
	}
}
