package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/roamly/internal/security"
)

func TestRegister_Success(t *testing.T) {
	c, ds := newTestController(t)

	rec := request(t, c, http.MethodPost, "/register",
		`{"userName":"alice","email":"alice@example.com","password":"sufficiently-long"}`,
		c.Register)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body authResponse
	decodeJSON(t, rec, &body)
	assert.Equal(t, "alice", body.UserName)

	user, err := ds.GetUserByEmail("alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "sufficiently-long", user.PasswordHash, "password must be stored hashed")
	assert.True(t, security.VerifyPassword(user.PasswordHash, "sufficiently-long"))
}

func TestRegister_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"short user name", `{"userName":"al","email":"a@example.com","password":"long-enough-pw"}`},
		{"invalid email", `{"userName":"alice","email":"not-an-email","password":"long-enough-pw"}`},
		{"short password", `{"userName":"alice","email":"a@example.com","password":"short"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(t)

			rec := request(t, c, http.MethodPost, "/register", tt.body, c.Register)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	c, _ := newTestController(t)

	body := `{"userName":"alice","email":"alice@example.com","password":"sufficiently-long"}`
	first := request(t, c, http.MethodPost, "/register", body, c.Register)
	require.Equal(t, http.StatusCreated, first.Code)

	second := request(t, c, http.MethodPost, "/register", body, c.Register)
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestLogin_Success(t *testing.T) {
	c, _ := newTestController(t)
	registerTestUser(t, c)

	rec := request(t, c, http.MethodPost, "/login",
		`{"email":"alice@example.com","password":"sufficiently-long"}`,
		c.Login)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Result().Cookies(), "login must set a session cookie")
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	c, _ := newTestController(t)
	registerTestUser(t, c)

	wrongPassword := request(t, c, http.MethodPost, "/login",
		`{"email":"alice@example.com","password":"wrong-password"}`, c.Login)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)

	unknownEmail := request(t, c, http.MethodPost, "/login",
		`{"email":"nobody@example.com","password":"sufficiently-long"}`, c.Login)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)

	// Both failures must be indistinguishable to the client
	var a, b ErrorResponse
	decodeJSON(t, wrongPassword, &a)
	decodeJSON(t, unknownEmail, &b)
	assert.Equal(t, a.Message, b.Message)
}

func TestPostComment_RequiresSession(t *testing.T) {
	c, _ := newTestController(t)

	rec := request(t, c, http.MethodPost, "/comments",
		`{"placeId":"0","text":"Nice place"}`, c.PostComment)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPostComment_AttributedToSessionUser(t *testing.T) {
	c, ds := newTestController(t)
	cookies := signedInCookies(t, c, "alice")

	rec := request(t, c, http.MethodPost, "/comments",
		`{"placeId":"0","text":"Nice place"}`, c.PostComment,
		func(req *http.Request, ctx echo.Context) {
			for _, cookie := range cookies {
				req.AddCookie(cookie)
			}
		})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body commentResponse
	decodeJSON(t, rec, &body)
	assert.Equal(t, "alice", body.UserName)

	saved, err := ds.GetComments("0")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "alice", saved[0].UserName)
}

func TestPostComment_Validation(t *testing.T) {
	c, _ := newTestController(t)
	cookies := signedInCookies(t, c, "alice")

	withSession := func(req *http.Request, ctx echo.Context) {
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
	}

	missingText := request(t, c, http.MethodPost, "/comments",
		`{"placeId":"0","text":"  "}`, c.PostComment, withSession)
	assert.Equal(t, http.StatusBadRequest, missingText.Code)

	missingPlace := request(t, c, http.MethodPost, "/comments",
		`{"placeId":"","text":"hello"}`, c.PostComment, withSession)
	assert.Equal(t, http.StatusBadRequest, missingPlace.Code)
}

func TestGetComments_NewestFirst(t *testing.T) {
	c, ds := newTestController(t)
	cookies := signedInCookies(t, c, "alice")

	withSession := func(req *http.Request, ctx echo.Context) {
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
	}
	request(t, c, http.MethodPost, "/comments", `{"placeId":"0","text":"first"}`, c.PostComment, withSession)
	request(t, c, http.MethodPost, "/comments", `{"placeId":"0","text":"second"}`, c.PostComment, withSession)
	request(t, c, http.MethodPost, "/comments", `{"placeId":"1","text":"other place"}`, c.PostComment, withSession)

	require.Len(t, ds.comments, 3)

	rec := request(t, c, http.MethodGet, "/comments/0", "", c.GetComments,
		func(req *http.Request, ctx echo.Context) {
			ctx.SetParamNames("placeId")
			ctx.SetParamValues("0")
		})

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []commentResponse
	decodeJSON(t, rec, &body)
	require.Len(t, body, 2)
	assert.Equal(t, "second", body[0].Text)
	assert.Equal(t, "first", body[1].Text)
}

// registerTestUser creates the standard test account.
func registerTestUser(t *testing.T, c *Controller) {
	t.Helper()
	rec := request(t, c, http.MethodPost, "/register",
		`{"userName":"alice","email":"alice@example.com","password":"sufficiently-long"}`,
		c.Register)
	require.Equal(t, http.StatusCreated, rec.Code)
}

// signedInCookies returns session cookies for the given user.
func signedInCookies(t *testing.T, c *Controller, userName string) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	require.NoError(t, c.Sessions.SignIn(rec, req, userName))
	return rec.Result().Cookies()
}
