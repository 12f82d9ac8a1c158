package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"community-board/internal/domain"
	gormpersistence "community-board/internal/infra/persistence/gorm"
	memorysession "community-board/internal/infra/session/memory"
	diskstore "community-board/internal/infra/storage/disk"
	"community-board/internal/middleware"
	"community-board/internal/service"
)

// testApp wires the real stack against an in-memory database and a temp
// upload directory, mirroring the production route table.
type testApp struct {
	router    *gin.Engine
	uploadDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.LostFoundPost{},
		&domain.Complaint{},
		&domain.HelpPost{},
		&domain.Comment{},
	))

	uploadDir := t.TempDir()
	fileStore, err := diskstore.NewDiskFileStore(uploadDir)
	require.NoError(t, err)

	authService, err := service.NewAuthService(
		gormpersistence.NewGormUserRepository(db),
		memorysession.NewMemorySessionRepository(),
		"test-secret", 1,
	)
	require.NoError(t, err)
	postService := service.NewPostService(
		gormpersistence.NewGormPostRepository(db),
		gormpersistence.NewGormCommentRepository(db),
		fileStore,
		service.NewUploadPolicy([]string{"png", "jpg", "jpeg", "gif", "webp"}, 5*1024*1024),
	)

	authHandler := NewAuthHandler(authService)
	postHandler := NewPostHandler(postService)
	gate := middleware.Auth(authService)

	router := gin.New()
	router.GET("/", authHandler.Entry)
	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)
	router.GET("/lostfound", postHandler.ListLostFound)
	router.GET("/complaint", postHandler.ListComplaints)
	router.GET("/help", postHandler.ListHelp)
	router.GET("/comments", postHandler.ListComments)
	router.POST("/lostfound", gate, postHandler.CreateLostFound)
	router.POST("/complaint", gate, postHandler.CreateComplaint)
	router.POST("/help", gate, postHandler.CreateHelp)
	router.POST("/comments", gate, postHandler.CreateComment)

	return &testApp{router: router, uploadDir: uploadDir}
}

// formFile describes an attached file for postForm.
type formFile struct {
	field    string
	filename string
	content  []byte
}

func (app *testApp) postForm(t *testing.T, path string, fields map[string]string, file *formFile, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if file != nil {
		part, err := writer.CreateFormFile(file.field, file.filename)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func (app *testApp) get(t *testing.T, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

// login registers an account and returns the session cookie.
func (app *testApp) login(t *testing.T, username string) *http.Cookie {
	t.Helper()
	w := app.postForm(t, "/signup", map[string]string{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
	}, nil, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	w = app.postForm(t, "/login", map[string]string{
		"username": username,
		"password": "secret123",
	}, nil, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAnonymousPostIsRedirectedToEntry(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm(t, "/lostfound", map[string]string{
		"name": "Alice", "category": "Hostel", "item": "Keys", "description": "Lost near gate",
	}, nil, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	listing := app.get(t, "/lostfound", nil)
	body := decodeBody(t, listing)
	assert.Empty(t, body["data"])
}

func TestSignupLoginPostListFlow(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t, "alice")

	w := app.postForm(t, "/lostfound", map[string]string{
		"name":        "Alice",
		"category":    "Hostel",
		"type":        "Lost",
		"item":        "Blue umbrella",
		"description": "Left in the common room",
	}, nil, []*http.Cookie{session})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lostfound", w.Header().Get("Location"))

	// Second post lands first in the listing.
	w = app.postForm(t, "/lostfound", map[string]string{
		"name": "Alice", "category": "School", "item": "Calculator", "description": "Found in lab",
	}, nil, []*http.Cookie{session})
	require.Equal(t, http.StatusSeeOther, w.Code)

	listing := app.get(t, "/lostfound", nil)
	require.Equal(t, http.StatusOK, listing.Code)
	body := decodeBody(t, listing)
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Calculator", first["item"])
	assert.Nil(t, first["image"])
}

func TestDuplicateSignupFlashesError(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "alice")

	w := app.postForm(t, "/signup", map[string]string{
		"username":         "alice",
		"email":            "other@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
	}, nil, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/signup", w.Header().Get("Location"))

	var flash *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == FlashCookieName {
			flash = cookie
		}
	}
	require.NotNil(t, flash, "failed signup must flash an error")
}

func TestLostFoundWithImageUpload(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t, "bob")

	w := app.postForm(t, "/lostfound", map[string]string{
		"name": "Bob", "category": "Office", "item": "Badge", "description": "With photo",
	}, &formFile{field: "image", filename: "badge photo.png", content: []byte("png-bytes")},
		[]*http.Cookie{session})
	require.Equal(t, http.StatusSeeOther, w.Code)

	listing := app.get(t, "/lostfound", nil)
	body := decodeBody(t, listing)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	stored, ok := data[0].(map[string]interface{})["image"].(string)
	require.True(t, ok, "post must carry the stored file name")
	assert.NotContains(t, stored, " ")

	content, err := os.ReadFile(filepath.Join(app.uploadDir, stored))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestRejectedUploadStillCreatesPost(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t, "carol")

	w := app.postForm(t, "/help", map[string]string{
		"name": "Carol", "message": "Sharing my setup script",
	}, &formFile{field: "share_file", filename: "setup.exe", content: []byte("MZ")},
		[]*http.Cookie{session})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/help", w.Header().Get("Location"))

	listing := app.get(t, "/help", nil)
	body := decodeBody(t, listing)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Nil(t, data[0].(map[string]interface{})["share_file"])

	// The rejected file never reaches the upload directory.
	entries, err := os.ReadDir(app.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCommentFlow(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t, "dave")

	w := app.postForm(t, "/complaint", map[string]string{
		"name": "Dave", "issue": "Broken streetlight",
	}, nil, []*http.Cookie{session})
	require.Equal(t, http.StatusSeeOther, w.Code)

	listing := app.get(t, "/complaint", nil)
	data := decodeBody(t, listing)["data"].([]interface{})
	require.Len(t, data, 1)
	postID := data[0].(map[string]interface{})["id"].(float64)

	w = app.postForm(t, "/comments", map[string]string{
		"post_id": fmt.Sprintf("%.0f", postID),
		"comment": "Reported to maintenance",
	}, nil, []*http.Cookie{session})
	require.Equal(t, http.StatusSeeOther, w.Code)

	comments := app.get(t, fmt.Sprintf("/comments?post_id=%.0f", postID), nil)
	require.Equal(t, http.StatusOK, comments.Code)
	got := decodeBody(t, comments)["data"].([]interface{})
	require.Len(t, got, 1)
	assert.Equal(t, "Reported to maintenance", got[0].(map[string]interface{})["comment"])
}

func TestInvalidCategoryFlashesAndCreatesNothing(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t, "erin")

	w := app.postForm(t, "/lostfound", map[string]string{
		"name": "Erin", "category": "Spaceship", "item": "Helmet", "description": "d",
	}, nil, []*http.Cookie{session})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lostfound", w.Header().Get("Location"))

	listing := app.get(t, "/lostfound", nil)
	assert.Empty(t, decodeBody(t, listing)["data"])
}

func TestLogoutInvalidatesSession(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t, "frank")

	w := app.get(t, "/logout", []*http.Cookie{session})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = app.postForm(t, "/help", map[string]string{
		"name": "Frank", "message": "Still here?",
	}, nil, []*http.Cookie{session})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestEntryReportsSessionState(t *testing.T) {
	app := newTestApp(t)

	w := app.get(t, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["authenticated"])

	session := app.login(t, "gina")
	w = app.get(t, "/", []*http.Cookie{session})
	body := decodeBody(t, w)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "gina", body["username"])
}
