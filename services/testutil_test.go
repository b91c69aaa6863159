package services_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"tournament-portal/handlers"
	"tournament-portal/models"
	"tournament-portal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testKeySecret = "test_key_secret"

// fakeStorage records uploads instead of talking to R2. failAfter > 0 makes
// the n+1th upload fail, for exercising the rollback path.
type fakeStorage struct {
	mu        sync.Mutex
	uploads   []string
	deleted   []string
	failAfter int
}

func (f *fakeStorage) Upload(fh *multipart.FileHeader, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAfter > 0 && len(f.uploads) >= f.failAfter {
		return "", fmt.Errorf("storage unavailable")
	}
	f.uploads = append(f.uploads, key)
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

// fakeOrders stands in for the payment provider.
type fakeOrders struct {
	fail    bool
	created []string
}

func (f *fakeOrders) CreateOrder(amountPaise int64, receipt string) (*services.RazorpayOrder, error) {
	if f.fail {
		return nil, fmt.Errorf("provider unavailable")
	}
	id := fmt.Sprintf("order_test_%d", len(f.created)+1)
	f.created = append(f.created, id)
	return &services.RazorpayOrder{
		ID:       id,
		Amount:   amountPaise,
		Currency: "INR",
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	storage *fakeStorage
	orders  *fakeOrders
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Per-test in-memory database to avoid cross-test interference
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Tournament{},
		&models.Submission{},
		&models.SubmissionFile{},
		&models.Payment{},
		&models.Certificate{},
	))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	storage := &fakeStorage{}
	orders := &fakeOrders{}

	tournamentService := services.NewTournamentService(db, storage)
	submissionService := services.NewSubmissionService(db, storage)
	paymentService := services.NewPaymentService(db, orders, "rzp_test_key", testKeySecret)
	certificateService := services.NewCertificateService(db)
	userService := services.NewUserService(db)
	statsService := services.NewStatsService(db)

	app := fiber.New()
	handlers.SetupTournamentRoutes(app, tournamentService, submissionService)
	handlers.SetupSubmissionRoutes(app, submissionService)
	handlers.SetupPaymentRoutes(app, paymentService)
	handlers.SetupCertificateRoutes(app, certificateService)
	handlers.SetupUserRoutes(app, userService, statsService)

	return &testEnv{app: app, db: db, storage: storage, orders: orders}
}

func withUser(req *http.Request, userID string, roles ...string) *http.Request {
	req.Header.Set("X-User-ID", userID)
	req.Header.Set("X-User-Email", userID+"@example.com")
	if len(roles) > 0 {
		req.Header.Set("X-User-Roles", strings.Join(roles, ","))
	}
	return req
}

func (e *testEnv) doJSON(t *testing.T, method, path, userID string, body interface{}, roles ...string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		withUser(req, userID, roles...)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) doForm(t *testing.T, method, path, userID string, form url.Values, roles ...string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if userID != "" {
		withUser(req, userID, roles...)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type testFile struct {
	name string
	data []byte
}

// doMultipart sends form fields plus files under the "files" field.
// Files keep their slice order — the first one becomes the primary image.
func (e *testEnv) doMultipart(t *testing.T, method, path, userID string, fields map[string]string, files []testFile) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := w.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if userID != "" {
		withUser(req, userID)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// signPayment produces the signature the checkout widget would return.
func signPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
