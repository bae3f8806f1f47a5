package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formintake/handler"
	"github.com/dmitrymomot/formintake/internal/cooldown"
	"github.com/dmitrymomot/formintake/internal/httpapi"
	"github.com/dmitrymomot/formintake/internal/notify"
	"github.com/dmitrymomot/formintake/internal/submission"
	"github.com/dmitrymomot/formintake/internal/upload"
	"github.com/dmitrymomot/formintake/pkg/cookie"
	"github.com/dmitrymomot/formintake/pkg/email"
	"github.com/dmitrymomot/formintake/pkg/file"
	"github.com/dmitrymomot/formintake/pkg/session"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type memStore struct {
	mu   sync.Mutex
	rows map[submission.FormType][][]any
}

func (s *memStore) Insert(_ context.Context, desc submission.Descriptor, values []any) (submission.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rows == nil {
		s.rows = map[submission.FormType][][]any{}
	}
	s.rows[desc.Type] = append(s.rows[desc.Type], values)
	return submission.Record{Form: desc.Type, ID: int64(len(s.rows[desc.Type])), Values: values, SubmittedAt: time.Now()}, nil
}

func (s *memStore) Rows(form submission.FormType) [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[form]
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
	err  error
}

func (m *recordingMailer) SendEmail(_ context.Context, p email.SendEmailParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, p)
	return nil
}

func (m *recordingMailer) Sent() []email.SendEmailParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]email.SendEmailParams(nil), m.sent...)
}

type env struct {
	server    *httptest.Server
	client    *http.Client
	store     *memStore
	mailer    *recordingMailer
	clock     *clock
	uploadDir string
}

func newEnv(t *testing.T) *env {
	t.Helper()

	cookies, err := cookie.New([]string{strings.Repeat("s", 32)})
	require.NoError(t, err)

	sessions := session.New(
		session.WithCookieManager(cookies),
		session.WithStore(session.NewMemoryStore(0)),
	)
	t.Cleanup(func() { _ = sessions.Close() })

	e := &env{
		store:     &memStore{},
		mailer:    &recordingMailer{},
		clock:     &clock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		uploadDir: t.TempDir(),
	}

	storage, err := file.NewLocalStorage(e.uploadDir, "/uploads/")
	require.NoError(t, err)

	limiter := cooldown.New(
		cooldown.NewSessionState(sessions, cooldown.DefaultSessionKey),
		cooldown.Config{Cooldown: time.Minute},
		cooldown.WithClock(e.clock.Now),
	)
	notifier := notify.New(e.mailer, notify.Config{
		SiteName:   "Chef Master Africa",
		AdminEmail: "admin@example.com",
	})
	pipeline := submission.New(limiter, upload.New(storage), e.store, notifier)

	router := httpapi.NewRouter(httpapi.Options{
		Pipeline:      pipeline,
		Session:       sessions.EnsureSession,
		Cooldown:      limiter,
		Uploads:       http.Dir(e.uploadDir),
		UploadsPrefix: "/uploads/",
	})

	e.server = httptest.NewServer(router)
	t.Cleanup(e.server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	e.client = &http.Client{Jar: jar}

	return e
}

func (e *env) postForm(t *testing.T, path string, values url.Values) (int, map[string]any) {
	t.Helper()
	resp, err := e.client.PostForm(e.server.URL+path, values)
	require.NoError(t, err)
	return decode(t, resp)
}

func (e *env) post(t *testing.T, path, contentType string, body io.Reader) (int, map[string]any) {
	t.Helper()
	resp, err := e.client.Post(e.server.URL+path, contentType, body)
	require.NoError(t, err)
	return decode(t, resp)
}

func decode(t *testing.T, resp *http.Response) (int, map[string]any) {
	t.Helper()
	defer resp.Body.Close()
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func contactValues() url.Values {
	return url.Values{
		"fullName": {"Ada Lovelace"},
		"email":    {"ada@example.com"},
		"phone":    {"+234 800 000 0000"},
		"message":  {"Hello\nthere"},
		"botField": {""},
	}
}

type part struct {
	field, filename, contentType string
	size                         int
	content                      []byte
}

func multipartBody(t *testing.T, fields map[string]string, parts ...part) (string, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.filename))
		h.Set("Content-Type", p.contentType)
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		content := p.content
		if content == nil {
			content = bytes.Repeat([]byte{0xAB}, p.size)
		}
		_, err = pw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return w.FormDataContentType(), &buf
}

func applicationFields() map[string]string {
	return map[string]string{
		"fullName":       "Ada Lovelace",
		"email":          "ada@example.com",
		"phone":          "123",
		"signature_dish": "Jollof rice",
	}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestContact_Success(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	status, body := e.postForm(t, "/contact", contactValues())

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, submission.MsgSuccess, body["message"])

	rows := e.store.Rows(submission.Contact)
	require.Len(t, rows, 1)
	assert.Equal(t, []any{"Ada Lovelace", "ada@example.com", "+234 800 000 0000", "Hello\nthere"}, rows[0])

	sent := e.mailer.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "admin@example.com", sent[0].SendTo)
	assert.Equal(t, "ada@example.com", sent[1].SendTo)
}

func TestContact_JSONBody(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	status, body := e.post(t, "/api/forms/contact", "application/json",
		strings.NewReader(`{"fullName":"Ada","email":"ada@example.com","phone":"1","message":"hi"}`))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, submission.MsgSuccess, body["message"])
	assert.Len(t, e.store.Rows(submission.Contact), 1)
}

func TestContact_Cooldown(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	status, _ := e.postForm(t, "/contact", contactValues())
	require.Equal(t, http.StatusOK, status)

	status, body := e.postForm(t, "/contact", contactValues())
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, submission.MsgRateLimited, body["message"])
	assert.Len(t, e.store.Rows(submission.Contact), 1)

	e.clock.Advance(61 * time.Second)

	status, _ = e.postForm(t, "/contact", contactValues())
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, e.store.Rows(submission.Contact), 2)
}

func TestContact_CooldownSharedAcrossForms(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	status, _ := e.postForm(t, "/contact", contactValues())
	require.Equal(t, http.StatusOK, status)

	ct, buf := multipartBody(t, applicationFields())
	status, _ = e.post(t, "/application", ct, buf)
	assert.Equal(t, http.StatusTooManyRequests, status)
}

func TestContact_Honeypot(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	values := contactValues()
	values.Set("botField", "http://spam.example")

	status, body := e.postForm(t, "/contact", values)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, submission.MsgSpamDetected, body["message"])
	assert.Empty(t, e.store.Rows(submission.Contact))
	assert.Empty(t, e.mailer.Sent())
}

func TestContact_HoneypotNotAString(t *testing.T) {
	t.Parallel()

	t.Run("json list", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)

		status, body := e.post(t, "/contact", "application/json",
			strings.NewReader(`{"fullName":"Ada","email":"ada@example.com","phone":"123","message":"hi","botField":["spam"]}`))
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, submission.MsgSpamDetected, body["message"])
		assert.Empty(t, e.store.Rows(submission.Contact))
	})

	t.Run("form array", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)

		values := contactValues()
		values.Del("botField")
		values.Set("botField[]", "x")

		status, body := e.postForm(t, "/contact", values)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, submission.MsgSpamDetected, body["message"])
		assert.Empty(t, e.mailer.Sent())
	})
}

func TestContact_ValidationErrors(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	values := contactValues()
	values.Del("message")
	values.Set("email", "nope")

	status, body := e.postForm(t, "/contact", values)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]any{
		"message": submission.MsgMessageRequired,
		"email":   submission.MsgEmailMalformed,
	}, body["errors"])
	assert.Empty(t, e.store.Rows(submission.Contact))

	// a rejected attempt does not start the cooldown
	status, _ = e.postForm(t, "/contact", contactValues())
	assert.Equal(t, http.StatusOK, status)
}

func TestContact_MailerFailureKeepsRecord(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.mailer.err = errors.New("smtp: 535 authentication failed")

	status, body := e.postForm(t, "/contact", contactValues())
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, submission.MsgMailerFailed, body["message"])
	assert.Len(t, e.store.Rows(submission.Contact), 1)
}

func TestContact_CooldownBeforeBody(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	status, _ := e.postForm(t, "/contact", contactValues())
	require.Equal(t, http.StatusOK, status)

	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
	}{
		{"malformed json", "/contact", "application/json", `{"fullName":`},
		{"unsupported type", "/api/forms/contact", "text/plain", "hello"},
		{"truncated multipart", "/application", "multipart/form-data; boundary=x", "--x\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := e.post(t, tt.path, tt.contentType, strings.NewReader(tt.body))
			assert.Equal(t, http.StatusTooManyRequests, status)
			assert.Equal(t, submission.MsgRateLimited, body["message"])
		})
	}
}

func TestInvalidBody(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	status, body := e.post(t, "/contact", "application/json", strings.NewReader(`{"fullName":`))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, handler.ErrBadRequest.Key, body["message"])
}

func TestNotFound(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"wrong method", http.MethodGet, "/contact"},
		{"wrong method under api", http.MethodPut, "/api/forms/application"},
		{"unknown path", http.MethodPost, "/newsletter"},
		{"upload listing", http.MethodGet, "/uploads/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, e.server.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := e.client.Do(req)
			require.NoError(t, err)

			status, body := decode(t, resp)
			assert.Equal(t, http.StatusNotFound, status)
			assert.Equal(t, "Page not found.", body["message"])
		})
	}
}

func TestApplication_Success(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	ct, buf := multipartBody(t, applicationFields(),
		part{submission.PassportImage, "me.png", "image/png", 128},
		part{submission.SignatureImage, "sig.jpg", "image/jpeg", 64},
	)

	status, body := e.post(t, "/application", ct, buf)
	require.Equal(t, http.StatusOK, status, body)

	rows := e.store.Rows(submission.Application)
	require.Len(t, rows, 1)
	passportURL, ok := rows[0][20].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(passportURL, e.server.URL+"/uploads/passport_image_"), passportURL)
	assert.True(t, strings.HasSuffix(passportURL, ".png"))
	assert.Equal(t, 2, countFiles(t, e.uploadDir))

	resp, err := e.client.Get(passportURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Len(t, data, 128)

	sent := e.mailer.Sent()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0].BodyHTML, passportURL)
}

func TestApplication_UploadServedAsImage(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	ct, buf := multipartBody(t, applicationFields(), part{
		field:       submission.PassportImage,
		filename:    "x.html",
		contentType: "image/png",
		content:     []byte("<script>alert(document.cookie)</script>"),
	})
	status, body := e.post(t, "/application", ct, buf)
	require.Equal(t, http.StatusOK, status, body)

	rows := e.store.Rows(submission.Application)
	require.Len(t, rows, 1)
	storedURL, ok := rows[0][20].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(storedURL, ".png"), storedURL)

	resp, err := e.client.Get(storedURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestApplication_RejectedUploads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		part    part
		message string
	}{
		{
			name:    "gif",
			part:    part{submission.PassportImage, "me.gif", "image/gif", 32},
			message: "Passport image must be a JPG or PNG image.",
		},
		{
			name:    "six megabytes",
			part:    part{submission.SignatureImage, "sig.png", "image/png", 6 << 20},
			message: "Signature image must not exceed 5MB.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newEnv(t)

			ct, buf := multipartBody(t, applicationFields(), tt.part)
			status, body := e.post(t, "/application", ct, buf)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.message, body["message"])
			assert.Empty(t, e.store.Rows(submission.Application))
			assert.Zero(t, countFiles(t, e.uploadDir))
			assert.Empty(t, e.mailer.Sent())
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	resp, err := e.client.Get(e.server.URL + "/health/live")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
