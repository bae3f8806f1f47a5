package submission_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formintake/internal/submission"
)

type fakeCooldown struct {
	limited  bool
	recorded int
}

func (c *fakeCooldown) Check(context.Context) error {
	if c.limited {
		return submission.RateLimited()
	}
	return nil
}

func (c *fakeCooldown) Record(context.Context) error {
	c.recorded++
	return nil
}

type fakeUploads struct {
	mu       sync.Mutex
	checkErr map[string]error
	placeErr map[string]error
	placed   []submission.Asset
	removed  []submission.Asset
}

func (u *fakeUploads) Check(field string, _ *multipart.FileHeader) error {
	return u.checkErr[field]
}

func (u *fakeUploads) Place(_ context.Context, field string, _ *multipart.FileHeader, origin string) (submission.Asset, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err := u.placeErr[field]; err != nil {
		return submission.Asset{}, err
	}
	a := submission.Asset{Field: field, Filename: field + ".png", Path: field + ".png", URL: origin + "/uploads/" + field + ".png"}
	u.placed = append(u.placed, a)
	return a, nil
}

func (u *fakeUploads) Remove(_ context.Context, a submission.Asset) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.removed = append(u.removed, a)
	return nil
}

type fakeStore struct {
	err  error
	rows [][]any
}

func (s *fakeStore) Insert(_ context.Context, desc submission.Descriptor, values []any) (submission.Record, error) {
	if s.err != nil {
		return submission.Record{}, s.err
	}
	s.rows = append(s.rows, values)
	return submission.Record{Form: desc.Type, ID: int64(len(s.rows)), Values: values, SubmittedAt: time.Now()}, nil
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendBoth(ctx context.Context, sub submission.Submission) error {
	return m.Called(ctx, sub).Error(0)
}

type deps struct {
	cooldown *fakeCooldown
	uploads  *fakeUploads
	store    *fakeStore
	notifier *mockNotifier
}

func newPipeline(t *testing.T) (*submission.Pipeline, *deps) {
	t.Helper()
	d := &deps{
		cooldown: &fakeCooldown{},
		uploads:  &fakeUploads{},
		store:    &fakeStore{},
		notifier: &mockNotifier{},
	}
	return submission.New(d.cooldown, d.uploads, d.store, d.notifier), d
}

func contactRequest() submission.Request {
	return submission.Request{
		Form: submission.ContactForm,
		Fields: map[string]any{
			"fullName": "Ada",
			"email":    "ada@example.com",
			"phone":    "123",
			"message":  "hi",
			"botField": "",
		},
	}
}

func image(name, contentType string) *multipart.FileHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{Filename: name, Header: h, Size: 10}
}

func applicationRequest() submission.Request {
	return submission.Request{
		Form: submission.ApplicationForm,
		Fields: map[string]any{
			"fullName": "Ada",
			"email":    "ada@example.com",
			"phone":    "123",
		},
		Files: map[string]*multipart.FileHeader{
			submission.PassportImage:  image("p.png", "image/png"),
			submission.SignatureImage: image("s.jpg", "image/jpeg"),
		},
		Origin: "https://forms.test",
	}
}

func TestSubmit_ValidContact(t *testing.T) {
	t.Parallel()

	p, d := newPipeline(t)
	d.notifier.On("SendBoth", mock.Anything, mock.MatchedBy(func(sub submission.Submission) bool {
		_, hasHoneypot := sub.Fields[submission.HoneypotField]
		return sub.Form.Type == submission.Contact && sub.Record.ID == 1 && !hasHoneypot
	})).Return(nil).Once()

	rec, err := p.Submit(context.Background(), contactRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), rec.ID)
	require.Len(t, d.store.rows, 1)
	assert.Equal(t, []any{"Ada", "ada@example.com", "123", "hi"}, d.store.rows[0])
	assert.Equal(t, 1, d.cooldown.recorded)
	d.notifier.AssertExpectations(t)
}

func TestSubmit_RateLimited(t *testing.T) {
	t.Parallel()

	p, d := newPipeline(t)
	d.cooldown.limited = true

	_, err := p.Submit(context.Background(), contactRequest())
	assert.ErrorIs(t, err, submission.ErrRateLimited)
	assert.Empty(t, d.store.rows)
	d.notifier.AssertNotCalled(t, "SendBoth", mock.Anything, mock.Anything)
}

func TestSubmit_Honeypot(t *testing.T) {
	t.Parallel()

	p, d := newPipeline(t)
	req := contactRequest()
	req.Fields["botField"] = "gotcha"
	req.Fields["email"] = "broken"

	_, err := p.Submit(context.Background(), req)
	assert.ErrorIs(t, err, submission.ErrSpamDetected)
	assert.Empty(t, d.store.rows)
}

func TestSubmit_HoneypotAsList(t *testing.T) {
	t.Parallel()

	p, d := newPipeline(t)
	req := contactRequest()
	req.Fields["botField"] = []any{"spam"}

	_, err := p.Submit(context.Background(), req)
	assert.ErrorIs(t, err, submission.ErrSpamDetected)
	assert.Empty(t, d.store.rows)
	d.notifier.AssertNotCalled(t, "SendBoth", mock.Anything, mock.Anything)
}

func TestSubmit_ValidationFailed(t *testing.T) {
	t.Parallel()

	p, d := newPipeline(t)
	req := contactRequest()
	delete(req.Fields, "message")

	_, err := p.Submit(context.Background(), req)

	var subErr *submission.Error
	require.ErrorAs(t, err, &subErr)
	assert.ErrorIs(t, err, submission.ErrValidationFailed)
	assert.Equal(t, map[string]string{"message": submission.MsgMessageRequired}, subErr.Fields)
	assert.Empty(t, d.store.rows)
	assert.Zero(t, d.cooldown.recorded)
}

func TestSubmit_UploadCheckRunsBeforeValidation(t *testing.T) {
	t.Parallel()

	p, d := newPipeline(t)
	d.uploads.checkErr = map[string]error{submission.SignatureImage: submission.InvalidFileType(submission.SignatureImage)}

	req := applicationRequest()
	delete(req.Fields, "fullName")

	_, err := p.Submit(context.Background(), req)
	assert.ErrorIs(t, err, submission.ErrInvalidFileType)
	assert.Empty(t, d.uploads.placed)
	assert.Empty(t, d.store.rows)
}

func TestSubmit_ValidationFailureLeavesNoUploads(t *testing.T) {
	t.Parallel()

	p, d := newPipeline(t)
	req := applicationRequest()
	delete(req.Fields, "phone")

	_, err := p.Submit(context.Background(), req)
	assert.ErrorIs(t, err, submission.ErrValidationFailed)
	assert.Empty(t, d.uploads.placed)
}

func TestSubmit_ApplicationStoresUploadURLs(t *testing.T) {
	t.Parallel()

	p, d := newPipeline(t)
	d.notifier.On("SendBoth", mock.Anything, mock.MatchedBy(func(sub submission.Submission) bool {
		return len(sub.Assets) == 2
	})).Return(nil).Once()

	_, err := p.Submit(context.Background(), applicationRequest())
	require.NoError(t, err)

	require.Len(t, d.store.rows, 1)
	row := d.store.rows[0]
	assert.Equal(t, "https://forms.test/uploads/passport_image.png", row[20])
	assert.Equal(t, "https://forms.test/uploads/signature_image.png", row[21])
	d.notifier.AssertExpectations(t)
}

func TestSubmit_StorageWriteFailureRemovesPlaced(t *testing.T) {
	t.Parallel()

	p, d := newPipeline(t)
	d.uploads.placeErr = map[string]error{submission.SignatureImage: errors.New("read-only fs")}

	_, err := p.Submit(context.Background(), applicationRequest())

	var subErr *submission.Error
	require.ErrorAs(t, err, &subErr)
	assert.ErrorIs(t, err, submission.ErrStorageWrite)
	assert.Equal(t, "Failed to upload signature image", subErr.Message)
	require.Len(t, d.uploads.removed, 1)
	assert.Equal(t, submission.PassportImage, d.uploads.removed[0].Field)
	assert.Empty(t, d.store.rows)
}

func TestSubmit_PersistenceFailureRemovesUploads(t *testing.T) {
	t.Parallel()

	p, d := newPipeline(t)
	d.store.err = errors.New("connection refused")

	_, err := p.Submit(context.Background(), applicationRequest())

	assert.ErrorIs(t, err, submission.ErrPersistence, "plain store errors are wrapped")
	assert.Len(t, d.uploads.removed, 2)
	d.notifier.AssertNotCalled(t, "SendBoth", mock.Anything, mock.Anything)
	assert.Zero(t, d.cooldown.recorded)
}

func TestSubmit_NotificationFailureKeepsRecord(t *testing.T) {
	t.Parallel()

	p, d := newPipeline(t)
	d.notifier.On("SendBoth", mock.Anything, mock.Anything).Return(errors.New("smtp: 535 auth failed")).Once()

	rec, err := p.Submit(context.Background(), contactRequest())

	assert.ErrorIs(t, err, submission.ErrNotification)
	assert.Equal(t, int64(1), rec.ID)
	assert.Len(t, d.store.rows, 1)
	assert.Empty(t, d.uploads.removed)
	assert.Zero(t, d.cooldown.recorded)
}

func TestSubmit_DetachesFromCancellationAfterInsert(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	p, d := newPipeline(t)
	d.notifier.On("SendBoth", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(nil).Once()

	// cancel once the row is in, as a disconnecting client would
	store := &cancelingStore{fakeStore: d.store, cancel: cancel}
	p = submission.New(d.cooldown, d.uploads, store, d.notifier)

	_, err := p.Submit(ctx, contactRequest())
	require.NoError(t, err)
	d.notifier.AssertExpectations(t)
	assert.Equal(t, 1, d.cooldown.recorded)
}

type cancelingStore struct {
	*fakeStore
	cancel context.CancelFunc
}

func (s *cancelingStore) Insert(ctx context.Context, desc submission.Descriptor, values []any) (submission.Record, error) {
	rec, err := s.fakeStore.Insert(ctx, desc, values)
	s.cancel()
	return rec, err
}
