package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-notes-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repository for exercising the store's
// lifecycle without DynamoDB.
type memRepo struct {
	records map[string]*domain.Otp
	putErr  error
	delErr  error
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[string]*domain.Otp)}
}

func (m *memRepo) Put(_ context.Context, o *domain.Otp) error {
	if m.putErr != nil {
		return m.putErr
	}
	cp := *o
	m.records[o.Email] = &cp
	return nil
}

func (m *memRepo) Get(_ context.Context, email string) (*domain.Otp, error) {
	rec, ok := m.records[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *memRepo) Delete(_ context.Context, email string) error {
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.records, email)
	return nil
}

func newTestStore(repo Repository) *Store {
	return NewStore(repo, 10*time.Minute)
}

func TestIssueAndVerify_HappyPath(t *testing.T) {
	repo := newMemRepo()
	store := newTestStore(repo)

	code, err := store.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	// Plaintext never persisted, only a bcrypt hash.
	assert.NotContains(t, repo.records["a@x.com"].CodeHash, code)

	require.NoError(t, store.Verify(context.Background(), "a@x.com", code))
}

func TestVerify_SingleUse(t *testing.T) {
	repo := newMemRepo()
	store := newTestStore(repo)

	code, err := store.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)

	require.NoError(t, store.Verify(context.Background(), "a@x.com", code))
	err = store.Verify(context.Background(), "a@x.com", code)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestIssue_InvalidatesPriorCode(t *testing.T) {
	repo := newMemRepo()
	store := newTestStore(repo)

	first, err := store.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)
	second, err := store.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)

	err = store.Verify(context.Background(), "a@x.com", first)
	if second != first {
		assert.ErrorIs(t, err, ErrCodeInvalid)
	}
	require.NoError(t, store.Verify(context.Background(), "a@x.com", second))
}

func TestVerify_WrongCode_KeepsRecord(t *testing.T) {
	repo := newMemRepo()
	store := newTestStore(repo)

	code, err := store.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)

	err = store.Verify(context.Background(), "a@x.com", "000000")
	if code == "000000" {
		t.Skip("generated the guessed code")
	}
	require.ErrorIs(t, err, ErrCodeInvalid)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	// Retry with the right code still works.
	require.NoError(t, store.Verify(context.Background(), "a@x.com", code))
}

func TestVerify_Expired_ConsumesRecord(t *testing.T) {
	repo := newMemRepo()
	store := newTestStore(repo)

	code, err := store.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)

	// Move the clock past the 10-minute window.
	store.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	err = store.Verify(context.Background(), "a@x.com", code)
	require.ErrorIs(t, err, ErrCodeExpired)

	err = store.Verify(context.Background(), "a@x.com", code)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestVerify_NoRecord(t *testing.T) {
	store := newTestStore(newMemRepo())
	err := store.Verify(context.Background(), "nobody@x.com", "123456")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestVerify_ConsumeFailure_FailsVerification(t *testing.T) {
	repo := newMemRepo()
	store := newTestStore(repo)

	code, err := store.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)

	repo.delErr = errors.New("dynamo down")
	err = store.Verify(context.Background(), "a@x.com", code)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrBadRequest)
}

func TestIssue_StoreFailure(t *testing.T) {
	repo := newMemRepo()
	repo.putErr = errors.New("dynamo down")
	store := newTestStore(repo)

	_, err := store.Issue(context.Background(), "a@x.com")
	assert.Error(t, err)
}
