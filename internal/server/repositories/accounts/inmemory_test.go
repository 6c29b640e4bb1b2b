package accounts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/speechauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func newRepo() *InMemoryRepository {
	return NewInMemoryRepository().WithClock(func() time.Time { return fixedNow })
}

func TestCreate_Success(t *testing.T) {
	r := newRepo()
	ctx := context.Background()

	a, err := r.Create(ctx, "a@b.com", "Alice", "h1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", a.Email)
	assert.Equal(t, "Alice", a.Name)
	assert.Equal(t, "h1", a.PasswordHash)
	assert.Equal(t, fixedNow, a.CreatedAt)

	found, err := r.Find(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, a, found)
}

func TestCreate_Duplicate(t *testing.T) {
	r := newRepo()
	ctx := context.Background()

	_, err := r.Create(ctx, "a@b.com", "Alice", "h1")
	require.NoError(t, err)

	_, err = r.Create(ctx, "a@b.com", "Mallory", "h2")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	n, _ := r.Count(ctx)
	assert.Equal(t, 1, n)

	kept, err := r.Find(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", kept.Name, "original record must be untouched")
}

func TestCreate_InvalidInput(t *testing.T) {
	tests := []struct {
		name         string
		email        string
		display      string
		passwordHash string
	}{
		{name: "empty email", email: "", display: "A", passwordHash: "h"},
		{name: "empty name", email: "a@b.com", display: "", passwordHash: "h"},
		{name: "empty password", email: "a@b.com", display: "A", passwordHash: ""},
		{name: "no at sign", email: "ab.com", display: "A", passwordHash: "h"},
		{name: "no dot in domain", email: "a@bcom", display: "A", passwordHash: "h"},
		{name: "dot only in local part", email: "a.b@com", display: "A", passwordHash: "h"},
		{name: "empty local part", email: "@b.com", display: "A", passwordHash: "h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRepo()
			ctx := context.Background()

			_, err := r.Create(ctx, tt.email, tt.display, tt.passwordHash)
			require.ErrorIs(t, err, common.ErrorInvalidInput)

			n, _ := r.Count(ctx)
			assert.Zero(t, n, "no partial record")
		})
	}
}

func TestFind_IsCaseSensitive(t *testing.T) {
	r := newRepo()
	ctx := context.Background()

	_, err := r.Create(ctx, "a@b.com", "Alice", "h1")
	require.NoError(t, err)

	_, err = r.Find(ctx, "A@B.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = r.Create(ctx, "A@b.com", "Other Alice", "h2")
	assert.NoError(t, err, "differently cased email is a distinct account")
}

func TestVerifyCredential(t *testing.T) {
	r := newRepo()
	ctx := context.Background()

	_, err := r.Create(ctx, "a@b.com", "Alice", "h1")
	require.NoError(t, err)

	a, err := r.VerifyCredential(ctx, "a@b.com", "h1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", a.Name)

	_, wrongHash := r.VerifyCredential(ctx, "a@b.com", "h2")
	_, unknown := r.VerifyCredential(ctx, "ghost@b.com", "h1")

	assert.ErrorIs(t, wrongHash, common.ErrorNotFound)
	assert.ErrorIs(t, unknown, common.ErrorNotFound)
	assert.Equal(t, wrongHash, unknown, "wrong hash and unknown email must be indistinguishable")
}

func TestListAll_InsertionOrder(t *testing.T) {
	r := newRepo()
	ctx := context.Background()

	emails := []string{"z@x.com", "a@x.com", "m@x.com"}
	for _, e := range emails {
		_, err := r.Create(ctx, e, "N", "h")
		require.NoError(t, err)
	}

	all, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, e := range emails {
		assert.Equal(t, e, all[i].Email)
	}
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	r := newRepo()
	ctx := context.Background()

	a, err := r.Create(ctx, "a@b.com", "Alice", "h1")
	require.NoError(t, err)
	a.Name = "changed"

	all, _ := r.ListAll(ctx)
	all[0].PasswordHash = "changed"

	found, err := r.Find(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)
	assert.Equal(t, "h1", found.PasswordHash)
}

func TestCreate_ConcurrentSameEmail(t *testing.T) {
	r := NewInMemoryRepository()
	ctx := context.Background()

	const workers = 32
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		dupes     atomic.Int32
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Create(ctx, "race@x.com", fmt.Sprintf("n%d", i), "h")
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, common.ErrorAlreadyExists):
				dupes.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes.Load())
	assert.EqualValues(t, workers-1, dupes.Load())

	n, _ := r.Count(ctx)
	assert.Equal(t, 1, n)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("u@x.com"))
	assert.NoError(t, ValidateEmail("first.last@sub.domain.org"))
	assert.ErrorIs(t, ValidateEmail("u@localhost"), common.ErrorInvalidInput)
	assert.ErrorIs(t, ValidateEmail("plain"), common.ErrorInvalidInput)
}
