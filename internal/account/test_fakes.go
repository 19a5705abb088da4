package account

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lib/pq"

	"github.com/mslima/blog-core-go/internal/account/entity"
)

// errDuplicateKey mirrors what lib/pq returns on a unique violation.
var errDuplicateKey = &pq.Error{Code: "23505"}

// fakeStore is an in-memory Store used by the package tests and the router
// tests; it mimics the repo's contract including unique-email enforcement.
type fakeStore struct {
	nextID int64
	users  map[string]*entity.User // keyed by lower-cased email

	createErr error
	updateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, users: map[string]*entity.User{}}
}

func (f *fakeStore) Create(ctx context.Context, u *entity.User) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	key := strings.ToLower(u.Email)
	if _, exists := f.users[key]; exists {
		return 0, errDuplicateKey
	}
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.users[key] = &cp
	return u.ID, nil
}

func (f *fakeStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) UpdateImage(ctx context.Context, id int64, image string) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	for _, u := range f.users {
		if u.ID == id {
			u.Image = &image
			return true, nil
		}
	}
	return false, nil
}

// fakeMailer records outbound mail.
type fakeMailer struct {
	sent []struct{ to, subject, body string }
	err  error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, struct{ to, subject, body string }{to, subject, body})
	return nil
}

// fakeImageStore keeps uploads in memory.
type fakeImageStore struct {
	files map[string][]byte
	err   error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{files: map[string][]byte{}}
}

func (f *fakeImageStore) Save(name string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.files[name] = data
	return nil
}
