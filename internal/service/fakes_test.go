package service

import (
	"Chronicle/internal/model"
	"context"
	"errors"
	"io"
	"regexp"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var errBoom = errors.New("boom")

type fakePostRepo struct {
	mu        sync.Mutex
	posts     map[primitive.ObjectID]*model.Post
	createErr error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[primitive.ObjectID]*model.Post)}
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	post.ID = primitive.NewObjectID()
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id primitive.ObjectID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) IncrementViews(_ context.Context, id primitive.ObjectID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	p.Views++
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) sorted() []*model.Post {
	list := make([]*model.Post, 0, len(r.posts))
	for _, p := range r.posts {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID.Hex() > list[j].ID.Hex()
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

func (r *fakePostRepo) ListPosts(_ context.Context, offset, limit int64) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.sorted()
	if offset >= int64(len(list)) {
		return []*model.Post{}, nil
	}
	end := offset + limit
	if end > int64(len(list)) {
		end = int64(len(list))
	}
	return list[offset:end], nil
}

func (r *fakePostRepo) CountPosts(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.posts)), nil
}

func (r *fakePostRepo) SearchPosts(_ context.Context, pattern string, limit int64) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	result := make([]*model.Post, 0)
	for _, p := range r.sorted() {
		if re.MatchString(p.Title) || re.MatchString(p.Body) {
			result = append(result, p)
		}
		if limit > 0 && int64(len(result)) == limit {
			break
		}
	}
	return result, nil
}

func (r *fakePostRepo) UpdatePost(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.posts[post.ID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	cp := *post
	cp.Views = old.Views
	cp.CreatedAt = old.CreatedAt
	r.posts[post.ID] = &cp
	return nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id primitive.ObjectID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.posts, id)
	return p, nil
}

func (r *fakePostRepo) SumViews(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, p := range r.posts {
		total += p.Views
	}
	return total, nil
}

func (r *fakePostRepo) GetTopPosts(_ context.Context, limit int64) ([]*model.PostViews, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.sorted()
	sort.SliceStable(list, func(i, j int) bool { return list[i].Views > list[j].Views })
	result := make([]*model.PostViews, 0)
	for _, p := range list {
		if int64(len(result)) == limit {
			break
		}
		result = append(result, &model.PostViews{ID: p.ID, Title: p.Title, Views: p.Views})
	}
	return result, nil
}

func (r *fakePostRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.posts)
}

type fakeVisitRepo struct {
	mu     sync.Mutex
	counts map[string]*model.SiteVisit
	err    error
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{counts: make(map[string]*model.SiteVisit)}
}

func (r *fakeVisitRepo) Increment(_ context.Context, date string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	v, ok := r.counts[date]
	if !ok {
		v = &model.SiteVisit{Date: date}
		r.counts[date] = v
	}
	v.Count++
	v.LastUpdated = at
	return nil
}

func (r *fakeVisitRepo) GetRange(_ context.Context, from, to string) ([]*model.SiteVisit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*model.SiteVisit, 0)
	for date, v := range r.counts {
		if date >= from && date <= to {
			cp := *v
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

type fakeAdminRepo struct {
	admins map[string]*model.Admin
	err    error
}

func (r *fakeAdminRepo) GetAdminByUsername(_ context.Context, username string) (*model.Admin, error) {
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.admins[username]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (r *fakeAdminRepo) CreateAdmin(_ context.Context, admin *model.Admin) error {
	r.admins[admin.Username] = admin
	return nil
}

func (r *fakeAdminRepo) UpdatePassword(_ context.Context, username, passwordHash string, _ time.Time) error {
	a, ok := r.admins[username]
	if !ok {
		return mongo.ErrNoDocuments
	}
	a.PasswordHash = passwordHash
	return nil
}

type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string]string
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]string)}
}

func (s *fakeStorage) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, contentType string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	if _, err := io.ReadAll(reader); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectName] = contentType
	return objectName, nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectName)
	return nil
}

func (s *fakeStorage) GetPublicURL(objectName string) string {
	return "http://media.test/bucket/" + objectName
}

func (s *fakeStorage) uploads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type fakeOrphans struct {
	mu   sync.Mutex
	keys []string
}

func (q *fakeOrphans) EnqueueOrphans(_ context.Context, keys ...string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.keys = append(q.keys, keys...)
	return nil
}

type fakeRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: make(map[string]time.Duration)}
}

func (r *fakeRevoker) RevokeToken(_ context.Context, tokenID string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[tokenID] = ttl
	return nil
}

func (r *fakeRevoker) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[tokenID]
	return ok, nil
}
