package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"upfound/internal/models"

	"github.com/google/uuid"
)

// MockStore is an in-memory implementation of Store. A single mutex guards
// all entity maps, and Atomically holds it for the whole unit of work, so
// every unit of work is serialized; on failure the pre-transaction snapshot
// is restored. That gives the same observable guarantees as the database
// transaction path and keeps service tests free of external dependencies.
type MockStore struct {
	mu   sync.Mutex
	data *mockData
}

type mockData struct {
	users        map[string]models.User
	products     map[string]models.Product
	productOrder []string // insertion order backs the feed's default sort
	votes        map[string]models.Vote
	comments     map[string]models.Comment
}

func newMockData() *mockData {
	return &mockData{
		users:    make(map[string]models.User),
		products: make(map[string]models.Product),
		votes:    make(map[string]models.Vote),
		comments: make(map[string]models.Comment),
	}
}

func (d *mockData) clone() *mockData {
	c := newMockData()
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	c.productOrder = append([]string(nil), d.productOrder...)
	for k, v := range d.votes {
		c.votes[k] = v
	}
	for k, v := range d.comments {
		c.comments[k] = v
	}
	return c
}

// NewMockStore creates a new empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		data: newMockData(),
	}
}

// Atomically serializes the unit of work under the store mutex and rolls the
// data back to the entry snapshot if fn fails.
func (s *MockStore) Atomically(fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(&mockTxStore{data: s.data}); err != nil {
		s.data = snapshot
		return fmt.Errorf("transaction aborted: %w", err)
	}
	return nil
}

// Users returns a user repository that locks per call.
func (s *MockStore) Users() UserRepository {
	return &mockUserRepository{repoBase{store: s}}
}

// Products returns a product repository that locks per call.
func (s *MockStore) Products() ProductRepository {
	return &mockProductRepository{repoBase{store: s}}
}

// Votes returns a vote repository that locks per call.
func (s *MockStore) Votes() VoteRepository {
	return &mockVoteRepository{repoBase{store: s}}
}

// Comments returns a comment repository that locks per call.
func (s *MockStore) Comments() CommentRepository {
	return &mockCommentRepository{repoBase{store: s}}
}

func (s *MockStore) lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

// mockTxStore is the view handed to Atomically callbacks. The mutex is
// already held, so its repositories access the data directly.
type mockTxStore struct {
	data *mockData
}

func (s *mockTxStore) Users() UserRepository {
	return &mockUserRepository{repoBase{data: s.data}}
}

func (s *mockTxStore) Products() ProductRepository {
	return &mockProductRepository{repoBase{data: s.data}}
}

func (s *mockTxStore) Votes() VoteRepository {
	return &mockVoteRepository{repoBase{data: s.data}}
}

func (s *mockTxStore) Comments() CommentRepository {
	return &mockCommentRepository{repoBase{data: s.data}}
}

// Atomically on an already-transactional view just runs fn in place; the
// outer unit of work owns commit and rollback.
func (s *mockTxStore) Atomically(fn func(Store) error) error {
	return fn(s)
}

// repoBase resolves the data and locking strategy shared by the mock
// repositories: direct access inside a transaction, mutex-per-call outside.
type repoBase struct {
	store *MockStore
	data  *mockData
}

func (b *repoBase) acquire() (*mockData, func()) {
	if b.data != nil {
		return b.data, func() {}
	}
	unlock := b.store.lock()
	return b.store.data, unlock
}

type mockUserRepository struct{ repoBase }

func (r *mockUserRepository) Create(user *models.User) error {
	data, release := r.acquire()
	defer release()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	for _, existing := range data.users {
		if existing.Email == user.Email || existing.UserID == user.UserID {
			return fmt.Errorf("%w: user email or public id already registered", ErrDuplicateKey)
		}
	}
	data.users[user.ID] = *user
	return nil
}

func (r *mockUserRepository) GetByID(id string) (*models.User, error) {
	data, release := r.acquire()
	defer release()

	user, ok := data.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user with ID %s", ErrNotFound, id)
	}
	return &user, nil
}

func (r *mockUserRepository) GetByUserID(userID string) (*models.User, error) {
	data, release := r.acquire()
	defer release()

	for _, user := range data.users {
		if user.UserID == userID {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user with public id %s", ErrNotFound, userID)
}

func (r *mockUserRepository) GetByEmail(email string) (*models.User, error) {
	data, release := r.acquire()
	defer release()

	for _, user := range data.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user with email %s", ErrNotFound, email)
}

func (r *mockUserRepository) AdjustUpvotes(id string, delta int) error {
	data, release := r.acquire()
	defer release()

	user, ok := data.users[id]
	if !ok {
		return fmt.Errorf("%w: user with ID %s", ErrNotFound, id)
	}
	user.Upvotes += delta
	data.users[id] = user
	return nil
}

type mockProductRepository struct{ repoBase }

func (r *mockProductRepository) Create(product *models.Product) error {
	data, release := r.acquire()
	defer release()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.Category == "" {
		product.Category = "Global"
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	data.products[product.ID] = *product
	data.productOrder = append(data.productOrder, product.ID)
	return nil
}

func (r *mockProductRepository) GetByID(id string) (*models.Product, error) {
	data, release := r.acquire()
	defer release()

	product, ok := data.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product with ID %s", ErrNotFound, id)
	}
	resolveSubmitter(data, &product)
	return &product, nil
}

func (r *mockProductRepository) Update(product *models.Product) error {
	data, release := r.acquire()
	defer release()

	current, ok := data.products[product.ID]
	if !ok {
		return fmt.Errorf("%w: product with ID %s", ErrNotFound, product.ID)
	}

	// Content columns only: counters, submitter and creation time keep the
	// stored values, matching the GORM implementation.
	updated := *product
	updated.Upvotes = current.Upvotes
	updated.Comments = current.Comments
	updated.SubmittedByID = current.SubmittedByID
	updated.CreatedAt = current.CreatedAt
	data.products[product.ID] = updated
	return nil
}

func (r *mockProductRepository) Delete(id string) error {
	data, release := r.acquire()
	defer release()

	if _, ok := data.products[id]; !ok {
		return fmt.Errorf("%w: product with ID %s", ErrNotFound, id)
	}
	delete(data.products, id)
	for i, pid := range data.productOrder {
		if pid == id {
			data.productOrder = append(data.productOrder[:i], data.productOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *mockProductRepository) matching(data *mockData, query ProductQuery) []models.Product {
	products := make([]models.Product, 0, len(data.productOrder))
	for _, id := range data.productOrder {
		product := data.products[id]
		if query.Category != "" && !strings.EqualFold(query.Category, "all") &&
			!strings.EqualFold(product.Category, query.Category) {
			continue
		}
		products = append(products, product)
	}
	return products
}

func (r *mockProductRepository) List(query ProductQuery) ([]models.Product, error) {
	data, release := r.acquire()
	defer release()

	products := r.matching(data, query)
	switch query.Sort {
	case SortLatest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	case SortTrending:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Upvotes > products[j].Upvotes
		})
	}

	products = paginateProducts(products, query.Limit, query.Offset)
	for i := range products {
		resolveSubmitter(data, &products[i])
	}
	return products, nil
}

func (r *mockProductRepository) Count(query ProductQuery) (int64, error) {
	data, release := r.acquire()
	defer release()

	return int64(len(r.matching(data, query))), nil
}

func (r *mockProductRepository) ListBySubmitter(userID string, limit, offset int) ([]models.Product, error) {
	data, release := r.acquire()
	defer release()

	var products []models.Product
	for _, id := range data.productOrder {
		if data.products[id].SubmittedByID == userID {
			products = append(products, data.products[id])
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return paginateProducts(products, limit, offset), nil
}

func (r *mockProductRepository) CountBySubmitter(userID string) (int64, error) {
	data, release := r.acquire()
	defer release()

	var count int64
	for _, product := range data.products {
		if product.SubmittedByID == userID {
			count++
		}
	}
	return count, nil
}

func (r *mockProductRepository) AdjustUpvotes(id string, delta int) error {
	data, release := r.acquire()
	defer release()

	product, ok := data.products[id]
	if !ok {
		return fmt.Errorf("%w: product with ID %s", ErrNotFound, id)
	}
	product.Upvotes += delta
	data.products[id] = product
	return nil
}

func (r *mockProductRepository) AdjustComments(id string, delta int) error {
	data, release := r.acquire()
	defer release()

	product, ok := data.products[id]
	if !ok {
		return fmt.Errorf("%w: product with ID %s", ErrNotFound, id)
	}
	product.Comments += delta
	data.products[id] = product
	return nil
}

type mockVoteRepository struct{ repoBase }

func (r *mockVoteRepository) Create(vote *models.Vote) error {
	data, release := r.acquire()
	defer release()

	for _, existing := range data.votes {
		if existing.UserID == vote.UserID && existing.ProductID == vote.ProductID {
			return fmt.Errorf("%w: vote by user %s on product %s", ErrDuplicateKey, vote.UserID, vote.ProductID)
		}
	}
	if vote.ID == "" {
		vote.ID = uuid.New().String()
	}
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now()
	}
	data.votes[vote.ID] = *vote
	return nil
}

func (r *mockVoteRepository) GetByUserAndProduct(userID, productID string) (*models.Vote, error) {
	data, release := r.acquire()
	defer release()

	for _, vote := range data.votes {
		if vote.UserID == userID && vote.ProductID == productID {
			v := vote
			return &v, nil
		}
	}
	return nil, fmt.Errorf("%w: vote by user %s on product %s", ErrNotFound, userID, productID)
}

func (r *mockVoteRepository) DeleteByUserAndProduct(userID, productID string) error {
	data, release := r.acquire()
	defer release()

	for id, vote := range data.votes {
		if vote.UserID == userID && vote.ProductID == productID {
			delete(data.votes, id)
			return nil
		}
	}
	return fmt.Errorf("%w: vote by user %s on product %s", ErrNotFound, userID, productID)
}

func (r *mockVoteRepository) Exists(userID, productID string) (bool, error) {
	data, release := r.acquire()
	defer release()

	for _, vote := range data.votes {
		if vote.UserID == userID && vote.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockVoteRepository) CountByProduct(productID string) (int64, error) {
	data, release := r.acquire()
	defer release()

	var count int64
	for _, vote := range data.votes {
		if vote.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *mockVoteRepository) CountByUser(userID string) (int64, error) {
	data, release := r.acquire()
	defer release()

	var count int64
	for _, vote := range data.votes {
		if vote.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *mockVoteRepository) ListByUser(userID string, limit, offset int) ([]models.Vote, error) {
	data, release := r.acquire()
	defer release()

	var votes []models.Vote
	for _, vote := range data.votes {
		if vote.UserID == userID {
			if product, ok := data.products[vote.ProductID]; ok {
				vote.Product = &product
			}
			votes = append(votes, vote)
		}
	}
	sort.SliceStable(votes, func(i, j int) bool {
		return votes[i].CreatedAt.After(votes[j].CreatedAt)
	})
	if offset >= len(votes) {
		return nil, nil
	}
	votes = votes[offset:]
	if limit > 0 && limit < len(votes) {
		votes = votes[:limit]
	}
	return votes, nil
}

type mockCommentRepository struct{ repoBase }

func (r *mockCommentRepository) Create(comment *models.Comment) error {
	data, release := r.acquire()
	defer release()

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	data.comments[comment.ID] = *comment
	return nil
}

func (r *mockCommentRepository) GetByID(id string) (*models.Comment, error) {
	data, release := r.acquire()
	defer release()

	comment, ok := data.comments[id]
	if !ok {
		return nil, fmt.Errorf("%w: comment with ID %s", ErrNotFound, id)
	}
	return &comment, nil
}

func (r *mockCommentRepository) Delete(id string) error {
	data, release := r.acquire()
	defer release()

	if _, ok := data.comments[id]; !ok {
		return fmt.Errorf("%w: comment with ID %s", ErrNotFound, id)
	}
	delete(data.comments, id)
	return nil
}

func (r *mockCommentRepository) ListByProduct(productID string, limit, offset int) ([]models.Comment, error) {
	data, release := r.acquire()
	defer release()

	var comments []models.Comment
	for _, comment := range data.comments {
		if comment.ProductID == productID {
			if author, ok := data.users[comment.AuthorID]; ok {
				comment.Author = &author
			}
			comments = append(comments, comment)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	if offset >= len(comments) {
		return nil, nil
	}
	comments = comments[offset:]
	if limit > 0 && limit < len(comments) {
		comments = comments[:limit]
	}
	return comments, nil
}

func (r *mockCommentRepository) CountByProduct(productID string) (int64, error) {
	data, release := r.acquire()
	defer release()

	var count int64
	for _, comment := range data.comments {
		if comment.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func resolveSubmitter(data *mockData, product *models.Product) {
	if user, ok := data.users[product.SubmittedByID]; ok {
		product.SubmittedBy = &user
	}
}

func paginateProducts(products []models.Product, limit, offset int) []models.Product {
	if offset >= len(products) {
		return nil
	}
	products = products[offset:]
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	return products
}
