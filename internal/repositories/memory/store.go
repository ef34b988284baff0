// Package memory is an in-process implementation of repositories.Store. It
// backs the test suites and STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"usercenter/internal/models"
	"usercenter/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store keeps accounts and withdrawal requests in maps. Writes made inside
// ExecuteInTransaction are staged and applied on commit; account rows
// locked inside a transaction stay locked until it ends.
type Store struct {
	mu          sync.Mutex
	accounts    map[uint]models.Account
	withdrawals []models.WithdrawalRequest
	rowLocks    map[uint]chan struct{}
	nextID      uint
	now         func() time.Time
}

var _ repositories.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		accounts: make(map[uint]models.Account),
		rowLocks: make(map[uint]chan struct{}),
		nextID:   1,
		now:      time.Now,
	}
}

func (s *Store) Accounts() repositories.AccountRepository {
	return &accountRepository{v: view{root: s}}
}

func (s *Store) Withdrawals() repositories.WithdrawalRepository {
	return &withdrawalRepository{v: view{root: s}}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) ExecuteInTransaction(ctx context.Context, opts repositories.TxOptions, fn func(tx repositories.Store) error) error {
	tx := &txState{
		lockTimeout: opts.LockTimeout,
		accounts:    make(map[uint]models.Account),
		held:        make(map[uint]struct{}),
	}
	defer s.releaseRows(tx)

	if err := fn(&txStore{v: view{root: s, tx: tx}}); err != nil {
		return err
	}
	return s.commit(tx)
}

// Snapshot returns a copy of the stored account, for assertions.
func (s *Store) Snapshot(userID uint) (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[userID]
	return account, ok
}

// WithdrawalCount returns how many requests the user has across all states.
func (s *Store) WithdrawalCount(userID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, w := range s.withdrawals {
		if w.UserID == userID {
			n++
		}
	}
	return n
}

func (s *Store) commit(tx *txState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range tx.inserts {
		if s.hasPendingLocked(w.UserID) {
			return repositories.ErrDuplicatePending
		}
	}
	for id, account := range tx.accounts {
		if account.Balance.IsNegative() {
			return repositories.ErrInsufficientBalance
		}
		s.accounts[id] = account
	}
	s.withdrawals = append(s.withdrawals, tx.inserts...)
	return nil
}

func (s *Store) hasPendingLocked(userID uint) bool {
	for _, w := range s.withdrawals {
		if w.UserID == userID && w.Status == models.WithdrawalPending {
			return true
		}
	}
	return false
}

func (s *Store) rowLock(userID uint) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.rowLocks[userID]
	if !ok {
		ch = make(chan struct{}, 1)
		s.rowLocks[userID] = ch
	}
	return ch
}

// lockRow takes the row lock of userID for tx, waiting at most the
// transaction's lock timeout.
func (s *Store) lockRow(ctx context.Context, tx *txState, userID uint) error {
	if _, ok := tx.held[userID]; ok {
		return nil
	}

	ch := s.rowLock(userID)
	var timeout <-chan time.Time
	if tx.lockTimeout > 0 {
		timer := time.NewTimer(tx.lockTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case ch <- struct{}{}:
		tx.held[userID] = struct{}{}
		return nil
	case <-timeout:
		return repositories.ErrLockTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) releaseRows(tx *txState) {
	for userID := range tx.held {
		<-s.rowLock(userID)
	}
	tx.held = nil
}

type txState struct {
	lockTimeout time.Duration
	accounts    map[uint]models.Account
	inserts     []models.WithdrawalRequest
	held        map[uint]struct{}
}

// view resolves reads against staged writes first when bound to a
// transaction.
type view struct {
	root *Store
	tx   *txState
}

func (v view) account(userID uint) (models.Account, bool) {
	if v.tx != nil {
		if account, ok := v.tx.accounts[userID]; ok {
			return account, true
		}
	}
	v.root.mu.Lock()
	defer v.root.mu.Unlock()
	account, ok := v.root.accounts[userID]
	return account, ok
}

func (v view) putAccount(account models.Account) {
	account.UpdatedAt = v.root.now()
	if v.tx != nil {
		v.tx.accounts[account.UserID] = account
		return
	}
	v.root.mu.Lock()
	defer v.root.mu.Unlock()
	v.root.accounts[account.UserID] = account
}

func (v view) lock(ctx context.Context, userID uint) error {
	if v.tx == nil {
		return nil
	}
	return v.root.lockRow(ctx, v.tx, userID)
}

func (v view) hasPending(userID uint) bool {
	if v.tx != nil {
		for _, w := range v.tx.inserts {
			if w.UserID == userID && w.Status == models.WithdrawalPending {
				return true
			}
		}
	}
	v.root.mu.Lock()
	defer v.root.mu.Unlock()
	return v.root.hasPendingLocked(userID)
}

type txStore struct {
	v view
}

func (t *txStore) Accounts() repositories.AccountRepository {
	return &accountRepository{v: t.v}
}

func (t *txStore) Withdrawals() repositories.WithdrawalRepository {
	return &withdrawalRepository{v: t.v}
}

// ExecuteInTransaction on a transaction-bound store joins the outer
// transaction.
func (t *txStore) ExecuteInTransaction(ctx context.Context, _ repositories.TxOptions, fn func(tx repositories.Store) error) error {
	return fn(t)
}

func (t *txStore) Ping(ctx context.Context) error {
	return t.v.root.Ping(ctx)
}

type accountRepository struct {
	v view
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if _, ok := r.v.account(account.UserID); ok {
		return repositories.ErrAccountExists
	}
	if err := account.BeforeCreate(nil); err != nil {
		return err
	}

	r.v.root.mu.Lock()
	account.ID = r.v.root.nextID
	r.v.root.nextID++
	r.v.root.mu.Unlock()

	now := r.v.root.now()
	account.CreatedAt = now
	account.UpdatedAt = now
	r.v.putAccount(*account)
	return nil
}

func (r *accountRepository) GetAccount(ctx context.Context, userID uint) (*models.Account, error) {
	account, ok := r.v.account(userID)
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	return &account, nil
}

func (r *accountRepository) ReadBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	account, err := r.GetAccount(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (r *accountRepository) ReadVerificationStatus(ctx context.Context, userID uint) (models.VerificationStatus, error) {
	account, err := r.GetAccount(ctx, userID)
	if err != nil {
		return "", err
	}
	return account.VerificationStatus, nil
}

func (r *accountRepository) LockAccount(ctx context.Context, userID uint) (*models.Account, error) {
	if err := r.v.lock(ctx, userID); err != nil {
		return nil, err
	}
	return r.GetAccount(ctx, userID)
}

func (r *accountRepository) LockAndDebit(ctx context.Context, userID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, repositories.ErrInvalidAmount
	}
	account, err := r.LockAccount(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if account.Balance.LessThan(amount) {
		return decimal.Zero, repositories.ErrInsufficientBalance
	}
	account.Balance = account.Balance.Sub(amount)
	r.v.putAccount(*account)
	return account.Balance, nil
}

func (r *accountRepository) SaveCertification(ctx context.Context, userID uint, cert models.Certification) error {
	account, err := r.LockAccount(ctx, userID)
	if err != nil {
		return err
	}
	account.VerificationStatus = cert.Status
	account.RealName = cert.RealName
	account.IDCardNumber = cert.IDCardNumber
	account.PayoutName = cert.PayoutName
	account.PayoutAccount = cert.PayoutAccount
	r.v.putAccount(*account)
	return nil
}

type withdrawalRepository struct {
	v view
}

func (r *withdrawalRepository) ExistsPending(ctx context.Context, userID uint) (bool, error) {
	return r.v.hasPending(userID), nil
}

func (r *withdrawalRepository) Insert(ctx context.Context, request *models.WithdrawalRequest) error {
	if request.Status == "" {
		request.Status = models.WithdrawalPending
	}
	if request.Status == models.WithdrawalPending && r.v.hasPending(request.UserID) {
		return repositories.ErrDuplicatePending
	}
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = r.v.root.now()
	}

	if r.v.tx != nil {
		r.v.tx.inserts = append(r.v.tx.inserts, *request)
		return nil
	}
	r.v.root.mu.Lock()
	defer r.v.root.mu.Unlock()
	r.v.root.withdrawals = append(r.v.root.withdrawals, *request)
	return nil
}

func (r *withdrawalRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.WithdrawalRequest, int64, error) {
	r.v.root.mu.Lock()
	var mine []models.WithdrawalRequest
	for i := len(r.v.root.withdrawals) - 1; i >= 0; i-- {
		if w := r.v.root.withdrawals[i]; w.UserID == userID {
			mine = append(mine, w)
		}
	}
	r.v.root.mu.Unlock()

	// Newest first; later inserts win ties.
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})

	total := int64(len(mine))
	if offset < 0 {
		offset = 0
	}
	if offset >= len(mine) {
		return []models.WithdrawalRequest{}, total, nil
	}
	end := len(mine)
	if limit >= 0 && limit < end-offset {
		end = offset + limit
	}
	return mine[offset:end], total, nil
}
