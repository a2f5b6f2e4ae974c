// Package store persists the user store as a single JSON document. The file
// is the sole source of truth; every mutation rewrites the whole document,
// which is acceptable at demo account counts.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/fintechlabs/teller/internal/bank/entity"
	"github.com/fintechlabs/teller/internal/pkg/goerror"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
)

var (
	// ErrCorrupt indicates the persisted file exists but cannot be parsed.
	ErrCorrupt = errors.New("store: persisted file is corrupt")

	// ErrWrite indicates the full-document overwrite failed. The mutation
	// that triggered it is rolled back, so memory and disk stay consistent
	// and the operation can be retried safely.
	ErrWrite = errors.New("store: failed to write persisted file")
)

// document is the on-disk shape. Field names round-trip exactly on reload.
type document struct {
	Users            map[string]entity.Account `json:"users"`
	PendingTransfers []entity.PendingTransfer  `json:"pending_transfers"`
}

// SeedFunc builds the initial account set used when the file is absent.
type SeedFunc func() (map[string]entity.Account, error)

// Store owns the in-memory document and its persistence timing. A mutex
// serializes read-modify-write sequences so a future concurrent caller cannot
// lose updates.
type Store struct {
	mu      sync.Mutex
	path    string
	retries uint64
	seed    SeedFunc
	doc     document
}

// New constructs a Store for the given file path. writeRetries bounds how
// often a failed overwrite is retried before Save gives up for this mutation.
func New(path string, writeRetries uint64, seed SeedFunc) *Store {
	return &Store{
		path:    path,
		retries: writeRetries,
		seed:    seed,
		doc:     document{Users: map[string]entity.Account{}},
	}
}

// Load reads the persisted document, seeding and persisting the demo accounts
// when the file does not exist yet.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		users, err := s.seed()
		if err != nil {
			return err
		}

		s.doc = document{Users: users, PendingTransfers: []entity.PendingTransfer{}}
		return s.save(ctx)
	}
	if err != nil {
		return err
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if doc.Users == nil {
		doc.Users = map[string]entity.Account{}
	}

	s.doc = doc
	return nil
}

// Save persists the current in-memory document.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx)
}

// save rewrites the whole file. Callers must hold the mutex.
func (s *Store) save(ctx context.Context) error {
	data, err := json.MarshalIndent(s.doc, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	backoff := retry.WithMaxRetries(s.retries, retry.NewConstant(100*time.Millisecond))
	err = retry.Do(ctx, backoff, func(_ context.Context) error {
		if werr := os.WriteFile(s.path, data, 0o600); werr != nil {
			return retry.RetryableError(werr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	return nil
}

// GetAccount returns the account for username or goerror.ErrNotFound.
func (s *Store) GetAccount(_ context.Context, username string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.doc.Users[username]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	acc.Username = username
	return &acc, nil
}

// ListAccounts returns all accounts sorted by username for stable output.
func (s *Store) ListAccounts(_ context.Context) ([]entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]entity.Account, 0, len(s.doc.Users))
	for username, acc := range s.doc.Users {
		acc.Username = username
		accounts = append(accounts, acc)
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Username < accounts[j].Username
	})

	return accounts, nil
}

// UpdateAccount applies mutate to the named account and immediately persists.
func (s *Store) UpdateAccount(ctx context.Context, username string, mutate func(*entity.Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.doc.Users[username]
	if !ok {
		return goerror.ErrNotFound
	}

	orig := acc
	acc.Username = username
	if err := mutate(&acc); err != nil {
		return err
	}

	s.doc.Users[username] = acc
	if err := s.save(ctx); err != nil {
		s.doc.Users[username] = orig
		return err
	}

	return nil
}

// MoveFunds debits sender and credits receiver in one mutation and persists.
// Both sides move or neither does; a balance can never go negative.
func (s *Store) MoveFunds(ctx context.Context, sender, receiver string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.moveFunds(ctx, sender, receiver, amount)
}

// moveFunds is MoveFunds without locking, for composition with other
// mutations under one lock. Callers must hold the mutex.
func (s *Store) moveFunds(ctx context.Context, sender, receiver string, amount decimal.Decimal) error {
	src, ok := s.doc.Users[sender]
	if !ok {
		return goerror.ErrNotFound
	}

	dst, ok := s.doc.Users[receiver]
	if !ok {
		return entity.ErrUnknownReceiver
	}

	if src.Balance.LessThan(amount) {
		return entity.ErrInsufficientFunds
	}

	origSrc, origDst := src, dst
	src.Balance = src.Balance.Sub(amount)
	dst.Balance = dst.Balance.Add(amount)
	s.doc.Users[sender] = src
	s.doc.Users[receiver] = dst

	if err := s.save(ctx); err != nil {
		// Undo the unpersisted debit/credit so a retry cannot move the
		// funds twice.
		s.doc.Users[sender] = origSrc
		s.doc.Users[receiver] = origDst
		return err
	}

	return nil
}

// AppendPending queues a transfer that needs an admin decision. No balance
// mutation occurs until the decision is made; funds are not reserved.
func (s *Store) AppendPending(ctx context.Context, pt entity.PendingTransfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.PendingTransfers = append(s.doc.PendingTransfers, pt)
	if err := s.save(ctx); err != nil {
		s.doc.PendingTransfers = s.doc.PendingTransfers[:len(s.doc.PendingTransfers)-1]
		return err
	}

	return nil
}

// ListPending returns every recorded pending transfer in insertion order,
// including decided ones. Filtering by status is the caller's concern.
func (s *Store) ListPending(_ context.Context) ([]entity.PendingTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.PendingTransfer, len(s.doc.PendingTransfers))
	copy(out, s.doc.PendingTransfers)
	return out, nil
}

// ResolvePending applies an approve or reject decision to a pending record.
//
// Only records still in status pending can be decided; anything else yields
// goerror.ErrNotFound. Approval re-validates the sender's funds at decision
// time: on a shortfall the record is rejected automatically and
// entity.ErrInsufficientFundsAtApproval is returned. The balance mutation and
// the status change persist together; a failed write rolls both back and the
// record stays decidable.
func (s *Store) ResolvePending(ctx context.Context, id int64, approve bool) (*entity.PendingTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.doc.PendingTransfers {
		if s.doc.PendingTransfers[i].ID == id && s.doc.PendingTransfers[i].Status == entity.TransferStatusPending {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, goerror.ErrNotFound
	}

	pt := &s.doc.PendingTransfers[idx]

	if !approve {
		pt.Status = entity.TransferStatusRejected
		if err := s.save(ctx); err != nil {
			pt.Status = entity.TransferStatusPending
			return nil, err
		}
		out := *pt
		return &out, nil
	}

	// Flip the status before moving funds so the balance mutation and the
	// status change land in the same write. moveFunds restores the balances
	// on a failed write; the status is restored here, leaving the record
	// decidable again.
	pt.Status = entity.TransferStatusApproved
	if err := s.moveFunds(ctx, pt.Sender, pt.Receiver, pt.Amount); err != nil {
		if errors.Is(err, entity.ErrInsufficientFunds) {
			pt.Status = entity.TransferStatusRejected
			if serr := s.save(ctx); serr != nil {
				pt.Status = entity.TransferStatusPending
				return nil, serr
			}
			return nil, entity.ErrInsufficientFundsAtApproval
		}
		pt.Status = entity.TransferStatusPending
		return nil, err
	}

	out := *pt
	return &out, nil
}
