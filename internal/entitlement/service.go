// internal/entitlement/service.go
package entitlement

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"sareestage-backend/internal/store"
	apperrors "sareestage-backend/pkg/errors"
)

const (
	// FreeGuestCredits is the starting grant for a never-seen guest identity.
	FreeGuestCredits = 3

	guestPlan    = "guest"
	freeTierPlan = "free_tier"
	guestPrefix  = "guest_"
)

// Record is the entitlement state held for one identity.
type Record struct {
	Credits int    `json:"credits"`
	Plan    string `json:"plan"`
}

// Service owns the credit balance bookkeeping for every identity known to
// this profile, guests and signed-in users alike.
type Service interface {
	// ResolveGuestID returns the durable guest identity for this profile,
	// creating it on first use.
	ResolveGuestID() (string, error)
	// GetBalance lazily initializes an identity per the bootstrap rules and
	// returns its record. It never returns a zero-value record for a
	// resolvable identity.
	GetBalance(identity string) (Record, error)
	// Debit consumes one credit, floored at zero. Callers must ensure Debit
	// runs at most once per successful initial generation; the store does not
	// make it idempotent.
	Debit(identity string) (Record, error)
	// Credit applies a plan purchase: adds the purchased credits to the
	// existing balance and switches the plan name.
	Credit(identity, plan string, amount int) (Record, error)
	// InitializeUser bootstraps a newly signed-up identity with zero credits.
	// No-op if the identity already has a record.
	InitializeUser(identity string) error
}

type service struct {
	kv store.Store
}

func NewService(kv store.Store) Service {
	return &service{kv: kv}
}

func (s *service) ResolveGuestID() (string, error) {
	id, ok, err := s.kv.Get(store.GuestIDKey)
	if err != nil {
		return "", err
	}
	if ok && id != "" {
		return id, nil
	}

	id = guestPrefix + uuid.NewString()
	if err := s.kv.Set(store.GuestIDKey, id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *service) GetBalance(identity string) (Record, error) {
	all, err := s.loadAll()
	if err != nil {
		return Record{}, err
	}

	if record, ok := all[identity]; ok {
		return record, nil
	}

	// First sighting: guests get the free grant, everyone else starts empty.
	record := Record{Credits: 0, Plan: freeTierPlan}
	if strings.HasPrefix(identity, guestPrefix) {
		record = Record{Credits: FreeGuestCredits, Plan: guestPlan}
	}

	all[identity] = record
	if err := s.saveAll(all); err != nil {
		return Record{}, err
	}
	return record, nil
}

func (s *service) Debit(identity string) (Record, error) {
	record, err := s.GetBalance(identity)
	if err != nil {
		return Record{}, err
	}

	if record.Credits > 0 {
		record.Credits--
	}

	if err := s.update(identity, record); err != nil {
		return Record{}, err
	}
	return record, nil
}

func (s *service) Credit(identity, plan string, amount int) (Record, error) {
	if amount < 0 {
		return Record{}, apperrors.NewValidationError("credit amount must not be negative")
	}

	record, err := s.GetBalance(identity)
	if err != nil {
		return Record{}, err
	}

	record.Credits += amount
	record.Plan = plan

	if err := s.update(identity, record); err != nil {
		return Record{}, err
	}
	return record, nil
}

func (s *service) InitializeUser(identity string) error {
	all, err := s.loadAll()
	if err != nil {
		return err
	}
	if _, ok := all[identity]; ok {
		return nil
	}

	all[identity] = Record{Credits: 0, Plan: freeTierPlan}
	return s.saveAll(all)
}

func (s *service) update(identity string, record Record) error {
	all, err := s.loadAll()
	if err != nil {
		return err
	}
	all[identity] = record
	return s.saveAll(all)
}

// loadAll reads the single JSON blob mapping every known identity to its
// record.
func (s *service) loadAll() (map[string]Record, error) {
	raw, ok, err := s.kv.Get(store.UserDataKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return make(map[string]Record), nil
	}

	all := make(map[string]Record)
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil, apperrors.NewPersistenceError("user data blob is corrupted: " + err.Error())
	}
	return all, nil
}

func (s *service) saveAll(all map[string]Record) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return apperrors.NewPersistenceError(err.Error())
	}
	return s.kv.Set(store.UserDataKey, string(raw))
}
