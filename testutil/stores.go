package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/openlending/lending-reservations-go/lending"
)

// InMemoryStores is a map-backed implementation of lending.Stores and
// lending.UnitOfWork for tests. The unit of work executes against the same
// maps without rollback, which is sufficient for single-request test flows.
type InMemoryStores struct {
	mu           sync.RWMutex
	members      map[lending.MemberCodeString]lending.Member
	books        map[lending.ISBNString]lending.Book
	reservations map[uuid.UUID]lending.Reservation
	order        []uuid.UUID
}

// NewInMemoryStores creates empty in-memory stores.
func NewInMemoryStores() *InMemoryStores {
	return &InMemoryStores{
		members:      make(map[lending.MemberCodeString]lending.Member),
		books:        make(map[lending.ISBNString]lending.Book),
		reservations: make(map[uuid.UUID]lending.Reservation),
	}
}

// Members returns the member store view.
func (s *InMemoryStores) Members() lending.MemberStore {
	return memberStore{s}
}

// Books returns the book store view.
func (s *InMemoryStores) Books() lending.BookStore {
	return bookStore{s}
}

// Reservations returns the reservation store view.
func (s *InMemoryStores) Reservations() lending.ReservationStore {
	return reservationStore{s}
}

// Execute implements lending.UnitOfWork by running fn against the same stores.
func (s *InMemoryStores) Execute(_ context.Context, fn func(tx lending.Stores) error) error {
	return fn(s)
}

type memberStore struct {
	s *InMemoryStores
}

func (m memberStore) FindByCode(_ context.Context, code lending.MemberCodeString) (lending.Member, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	member, ok := m.s.members[code]
	if !ok {
		return lending.Member{}, fmt.Errorf("%w: %s", lending.ErrMemberNotFound, code)
	}

	return member, nil
}

func (m memberStore) SearchByName(_ context.Context, name string) ([]lending.Member, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	matches := make([]lending.Member, 0)

	for _, member := range m.s.members {
		if strings.Contains(strings.ToLower(member.LastName), strings.ToLower(name)) {
			matches = append(matches, member)
		}
	}

	return matches, nil
}

func (m memberStore) Save(_ context.Context, member lending.Member) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	m.s.members[member.Code] = member

	return nil
}

func (m memberStore) Delete(_ context.Context, code lending.MemberCodeString) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.members[code]; !ok {
		return fmt.Errorf("%w: %s", lending.ErrMemberNotFound, code)
	}

	delete(m.s.members, code)

	return nil
}

type bookStore struct {
	s *InMemoryStores
}

func (b bookStore) FindByISBN(_ context.Context, isbn lending.ISBNString) (lending.Book, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	book, ok := b.s.books[isbn]
	if !ok {
		return lending.Book{}, fmt.Errorf("%w: %s", lending.ErrBookNotFound, isbn)
	}

	return book, nil
}

func (b bookStore) SearchByTitle(_ context.Context, title string) ([]lending.Book, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	matches := make([]lending.Book, 0)

	for _, book := range b.s.books {
		if strings.Contains(strings.ToLower(book.Title), strings.ToLower(title)) {
			matches = append(matches, book)
		}
	}

	return matches, nil
}

func (b bookStore) Save(_ context.Context, book lending.Book) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	b.s.books[book.ISBN] = book

	return nil
}

func (b bookStore) Delete(_ context.Context, isbn lending.ISBNString) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if _, ok := b.s.books[isbn]; !ok {
		return fmt.Errorf("%w: %s", lending.ErrBookNotFound, isbn)
	}

	delete(b.s.books, isbn)

	return nil
}

type reservationStore struct {
	s *InMemoryStores
}

func (r reservationStore) FindByID(_ context.Context, id uuid.UUID) (lending.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reservation, ok := r.s.reservations[id]
	if !ok {
		return lending.Reservation{}, fmt.Errorf("%w: %s", lending.ErrReservationNotFound, id)
	}

	return reservation, nil
}

func (r reservationStore) Save(_ context.Context, reservation lending.Reservation) (lending.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
		r.s.order = append(r.s.order, reservation.ID)
	}

	r.s.reservations[reservation.ID] = reservation

	return reservation, nil
}

func (r reservationStore) Delete(_ context.Context, reservation lending.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reservations[reservation.ID]; !ok {
		return fmt.Errorf("%w: %s", lending.ErrReservationNotFound, reservation.ID)
	}

	delete(r.s.reservations, reservation.ID)

	for i, id := range r.s.order {
		if id == reservation.ID {
			r.s.order = append(r.s.order[:i], r.s.order[i+1:]...)
			break
		}
	}

	return nil
}

func (r reservationStore) CountActiveForMember(
	_ context.Context,
	code lending.MemberCodeString,
	today lending.ReservationDate,
) (int, error) {

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0

	for _, reservation := range r.s.reservations {
		if reservation.Member.Code == code && reservation.IsActive(today) {
			count++
		}
	}

	return count, nil
}

func (r reservationStore) FindEndingOnOrAfter(_ context.Context, date lending.ReservationDate) ([]lending.Reservation, error) {
	return r.filter(func(reservation lending.Reservation) bool {
		return !reservation.EndDate.Before(date)
	}), nil
}

func (r reservationStore) FindEndingBefore(_ context.Context, date lending.ReservationDate) ([]lending.Reservation, error) {
	return r.filter(func(reservation lending.Reservation) bool {
		return reservation.EndDate.Before(date)
	}), nil
}

func (r reservationStore) FindForMember(_ context.Context, code lending.MemberCodeString) ([]lending.Reservation, error) {
	return r.filter(func(reservation lending.Reservation) bool {
		return reservation.Member.Code == code
	}), nil
}

func (r reservationStore) FindForMemberEndingOnOrAfter(
	_ context.Context,
	code lending.MemberCodeString,
	date lending.ReservationDate,
) ([]lending.Reservation, error) {

	return r.filter(func(reservation lending.Reservation) bool {
		return reservation.Member.Code == code && !reservation.EndDate.Before(date)
	}), nil
}

func (r reservationStore) filter(keep func(lending.Reservation) bool) []lending.Reservation {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matches := make([]lending.Reservation, 0)

	for _, id := range r.s.order {
		if reservation, ok := r.s.reservations[id]; ok && keep(reservation) {
			matches = append(matches, reservation)
		}
	}

	return matches
}
