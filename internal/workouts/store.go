package workouts

import (
	"sort"
	"sync"
)

// Store holds the workouts of the current session, keyed strictly by date,
// so a date can never point at two workouts. Workout identifiers are kept as
// a secondary index, used by Upsert.
//
// All values going in and out are deep copies.
type Store struct {
	mu     sync.RWMutex
	byDate map[Date]Workout
	byID   map[string]Date
}

func NewStore() *Store {
	return &Store{
		byDate: make(map[Date]Workout),
		byID:   make(map[string]Date),
	}
}

// LookupByDate returns the workout stored for the exact date.
func (s *Store) LookupByDate(date Date) (*Workout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.byDate[date]
	if !ok {
		return nil, false
	}
	c := w.Clone()
	return &c, true
}

// HasWorkout reports whether a workout exists for the date.
func (s *Store) HasWorkout(date Date) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byDate[date]
	return ok
}

// LookupPreviousBefore returns the workout with the latest date strictly
// before the given date.
func (s *Store) LookupPreviousBefore(date Date) (*Workout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		prev  Workout
		found bool
	)
	for d, w := range s.byDate {
		if !d.Before(date) {
			continue
		}
		if !found || d.After(prev.Date) {
			prev = w
			found = true
		}
	}
	if !found {
		return nil, false
	}
	c := prev.Clone()
	return &c, true
}

// Upsert replaces the workout with the same identifier, else adds it.
// Whatever was stored under the workout's date is replaced as well.
func (s *Store) Upsert(w Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(w.Clone())
}

// upsertLocked indexes by id only when there is one; id-less workouts are
// known by their date alone.
func (s *Store) upsertLocked(w Workout) {
	if w.ID != "" {
		if oldDate, ok := s.byID[w.ID]; ok && oldDate != w.Date {
			// the workout moved to another date
			delete(s.byDate, oldDate)
		}
	}
	if existing, ok := s.byDate[w.Date]; ok && existing.ID != w.ID && existing.ID != "" {
		delete(s.byID, existing.ID)
	}
	s.byDate[w.Date] = w
	if w.ID != "" {
		s.byID[w.ID] = w.Date
	}
}

// Replace drops everything and loads the given workouts. If two of them share
// a date, the later one in the slice wins.
func (s *Store) Replace(ws []Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byDate = make(map[Date]Workout, len(ws))
	s.byID = make(map[string]Date, len(ws))
	for _, w := range ws {
		s.upsertLocked(w.Clone())
	}
}

// RecentN returns the n workouts with the latest dates, latest first.
func (s *Store) RecentN(n int) []Workout {
	if n <= 0 {
		return []Workout{}
	}
	all := s.All()
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// All returns every stored workout, latest first.
func (s *Store) All() []Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ws := make([]Workout, 0, len(s.byDate))
	for _, w := range s.byDate {
		ws = append(ws, w.Clone())
	}
	sort.Slice(ws, func(i, j int) bool {
		return ws[i].Date.After(ws[j].Date)
	})
	return ws
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byDate)
}

// HasID reports whether a workout with the identifier was committed.
func (s *Store) HasID(id string) bool {
	if id == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}
