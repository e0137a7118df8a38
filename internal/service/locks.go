package service

import "sync"

// HotelLocks is a keyed mutex with one lock per hotel id.  Bookings and
// cancellations on the same hotel run one at a time inside this process;
// the SELECT ... FOR UPDATE in the booking transaction covers other
// processes.  Entries are dropped once nobody holds or waits for them.
type HotelLocks struct {
	mu    sync.Mutex
	locks map[string]*hotelLock
}

type hotelLock struct {
	mu   sync.Mutex
	refs int
}

func NewHotelLocks() *HotelLocks {
	return &HotelLocks{locks: make(map[string]*hotelLock)}
}

// Lock blocks until the hotel's lock is held and returns its release func.
func (l *HotelLocks) Lock(hotelID string) (unlock func()) {
	l.mu.Lock()
	hl, ok := l.locks[hotelID]
	if !ok {
		hl = &hotelLock{}
		l.locks[hotelID] = hl
	}
	hl.refs++
	l.mu.Unlock()

	hl.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			hl.mu.Unlock()
			l.mu.Lock()
			hl.refs--
			if hl.refs == 0 {
				delete(l.locks, hotelID)
			}
			l.mu.Unlock()
		})
	}
}

// Len reports how many hotels currently have a lock entry.
func (l *HotelLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
