package devsim

import "errors"

// A Storage keeps the data of the simulated DRAM.
//
// The storage manages its backing memory in units, similar to pages. Units
// never touched by Read or Write are not allocated, so a multi-gigabyte
// simulated DRAM costs almost nothing.
type Storage struct {
	unitSize uint64
	capacity uint64
	units    map[uint64][]byte
}

// ErrOutOfRange reports an access beyond the storage capacity.
var ErrOutOfRange = errors.New("devsim: access beyond storage capacity")

// NewStorage creates a storage object with the specified capacity in bytes.
func NewStorage(capacity uint64) *Storage {
	return &Storage{
		unitSize: 4096,
		capacity: capacity,
		units:    make(map[uint64][]byte),
	}
}

// Capacity returns the storage capacity in bytes.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) unitFor(addr uint64) ([]byte, error) {
	if addr >= s.capacity {
		return nil, ErrOutOfRange
	}

	base := addr - addr%s.unitSize
	unit, ok := s.units[base]
	if !ok {
		unit = make([]byte, s.unitSize)
		s.units[base] = unit
	}
	return unit, nil
}

// Read copies n bytes starting at addr.
func (s *Storage) Read(addr, n uint64) ([]byte, error) {
	res := make([]byte, n)

	offset := uint64(0)
	for offset < n {
		unit, err := s.unitFor(addr + offset)
		if err != nil {
			return nil, err
		}

		inUnit := (addr + offset) % s.unitSize
		chunk := s.unitSize - inUnit
		if left := n - offset; left < chunk {
			chunk = left
		}

		copy(res[offset:offset+chunk], unit[inUnit:inUnit+chunk])
		offset += chunk
	}

	return res, nil
}

// Write stores data starting at addr.
func (s *Storage) Write(addr uint64, data []byte) error {
	offset := uint64(0)
	for offset < uint64(len(data)) {
		unit, err := s.unitFor(addr + offset)
		if err != nil {
			return err
		}

		inUnit := (addr + offset) % s.unitSize
		chunk := s.unitSize - inUnit
		if left := uint64(len(data)) - offset; left < chunk {
			chunk = left
		}

		copy(unit[inUnit:inUnit+chunk], data[offset:offset+chunk])
		offset += chunk
	}

	return nil
}

// Scrub drops every allocated unit, returning the storage to all-zero
// contents.
func (s *Storage) Scrub() {
	s.units = make(map[uint64][]byte)
}
