package password

import (
	"fmt"

	"github.com/dmitrijs2005/bailbridge/internal/common"
)

// Params controls Argon2id cost. MemoryKiB is in KiB as argon2.IDKey expects.
type Params struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

const (
	minSaltLength = 16
	minKeyLength  = 16
	maxKeyLength  = 128
)

// DefaultParams returns the production cost: 19 MiB, two passes, one lane.
func DefaultParams() Params {
	return Params{
		MemoryKiB:   19 * 1024,
		Iterations:  2,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Validate rejects parameter sets that would produce a weak or broken digest.
func (p Params) Validate() error {
	switch {
	case p.MemoryKiB < 8*uint32(p.Parallelism) || p.MemoryKiB == 0:
		return fmt.Errorf("%w: memory %d KiB too small", common.ErrHashingFailure, p.MemoryKiB)
	case p.Iterations == 0:
		return fmt.Errorf("%w: iterations must be positive", common.ErrHashingFailure)
	case p.Parallelism == 0:
		return fmt.Errorf("%w: parallelism must be positive", common.ErrHashingFailure)
	case p.SaltLength < minSaltLength:
		return fmt.Errorf("%w: salt length %d below %d bytes", common.ErrHashingFailure, p.SaltLength, minSaltLength)
	case p.KeyLength < minKeyLength || p.KeyLength > maxKeyLength:
		return fmt.Errorf("%w: key length %d out of range", common.ErrHashingFailure, p.KeyLength)
	}
	return nil
}

// withinBounds refuses digests whose embedded cost is far above ours, so a
// tampered record cannot make a single login burn unbounded CPU or memory.
func (p Params) withinBounds(got Params) bool {
	if got.MemoryKiB > p.MemoryKiB*4 {
		return false
	}
	if got.Iterations > p.Iterations*4 {
		return false
	}
	if got.Parallelism > p.Parallelism*4 {
		return false
	}
	if got.SaltLength < 8 || got.SaltLength > 64 {
		return false
	}
	if got.KeyLength < minKeyLength || got.KeyLength > maxKeyLength {
		return false
	}
	return true
}
