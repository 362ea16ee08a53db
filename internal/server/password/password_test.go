package password

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/bailbridge/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheapParams keeps the bulk of the suite fast; the default cost is covered
// by TestHash_DefaultParamsFormat.
func cheapParams() Params {
	return Params{MemoryKiB: 64, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

func newHasher(t *testing.T, p Params) *Hasher {
	t.Helper()
	h, err := NewHasher(p)
	require.NoError(t, err)
	return h
}

func TestHash_DefaultParamsFormat(t *testing.T) {
	h := newHasher(t, DefaultParams())

	digest, err := h.Hash("correct-horse-battery-staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$argon2id$v=19$m=19456,t=2,p=1$"), digest)

	ok, err := h.Verify("correct-horse-battery-staple", digest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHash_RoundTrip(t *testing.T) {
	h := newHasher(t, cheapParams())

	for _, p := range []string{"", "a", "pässwörd ✓", strings.Repeat("x", 4096), "with\x00nul"} {
		digest, err := h.Hash(p)
		require.NoError(t, err)

		ok, err := h.Verify(p, digest)
		require.NoError(t, err)
		assert.True(t, ok, "plaintext %q should verify", p)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	h := newHasher(t, cheapParams())

	digest, err := h.Hash("correct-password")
	require.NoError(t, err)

	for _, other := range []string{"wrong-password", "correct-passwor", "correct-password ", ""} {
		ok, err := h.Verify(other, digest)
		require.NoError(t, err)
		assert.False(t, ok, "plaintext %q must not verify", other)
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	h := newHasher(t, cheapParams())

	d1, err := h.Hash("same-password")
	require.NoError(t, err)
	d2, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
	for _, d := range []string{d1, d2} {
		ok, err := h.Verify("same-password", d)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerify_MalformedDigest(t *testing.T) {
	h := newHasher(t, cheapParams())

	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"plaintext", "hunter2"},
		{"wrong algorithm", "$argon2i$v=19$m=64,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA"},
		{"bcrypt", "$2a$10$abcdefghijklmnopqrstuv"},
		{"too few parts", "$argon2id$v=19$m=64,t=1,p=1"},
		{"leading garbage", "x$argon2id$v=19$m=64,t=1,p=1$c2FsdA$aGFzaA"},
		{"bad version", "$argon2id$v=16$m=64,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaA"},
		{"unparsable version", "$argon2id$version$m=64,t=1,p=1$c2FsdA$aGFzaA"},
		{"unparsable params", "$argon2id$v=19$memory=64$c2FsdA$aGFzaA"},
		{"zero iterations", "$argon2id$v=19$m=64,t=0,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaA"},
		{"salt not base64", "$argon2id$v=19$m=64,t=1,p=1$!!!$aGFzaGhhc2hoYXNoaGFzaA"},
		{"hash not base64", "$argon2id$v=19$m=64,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$***"},
		{"short hash", "$argon2id$v=19$m=64,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("password", tt.digest)
			assert.False(t, ok)
			assert.ErrorIs(t, err, common.ErrMalformedDigest)
		})
	}
}

func TestVerify_RejectsOversizedCost(t *testing.T) {
	strong := newHasher(t, DefaultParams())
	weak := newHasher(t, cheapParams())

	digest, err := strong.Hash("pw")
	require.NoError(t, err)

	ok, err := weak.Verify("pw", digest)
	assert.False(t, ok)
	assert.ErrorIs(t, err, common.ErrMalformedDigest)
}

func TestVerify_AcceptsLowerCostDigest(t *testing.T) {
	old := newHasher(t, cheapParams())
	current := newHasher(t, DefaultParams())

	digest, err := old.Hash("pw")
	require.NoError(t, err)

	ok, err := current.Verify("pw", digest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHash_SaltFailure(t *testing.T) {
	h := newHasher(t, cheapParams())
	h.salt = func(int) ([]byte, error) { return nil, errors.New("entropy exhausted") }

	_, err := h.Hash("pw")
	assert.ErrorIs(t, err, common.ErrHashingFailure)
}

func TestNewHasher_InvalidParams(t *testing.T) {
	mutate := []func(*Params){
		func(p *Params) { p.MemoryKiB = 0 },
		func(p *Params) { p.Iterations = 0 },
		func(p *Params) { p.Parallelism = 0 },
		func(p *Params) { p.SaltLength = 8 },
		func(p *Params) { p.KeyLength = 4 },
		func(p *Params) { p.KeyLength = 1024 },
		func(p *Params) { p.Parallelism = 4; p.MemoryKiB = 16 },
	}
	for i, m := range mutate {
		p := cheapParams()
		m(&p)
		_, err := NewHasher(p)
		assert.ErrorIs(t, err, common.ErrHashingFailure, "case %d", i)
	}
}

func TestHasher_ConcurrentUse(t *testing.T) {
	h := newHasher(t, cheapParams())

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := strings.Repeat("p", i+1)
			d, err := h.Hash(p)
			if err != nil {
				errs <- err
				return
			}
			if ok, err := h.Verify(p, d); err != nil || !ok {
				errs <- errors.New("concurrent verify failed")
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
