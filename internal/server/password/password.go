package password

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bailbridge/internal/common"
	"golang.org/x/crypto/argon2"
)

const algorithm = "argon2id"

var b64 = base64.RawStdEncoding

// Hasher produces and verifies Argon2id digests. It holds no mutable state
// and is safe for concurrent use.
type Hasher struct {
	params Params
	salt   func(n int) ([]byte, error)
}

// NewHasher validates params and returns a Hasher using them for new digests.
func NewHasher(params Params) (*Hasher, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Hasher{params: params, salt: common.GenerateRandByteArray}, nil
}

// Params returns the cost used for new digests.
func (h *Hasher) Params() Params {
	return h.params
}

// Hash derives a digest for plaintext under a freshly generated salt.
// Plaintext content is never a reason to fail.
func (h *Hasher) Hash(plaintext string) (string, error) {
	salt, err := h.salt(int(h.params.SaltLength))
	if err != nil {
		return "", fmt.Errorf("%w: salt: %v", common.ErrHashingFailure, err)
	}

	key := argon2.IDKey(
		[]byte(plaintext),
		salt,
		h.params.Iterations,
		h.params.MemoryKiB,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithm,
		argon2.Version,
		h.params.MemoryKiB,
		h.params.Iterations,
		h.params.Parallelism,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	), nil
}

// Verify reports whether plaintext matches digest. A well-formed digest that
// does not match yields (false, nil); an unparsable one yields
// common.ErrMalformedDigest. The comparison runs in constant time.
func (h *Hasher) Verify(plaintext, digest string) (bool, error) {
	params, salt, expected, err := decode(digest)
	if err != nil {
		return false, err
	}
	if !h.params.withinBounds(params) {
		return false, fmt.Errorf("%w: cost parameters out of bounds", common.ErrMalformedDigest)
	}

	key := argon2.IDKey(
		[]byte(plaintext),
		salt,
		params.Iterations,
		params.MemoryKiB,
		params.Parallelism,
		params.KeyLength,
	)

	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}

func decode(digest string) (Params, []byte, []byte, error) {
	malformed := func(reason string) (Params, []byte, []byte, error) {
		return Params{}, nil, nil, fmt.Errorf("%w: %s", common.ErrMalformedDigest, reason)
	}

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" {
		return malformed("expected 6 '$'-separated fields")
	}
	if parts[1] != algorithm {
		return malformed("unsupported algorithm")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return malformed("unparsable version")
	}
	if version != argon2.Version {
		return malformed("unsupported version")
	}

	var mem, iter, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iter, &par); err != nil {
		return malformed("unparsable parameters")
	}
	if mem == 0 || iter == 0 || par == 0 || par > 255 {
		return malformed("zero or oversized parameters")
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return malformed("salt is not base64")
	}
	hash, err := b64.DecodeString(parts[5])
	if err != nil {
		return malformed("hash is not base64")
	}

	params := Params{
		MemoryKiB:   mem,
		Iterations:  iter,
		Parallelism: uint8(par), // #nosec G115 -- bounded to 255 above.
		SaltLength:  uint32(len(salt)),
		KeyLength:   uint32(len(hash)),
	}
	return params, salt, hash, nil
}
