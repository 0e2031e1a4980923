package ledger

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"

	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/shared"
	"golang.org/x/crypto/blake2b"
)

// HashAlgorithm names the digest used to derive transaction hashes
type HashAlgorithm string

const (
	HashMD5     HashAlgorithm = "md5"
	HashSHA256  HashAlgorithm = "sha256"
	HashBLAKE2b HashAlgorithm = "blake2b"
)

// DefaultHashAlgorithm keeps hashes compatible with records created by
// earlier versions of the ledger.
const DefaultHashAlgorithm = HashMD5

// Hasher derives transaction identities from ordered book lists.
//
// The digest input is the decimal ids concatenated in the order supplied,
// with no separator and no sorting: [1, 23] and [12, 3] collide, and
// [A, B] and [B, A] do not. Existing hashes depend on exactly this input.
type Hasher struct {
	algorithm HashAlgorithm
	newHash   func() (hash.Hash, error)
}

// NewHasher creates a hasher for the given algorithm
func NewHasher(algorithm HashAlgorithm) (*Hasher, error) {
	h := &Hasher{algorithm: algorithm}
	switch algorithm {
	case HashMD5:
		h.newHash = func() (hash.Hash, error) { return md5.New(), nil }
	case HashSHA256:
		h.newHash = func() (hash.Hash, error) { return sha256.New(), nil }
	case HashBLAKE2b:
		h.newHash = func() (hash.Hash, error) { return blake2b.New256(nil) }
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %q", algorithm)
	}
	return h, nil
}

// DefaultHasher returns the MD5 hasher
func DefaultHasher() *Hasher {
	h, _ := NewHasher(DefaultHashAlgorithm)
	return h
}

// Algorithm returns the configured digest name
func (h *Hasher) Algorithm() HashAlgorithm {
	return h.algorithm
}

// Compute returns the hex digest for the ordered book list.
// The list must be non-empty and every book must be persisted.
func (h *Hasher) Compute(books []catalog.Books) (string, error) {
	if err := validateBooks(books); err != nil {
		return "", err
	}

	ids := make([]uint64, len(books))
	for i := range books {
		ids[i] = books[i].ID
	}
	return h.computeIDs(ids)
}

func (h *Hasher) computeIDs(ids []uint64) (string, error) {
	digest, err := h.newHash()
	if err != nil {
		return "", fmt.Errorf("failed to initialize %s digest: %w", h.algorithm, err)
	}

	buf := make([]byte, 0, 20)
	for _, id := range ids {
		buf = strconv.AppendUint(buf[:0], id, 10)
		digest.Write(buf)
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// ComputeHash derives a transaction hash with the default algorithm
func ComputeHash(books []catalog.Books) (string, error) {
	return DefaultHasher().Compute(books)
}

func validateBooks(books []catalog.Books) error {
	if len(books) == 0 {
		return shared.NewValidationError("EMPTY_BOOK_LIST", "Transaction must contain at least one book")
	}
	for i := range books {
		if !books[i].IsPersisted() {
			return shared.NewTypeMismatchError("NOT_A_BOOK",
				fmt.Sprintf("Element %d is not a stored book", i))
		}
	}
	return nil
}
