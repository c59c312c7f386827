package rans

import "sync"

// The universal system enumerates `.*`, every byte string. Ranking a
// text in one language and unranking the rank here (or the reverse)
// converts between a language and the shortest raw-byte spelling of the
// same number. Built lazily, once per process; it is immutable
// afterwards, so sharing is safe.
var (
	universalOnce sync.Once
	universal     *System
)

func universalSystem() *System {
	universalOnce.Do(func() {
		universal = MustCompile(".*")
	})
	return universal
}

// Compress returns the rank of text in this language, spelled in the
// universal byte language. The payload is the raw output of Rep: no
// framing, no header. Fails with ErrNotAcceptable when text is not in
// the language.
func (s *System) Compress(text []byte) ([]byte, error) {
	value, err := s.Val(text)
	if err != nil {
		return nil, err
	}
	return universalSystem().Rep(value)
}

// Decompress inverts Compress: the blob is ranked in the universal byte
// language and unranked here. Fails with ErrOutOfRange when the blob's
// rank exceeds a finite language.
func (s *System) Decompress(blob []byte) ([]byte, error) {
	value, err := universalSystem().Val(blob)
	if err != nil {
		return nil, err
	}
	return s.Rep(value)
}
