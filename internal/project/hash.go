package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш, совместим с source.File.Hash.
type Digest [32]byte

// Combine строит агрегированный ключ: H( schema || unit1 || unit2 ... ).
// Порядок частей должен быть детерминированным.
func Combine(first Digest, rest ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(first[:])
	for _, d := range rest {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// HashBytes хеширует произвольный блок, например текст манифеста.
func HashBytes(data []byte) Digest {
	return sha256.Sum256(data)
}
