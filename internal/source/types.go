package source

type (
	// FileID uniquely identifies a source unit within a FileSet.
	FileID uint32
	// FileFlags encodes normalization metadata about a source unit.
	FileFlags uint8
)

const (
	// FileVirtual marks a unit added from memory (test, stdin) rather than disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures content and derived metadata for a single source unit.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n', для бинпоиска строки
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position, both components 1-based.
type LineCol struct {
	Line uint32
	Col  uint32
}
