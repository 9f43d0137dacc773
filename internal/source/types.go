package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

// NoFileID marks diagnostics that belong to no loaded file, such as a
// file that failed to load. It never resolves in a FileSet.
const NoFileID = ^FileID(0)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
	// FileNotNFC marks content that is not in Unicode normalization form C;
	// identifiers that look equal may then intern to different IDs.
	FileNotNFC
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content string
	Hash    [32]byte
	Flags   FileFlags
}

// Source returns the immutable view the lexer and position queries work on.
func (f *File) Source() Source {
	return Source{Content: f.Content, FileName: f.Path}
}
