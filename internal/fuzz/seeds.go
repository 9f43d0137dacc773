package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// builtinSeeds cover the lexer edge cases even without testdata.
var builtinSeeds = []string{
	"",
	"func main() -> int { return 0; }\n",
	"let x = 0x_FF + 0b102 - 0o8;",
	"a<<=b>>c::d->e",
	"\"esc \\n\\t\\\\ \\\"q\\\" \\u{1F600}\"",
	"\"unterminated",
	"!",
	"@ # $ ~ `",
	"\xff\xfe\x00 invalid utf8",
	"名前 = \"世界\"; \u00e9t\u00e9",
	"99999999999999999999999999",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.un файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".un" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxSeedBytes {
		return input[:maxSeedBytes]
	}
	return input
}
