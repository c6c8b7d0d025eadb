package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addLanguageSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.ql файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".ql" {
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
	if err != nil {
		return
	}
}

// addLanguageSeeds feeds one snippet per language construct so the fuzzer
// starts from grammatically interesting corners rather than noise.
func addLanguageSeeds(f *testing.F) {
	seeds := []string{
		"",
		"let x = 1;\n",
		"const greeting = 'hi';\n",
		"use core::log::info as log, warn;\n",
		"use std::io::read_file;\n",
		"module game {\n    let score = 0;\n    function bump(n) { score + n; }\n}\n",
		"class Point {\n    x: num;\n    y: num;\n    constructor(x, y) { this.x = x; this.y = y; }\n    static origin() { Point(0, 0); }\n    len() { this.x * this.x + this.y * this.y; }\n}\n",
		"function main() {\n    for i in 0..10 {\n        if i > 5 then { print(i); } else { }\n    }\n}\n",
		"/* nested /* block */ comment */ let y = 2;\n",
		"let s = \"double\"; let t = 'single';\n",
		"function f(a, b) { f(a..b, [a, b], a.b, a[b]); }\n",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
