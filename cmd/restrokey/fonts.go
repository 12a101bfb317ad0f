package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/font/opentype"
)

// bengaliFontFiles are Windows system fonts with Bengali coverage, in
// preference order. Nirmala UI ships with every Windows since 8.
var bengaliFontFiles = []string{
	"Nirmala.ttf",
	"NirmalaB.ttf",
	"vrinda.ttf",
	"vrindab.ttf",
}

// loadFontCollection returns the Go fonts plus whatever Bengali system
// fonts can be found. Without a Bengali face the preview renders
// tofu, so a miss is logged but not fatal.
func loadFontCollection(log *slog.Logger) []font.FontFace {
	collection := gofont.Collection()

	dir := fontDir()
	if dir == "" {
		return collection
	}

	loaded := 0
	for _, name := range bengaliFontFiles {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		faces, err := opentype.ParseCollection(data)
		if err != nil {
			log.Warn("unparsable font file", "font", name, "error", err)
			continue
		}
		collection = append(collection, faces...)
		loaded++
	}
	if loaded == 0 {
		log.Warn("no Bengali font found, preview will not render glyphs", "dir", dir)
	}
	return collection
}

func fontDir() string {
	if runtime.GOOS != "windows" {
		return ""
	}
	windir := os.Getenv("WINDIR")
	if windir == "" {
		windir = `C:\Windows`
	}
	return filepath.Join(windir, "Fonts")
}
