// Package media routes behavior by media category. A Kind is resolved once
// from a file extension and carries its canonical extension and workspace
// directory name.
package media

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedExtension is returned when a file extension maps to no Kind.
var ErrUnsupportedExtension = errors.New("unsupported media extension")

// Kind is a media category.
type Kind int

const (
	Unknown Kind = iota
	Video
	Audio
	Image
	Document
)

type kindInfo struct {
	name  string
	ext   string
	dir   string
	alias []string
}

var kinds = map[Kind]kindInfo{
	Video:    {name: "video", ext: ".webm", dir: "videos", alias: []string{".mp4", ".mov", ".mkv", ".avi", ".m4v", ".flv"}},
	Audio:    {name: "audio", ext: ".wav", dir: "sounds"},
	Image:    {name: "image", ext: ".png", dir: "images"},
	Document: {name: "document", ext: ".yaml"},
}

// WorkspaceKinds are the kinds that get their own directory in a workspace,
// in creation order.
var WorkspaceKinds = []Kind{Video, Audio, Image}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return "unknown"
}

// Ext is the canonical extension written for this kind, including the dot.
func (k Kind) Ext() string { return kinds[k].ext }

// Dir is the workspace subdirectory for this kind, empty when it has none.
func (k Kind) Dir() string { return kinds[k].dir }

// FileName builds "<kind><index><ext>", e.g. "video3.webm".
func (k Kind) FileName(index int) string {
	return fmt.Sprintf("%s%d%s", k.String(), index, k.Ext())
}

// KindOf resolves the Kind of path from its extension, case-insensitively.
func KindOf(path string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for k, info := range kinds {
		if ext == info.ext {
			return k, nil
		}
		for _, a := range info.alias {
			if ext == a {
				return k, nil
			}
		}
	}
	return Unknown, fmt.Errorf("%w %q: use one of %s", ErrUnsupportedExtension, ext, strings.Join(SupportedExtensions(), ", "))
}

// SupportedExtensions lists every recognized input extension.
func SupportedExtensions() []string {
	var out []string
	for _, k := range []Kind{Video, Audio, Image, Document} {
		out = append(out, kinds[k].ext)
		out = append(out, kinds[k].alias...)
	}
	return out
}

// IsExportable reports whether k can drive a fresh export.
func (k Kind) IsExportable() bool {
	return k == Video || k == Audio
}
