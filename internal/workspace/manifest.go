package workspace

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Segment is one speech interval and its derived artifacts.
type Segment struct {
	Index       int
	StartMs     int
	EndMs       int
	Text        string
	DurationSec float64
	AudioPath   string
	ImagePath   string
	VideoPath   string
}

// Manifest is the ordered record of a run's segments.
type Manifest struct {
	Segments []Segment
}

// entry is the serialized form of a Segment. Keys are kept in sorted order.
type entry struct {
	Audio    string  `yaml:"audio"`
	Duration float64 `yaml:"duration"`
	Image    string  `yaml:"image"`
	Range    []int   `yaml:"range"`
	Text     string  `yaml:"text"`
	Video    string  `yaml:"video"`
}

// MarshalYAML writes the manifest as a mapping from index to entry.
func (m Manifest) MarshalYAML() (interface{}, error) {
	out := make(map[int]entry, len(m.Segments))
	for _, s := range m.Segments {
		if _, dup := out[s.Index]; dup {
			return nil, fmt.Errorf("duplicate segment index %d", s.Index)
		}
		out[s.Index] = entry{
			Audio:    s.AudioPath,
			Duration: s.DurationSec,
			Image:    s.ImagePath,
			Range:    []int{s.StartMs, s.EndMs},
			Text:     s.Text,
			Video:    s.VideoPath,
		}
	}
	return out, nil
}

// UnmarshalYAML reads the index-to-entry mapping back in index order.
func (m *Manifest) UnmarshalYAML(value *yaml.Node) error {
	var raw map[int]entry
	if err := value.Decode(&raw); err != nil {
		return err
	}

	segs := make([]Segment, 0, len(raw))
	for idx, e := range raw {
		if idx < 1 {
			return fmt.Errorf("segment index %d: indices start at 1", idx)
		}
		s := Segment{
			Index:       idx,
			Text:        e.Text,
			DurationSec: e.Duration,
			AudioPath:   e.Audio,
			ImagePath:   e.Image,
			VideoPath:   e.Video,
		}
		if len(e.Range) == 2 {
			s.StartMs, s.EndMs = e.Range[0], e.Range[1]
		}
		segs = append(segs, s)
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].Index < segs[j].Index })

	m.Segments = segs
	return nil
}

// SaveManifest writes m as <workspace root>/<name>.yaml and returns the path.
func SaveManifest(ws *Workspace, name string, m *Manifest) (string, error) {
	path := ws.ManifestPath(name)
	if err := WriteManifest(path, m); err != nil {
		return "", err
	}
	return path, nil
}

// WriteManifest serializes m to path through a temp file so a reader never
// sees a half-written manifest.
func WriteManifest(path string, m *Manifest) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest written by SaveManifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}
