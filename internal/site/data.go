package site

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidData is returned when feature data fails validation
var ErrInvalidData = errors.New("invalid site data")

// Data is the input of a site build
type Data struct {
	About    About     `yaml:"about"`
	Players  []Player  `yaml:"players"`
	Features []Feature `yaml:"features"`
}

// About is the site introduction used on the index and about pages
type About struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Player is one column of the support table
type Player struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Link is an external resource of a feature
type Link struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// Bug is a known issue of a feature
type Bug struct {
	Description string `yaml:"description"`
}

// Feature is one documented feature and its support matrix
type Feature struct {
	ID          string            `yaml:"id"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Notes       string            `yaml:"notes"`
	NotesByNum  map[string]string `yaml:"notes_by_num"`
	Spec        string            `yaml:"spec"`
	Links       []Link            `yaml:"links"`
	Subfeatures []string          `yaml:"subfeatures"`
	Bugs        []Bug             `yaml:"bugs"`
	Support     map[string]string `yaml:"support"` // player id -> "y", "n" or anything else for buggy
	Related     []string          `yaml:"related"` // feature ids
}

// NoteKeys returns the numbered note keys in numeric order
func (f Feature) NoteKeys() []string {
	keys := make([]string, 0, len(f.NotesByNum))
	for k := range f.NotesByNum {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}

// LoadData reads feature data from a YAML file
func LoadData(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()
	return DecodeData(f)
}

// DecodeData parses and validates YAML feature data
func DecodeData(r io.Reader) (*Data, error) {
	var data Data
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidData)
		}
		return nil, fmt.Errorf("failed to parse data: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Validate checks feature ids, titles and related references
func (d *Data) Validate() error {
	seen := make(map[string]bool, len(d.Features))
	for i, f := range d.Features {
		if f.ID == "" {
			return fmt.Errorf("%w: feature %d has no id", ErrInvalidData, i)
		}
		if f.Title == "" {
			return fmt.Errorf("%w: feature %q has no title", ErrInvalidData, f.ID)
		}
		if seen[f.ID] {
			return fmt.Errorf("%w: duplicate feature id %q", ErrInvalidData, f.ID)
		}
		seen[f.ID] = true
	}
	for _, f := range d.Features {
		for _, id := range f.Related {
			if !seen[id] {
				return fmt.Errorf("%w: feature %q relates to unknown feature %q", ErrInvalidData, f.ID, id)
			}
		}
	}
	return nil
}

// Feature returns the feature with the given id
func (d *Data) Feature(id string) (Feature, bool) {
	for _, f := range d.Features {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

// related resolves a feature's related ids in their listed order
func (d *Data) related(f Feature) []Feature {
	var out []Feature
	for _, id := range f.Related {
		if r, ok := d.Feature(id); ok {
			out = append(out, r)
		}
	}
	return out
}
