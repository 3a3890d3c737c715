package site

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
)

// Feature section ids. Tabs and views prefix them with tabPrefix and viewPrefix.
const (
	sectionNotes       = "notes"
	sectionResources   = "resources"
	sectionSubfeatures = "subfeatures"
	sectionKnownIssues = "known_issues"

	tabPrefix  = "tab-"
	viewPrefix = "view-"
)

// DateLayout is the footer date format
const DateLayout = "January 2, 2006"

// Tab is one entry of the feature navigation
type Tab struct {
	ID    string
	Name  string
	Count int
}

// ViewElement is one item inside a feature view
type ViewElement struct {
	Label string
	Text  string
}

// View is the body behind a feature tab
type View struct {
	ID       string
	Elements []ViewElement
}

// Navigation builds the feature tabs. A tab without content is left out.
func Navigation(f Feature) []Tab {
	var tabs []Tab

	notes := len(f.NotesByNum)
	if f.Notes != "" {
		notes++
	}
	if notes > 0 {
		tabs = append(tabs, Tab{ID: tabPrefix + sectionNotes, Name: "Notes", Count: notes})
	}

	resources := len(f.Links)
	if f.Spec != "" {
		resources++
	}
	if resources > 0 {
		tabs = append(tabs, Tab{ID: tabPrefix + sectionResources, Name: "Resources", Count: resources})
	}

	if n := len(f.Subfeatures); n > 0 {
		tabs = append(tabs, Tab{ID: tabPrefix + sectionSubfeatures, Name: "Sub-Features", Count: n})
	}
	if n := len(f.Bugs); n > 0 {
		tabs = append(tabs, Tab{ID: tabPrefix + sectionKnownIssues, Name: "Known Issues", Count: n})
	}
	return tabs
}

// Notes lists the free note first, then the numbered notes
func Notes(f Feature) View {
	v := View{ID: viewPrefix + sectionNotes}
	if f.Notes != "" {
		v.Elements = append(v.Elements, ViewElement{Text: f.Notes})
	}
	for _, k := range f.NoteKeys() {
		v.Elements = append(v.Elements, ViewElement{Label: k, Text: f.NotesByNum[k]})
	}
	return v
}

// Resources lists the links as markdown, with the spec link last
func Resources(f Feature) View {
	v := View{ID: viewPrefix + sectionResources}
	for _, l := range f.Links {
		v.Elements = append(v.Elements, ViewElement{Text: fmt.Sprintf("[%s](%s)", l.Title, l.URL)})
	}
	if f.Spec != "" {
		v.Elements = append(v.Elements, ViewElement{Text: fmt.Sprintf("[Spec](%s)", f.Spec)})
	}
	return v
}

// Subfeatures lists the sub-features
func Subfeatures(f Feature) View {
	v := View{ID: viewPrefix + sectionSubfeatures}
	for _, s := range f.Subfeatures {
		v.Elements = append(v.Elements, ViewElement{Text: s})
	}
	return v
}

// Bugs lists the known issues
func Bugs(f Feature) View {
	v := View{ID: viewPrefix + sectionKnownIssues}
	for _, b := range f.Bugs {
		v.Elements = append(v.Elements, ViewElement{Text: b.Description})
	}
	return v
}

// FeatureIcon renders the support marker of one player
func FeatureIcon(support map[string]string, player string) template.HTML {
	switch support[player] {
	case "y":
		return `<span class="icon icon__check" alt="Supported"></span>`
	case "n":
		return `<span class="icon icon__block" alt="Not supported"></span>`
	default:
		return `<span class="icon icon__bug" alt="Bug"></span>`
	}
}

// Markdown converts markdown text to HTML.
// Raw HTML in the source is dropped by goldmark's default renderer.
func Markdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Ternary returns a when cond holds, b otherwise
func Ternary(cond bool, a, b any) any {
	if cond {
		return a
	}
	return b
}

// FormatDate formats t for the footer
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict expects key/value pairs, got %d arguments", len(pairs))
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[k] = pairs[i+1]
	}
	return m, nil
}

// funcMap wires the helpers into templates. now supplies the build date.
func funcMap(now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"featuresNavigation":  Navigation,
		"featuresNotes":       Notes,
		"featuresResources":   Resources,
		"featuresSubfeatures": Subfeatures,
		"featuresBugs":        Bugs,
		"featureIcon":         FeatureIcon,
		"markdown":            Markdown,
		"ternary":             Ternary,
		"formatDate":          func() string { return FormatDate(now()) },
		"dict":                dict,
	}
}
