// Package pptx renders slide sequences into PowerPoint files by
// rewriting a pre-made .pptx template: it introspects the template's
// slide layouts for title/body placeholders, removes the authored
// placeholder slide and appends one generated slide per entry, touching
// only the OOXML parts that track the slide list.
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/slidecraft/slidecraft/internal/domain/ports"
)

const (
	contentTypesPart     = "[Content_Types].xml"
	presentationPart     = "ppt/presentation.xml"
	presentationRelsPart = "ppt/_rels/presentation.xml.rels"
	slideLayoutPrefix    = "ppt/slideLayouts/slideLayout"
	slidePartPrefix      = "ppt/slides/slide"

	slideContentType  = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	slideRelationType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	layoutRelation    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
)

// Template is an opened .pptx file held in memory as its OOXML parts.
type Template struct {
	parts map[string][]byte
	order []string
}

// LayoutRef identifies a usable slide layout within the template.
type LayoutRef struct {
	// Part is the layout part name (e.g. "ppt/slideLayouts/slideLayout2.xml")
	Part string

	// TitleType is the layout's title placeholder type ("title" or "ctrTitle")
	TitleType string

	// BodyIdx is the idx attribute of the body placeholder, empty when
	// the layout declares none
	BodyIdx string
}

// OpenTemplate reads a .pptx template from disk
func OpenTemplate(templatePath string) (*Template, error) {
	reader, err := zip.OpenReader(templatePath)
	if err != nil {
		return nil, fmt.Errorf("opening template %s: %w", templatePath, err)
	}
	defer func() { _ = reader.Close() }()

	return openTemplate(&reader.Reader)
}

// OpenTemplateBytes reads a .pptx template from an in-memory archive
func OpenTemplateBytes(data []byte) (*Template, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening template archive: %w", err)
	}
	return openTemplate(reader)
}

func openTemplate(reader *zip.Reader) (*Template, error) {
	tpl := &Template{parts: make(map[string][]byte, len(reader.File))}

	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("reading template part %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading template part %s: %w", file.Name, err)
		}

		tpl.parts[file.Name] = data
		tpl.order = append(tpl.order, file.Name)
	}

	if _, ok := tpl.parts[presentationPart]; !ok {
		return nil, fmt.Errorf("not a presentation file: missing %s", presentationPart)
	}

	return tpl, nil
}

// FindContentLayout scans the template's layouts in order and returns
// the first one containing both a title and a body placeholder.
func (t *Template) FindContentLayout() (*LayoutRef, error) {
	for _, name := range t.layoutParts() {
		titleType, bodyIdx, hasTitle, hasBody := scanPlaceholders(t.parts[name])
		if hasTitle && hasBody {
			return &LayoutRef{Part: name, TitleType: titleType, BodyIdx: bodyIdx}, nil
		}
	}

	return nil, ports.ErrNoUsableLayout
}

// layoutParts returns the layout part names in numeric order
func (t *Template) layoutParts() []string {
	var layouts []string
	for name := range t.parts {
		if strings.HasPrefix(name, slideLayoutPrefix) && strings.HasSuffix(name, ".xml") {
			layouts = append(layouts, name)
		}
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layoutIndex(layouts[i]) < layoutIndex(layouts[j])
	})

	return layouts
}

func layoutIndex(name string) int {
	num := strings.TrimSuffix(strings.TrimPrefix(name, slideLayoutPrefix), ".xml")
	n, _ := strconv.Atoi(num)
	return n
}

// scanPlaceholders walks a layout's XML looking for p:ph elements
func scanPlaceholders(data []byte) (titleType, bodyIdx string, hasTitle, hasBody bool) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			return titleType, bodyIdx, hasTitle, hasBody
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "ph" {
			continue
		}

		var phType, phIdx string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "type":
				phType = attr.Value
			case "idx":
				phIdx = attr.Value
			}
		}

		switch phType {
		case "title", "ctrTitle":
			if !hasTitle {
				hasTitle = true
				titleType = phType
			}
		case "body":
			if !hasBody {
				hasBody = true
				bodyIdx = phIdx
			}
		}
	}
}

// SlideCount returns the number of slides currently in the deck
func (t *Template) SlideCount() int {
	return len(t.sldIDEntries())
}

var sldIDPattern = regexp.MustCompile(`<p:sldId\b[^>]*/>`)

type sldIDEntry struct {
	raw string
	id  int
	rID string
}

var (
	idAttrPattern  = regexp.MustCompile(`\bid="(\d+)"`)
	rIDAttrPattern = regexp.MustCompile(`\br:id="([^"]+)"`)
)

// sldIDEntries parses the slide id list from presentation.xml
func (t *Template) sldIDEntries() []sldIDEntry {
	matches := sldIDPattern.FindAllString(string(t.parts[presentationPart]), -1)

	entries := make([]sldIDEntry, 0, len(matches))
	for _, raw := range matches {
		entry := sldIDEntry{raw: raw}
		if m := idAttrPattern.FindStringSubmatch(raw); m != nil {
			entry.id, _ = strconv.Atoi(m[1])
		}
		if m := rIDAttrPattern.FindStringSubmatch(raw); m != nil {
			entry.rID = m[1]
		}
		entries = append(entries, entry)
	}

	return entries
}

// RemoveAuthoredSlide drops the deck's single pre-existing slide: the
// part itself, its relationships, its content-type override and its
// slide-list entry. It is a no-op unless exactly one slide exists
// (templates commonly ship with one authored placeholder slide).
func (t *Template) RemoveAuthoredSlide() error {
	entries := t.sldIDEntries()
	if len(entries) != 1 {
		return nil
	}
	entry := entries[0]

	target, err := t.removeRelationship(entry.rID)
	if err != nil {
		return err
	}

	partName := resolveRelTarget("ppt", target)
	t.removePart(partName)
	t.removePart(slideRelsPart(partName))
	t.removeContentTypeOverride(partName)

	presentation := string(t.parts[presentationPart])
	t.parts[presentationPart] = []byte(strings.Replace(presentation, entry.raw, "", 1))

	return nil
}

// AddSlide appends a generated slide using the given layout
func (t *Template) AddSlide(layout *LayoutRef, title string, bullets []string, bodyFontSize int) error {
	slideNum := t.nextSlideNumber()
	partName := fmt.Sprintf("%s%d.xml", slidePartPrefix, slideNum)

	rID, err := t.addRelationship(slideRelationType, relTargetFrom("ppt", partName))
	if err != nil {
		return err
	}

	slideXML := buildSlideXML(layout, title, bullets, bodyFontSize)
	t.setPart(partName, []byte(slideXML))

	relsXML := buildSlideRelsXML(relTargetFrom(path.Dir(partName), layout.Part))
	t.setPart(slideRelsPart(partName), []byte(relsXML))

	t.addContentTypeOverride(partName, slideContentType)

	return t.appendSldID(rID)
}

// WriteFile writes the modified deck to outputPath
func (t *Template) WriteFile(outputPath string) error {
	file, err := os.Create(outputPath) // #nosec G304 - destination chosen by the caller
	if err != nil {
		return fmt.Errorf("creating deck file %s: %w", outputPath, err)
	}

	if err := t.Write(file); err != nil {
		_ = file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing deck file %s: %w", outputPath, err)
	}

	return nil
}

// Write serializes the deck archive, original parts first in their
// original order, generated parts after
func (t *Template) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	for _, name := range t.order {
		data, ok := t.parts[name]
		if !ok {
			continue // part was removed
		}
		entry, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("writing deck part %s: %w", name, err)
		}
		if _, err := entry.Write(data); err != nil {
			return fmt.Errorf("writing deck part %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing deck archive: %w", err)
	}

	return nil
}

// setPart stores a part, tracking insertion order for new parts
func (t *Template) setPart(name string, data []byte) {
	if _, exists := t.parts[name]; !exists {
		t.order = append(t.order, name)
	}
	t.parts[name] = data
}

// removePart drops a part from the archive and the write order, so a
// later part with the same name is not written twice
func (t *Template) removePart(name string) {
	delete(t.parts, name)
	for i, n := range t.order {
		if n == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// nextSlideNumber returns one past the highest existing slide number
func (t *Template) nextSlideNumber() int {
	max := 0
	for name := range t.parts {
		if !strings.HasPrefix(name, slidePartPrefix) || !strings.HasSuffix(name, ".xml") {
			continue
		}
		num := strings.TrimSuffix(strings.TrimPrefix(name, slidePartPrefix), ".xml")
		if n, err := strconv.Atoi(num); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

var relationshipPattern = regexp.MustCompile(`<Relationship\b[^>]*/>`)

var (
	relIDPattern     = regexp.MustCompile(`\bId="([^"]+)"`)
	relTargetPattern = regexp.MustCompile(`\bTarget="([^"]+)"`)
)

// addRelationship registers a new relationship in the presentation rels
// part and returns its rId
func (t *Template) addRelationship(relType, target string) (string, error) {
	rels, ok := t.parts[presentationRelsPart]
	if !ok {
		return "", fmt.Errorf("template missing %s", presentationRelsPart)
	}

	maxID := 0
	for _, m := range relIDPattern.FindAllStringSubmatch(string(rels), -1) {
		if n, err := strconv.Atoi(strings.TrimPrefix(m[1], "rId")); err == nil && n > maxID {
			maxID = n
		}
	}
	rID := fmt.Sprintf("rId%d", maxID+1)

	element := fmt.Sprintf(`<Relationship Id="%s" Type="%s" Target="%s"/>`, rID, relType, target)
	updated := strings.Replace(string(rels), "</Relationships>", element+"</Relationships>", 1)
	if updated == string(rels) {
		return "", fmt.Errorf("malformed relationships part %s", presentationRelsPart)
	}

	t.parts[presentationRelsPart] = []byte(updated)
	return rID, nil
}

// removeRelationship deletes a relationship by rId and returns its target
func (t *Template) removeRelationship(rID string) (string, error) {
	rels := string(t.parts[presentationRelsPart])

	for _, raw := range relationshipPattern.FindAllString(rels, -1) {
		m := relIDPattern.FindStringSubmatch(raw)
		if m == nil || m[1] != rID {
			continue
		}

		target := ""
		if tm := relTargetPattern.FindStringSubmatch(raw); tm != nil {
			target = tm[1]
		}

		t.parts[presentationRelsPart] = []byte(strings.Replace(rels, raw, "", 1))
		return target, nil
	}

	return "", fmt.Errorf("relationship %s not found in %s", rID, presentationRelsPart)
}

// addContentTypeOverride registers the content type for a new part
func (t *Template) addContentTypeOverride(partName, contentType string) {
	types := string(t.parts[contentTypesPart])
	element := fmt.Sprintf(`<Override PartName="/%s" ContentType="%s"/>`, partName, contentType)
	t.parts[contentTypesPart] = []byte(strings.Replace(types, "</Types>", element+"</Types>", 1))
}

// removeContentTypeOverride drops the override for a removed part
func (t *Template) removeContentTypeOverride(partName string) {
	types := string(t.parts[contentTypesPart])
	pattern := regexp.MustCompile(`<Override\b[^>]*PartName="/` + regexp.QuoteMeta(partName) + `"[^>]*/>`)
	t.parts[contentTypesPart] = []byte(pattern.ReplaceAllString(types, ""))
}

// appendSldID adds a slide-list entry referencing the relationship
func (t *Template) appendSldID(rID string) error {
	presentation := string(t.parts[presentationPart])

	maxID := 255 // PowerPoint numbers slide ids from 256
	for _, entry := range t.sldIDEntries() {
		if entry.id > maxID {
			maxID = entry.id
		}
	}

	element := fmt.Sprintf(`<p:sldId id="%d" r:id="%s"/>`, maxID+1, rID)

	switch {
	case strings.Contains(presentation, "</p:sldIdLst>"):
		presentation = strings.Replace(presentation, "</p:sldIdLst>", element+"</p:sldIdLst>", 1)
	case strings.Contains(presentation, "<p:sldIdLst/>"):
		presentation = strings.Replace(presentation, "<p:sldIdLst/>", "<p:sldIdLst>"+element+"</p:sldIdLst>", 1)
	default:
		// Templates without a slide list keep it after sldMasterIdLst
		marker := "</p:sldMasterIdLst>"
		if !strings.Contains(presentation, marker) {
			return fmt.Errorf("template %s has no slide id list", presentationPart)
		}
		presentation = strings.Replace(presentation, marker, marker+"<p:sldIdLst>"+element+"</p:sldIdLst>", 1)
	}

	t.parts[presentationPart] = []byte(presentation)
	return nil
}

// slideRelsPart returns the relationships part name for a slide part
func slideRelsPart(partName string) string {
	return path.Join(path.Dir(partName), "_rels", path.Base(partName)+".rels")
}

// relTargetFrom expresses a part name as a relationship target relative
// to the given base directory
func relTargetFrom(baseDir, partName string) string {
	base := strings.Split(path.Clean(baseDir), "/")
	part := strings.Split(path.Clean(partName), "/")

	shared := 0
	for shared < len(base) && shared < len(part)-1 && base[shared] == part[shared] {
		shared++
	}

	return strings.Repeat("../", len(base)-shared) + strings.Join(part[shared:], "/")
}

// resolveRelTarget resolves a relationship target against its base dir
func resolveRelTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(baseDir, target))
}
