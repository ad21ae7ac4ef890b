package pptx

import (
	"fmt"
	"strings"
)

const slideXMLHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n"

const (
	drawingNS      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	relationshipNS = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	presentationNS = "http://schemas.openxmlformats.org/presentationml/2006/main"
	packageRelsNS  = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// buildSlideXML produces the slide part for one generated slide: a title
// shape and a body shape whose placeholders bind to the chosen layout.
func buildSlideXML(layout *LayoutRef, title string, bullets []string, bodyFontSize int) string {
	var b strings.Builder

	b.WriteString(slideXMLHeader)
	fmt.Fprintf(&b, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, drawingNS, relationshipNS, presentationNS)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr/>`)

	writeTitleShape(&b, layout.TitleType, title)
	writeBodyShape(&b, layout.BodyIdx, bullets, bodyFontSize)

	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)

	return b.String()
}

// writeTitleShape emits the title placeholder shape
func writeTitleShape(b *strings.Builder, titleType, title string) {
	if titleType == "" {
		titleType = "title"
	}

	b.WriteString(`<p:sp><p:nvSpPr>`)
	b.WriteString(`<p:cNvPr id="2" name="Title 1"/>`)
	b.WriteString(`<p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`)
	fmt.Fprintf(b, `<p:nvPr><p:ph type="%s"/></p:nvPr>`, titleType)
	b.WriteString(`</p:nvSpPr><p:spPr/>`)
	b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)
	fmt.Fprintf(b, `<a:p><a:r><a:rPr lang="en-US" dirty="0"/><a:t>%s</a:t></a:r></a:p>`, escapeXML(title))
	b.WriteString(`</p:txBody></p:sp>`)
}

// writeBodyShape emits the body placeholder shape with one paragraph per
// bullet at outline level 0
func writeBodyShape(b *strings.Builder, bodyIdx string, bullets []string, fontSize int) {
	b.WriteString(`<p:sp><p:nvSpPr>`)
	b.WriteString(`<p:cNvPr id="3" name="Content 2"/>`)
	b.WriteString(`<p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`)
	if bodyIdx != "" {
		fmt.Fprintf(b, `<p:nvPr><p:ph type="body" idx="%s"/></p:nvPr>`, escapeXML(bodyIdx))
	} else {
		b.WriteString(`<p:nvPr><p:ph type="body"/></p:nvPr>`)
	}
	b.WriteString(`</p:nvSpPr><p:spPr/>`)
	b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)

	for _, bullet := range bullets {
		fmt.Fprintf(b, `<a:p><a:pPr lvl="0"/><a:r><a:rPr lang="en-US" sz="%d" dirty="0"/><a:t>%s</a:t></a:r></a:p>`,
			fontSize, escapeXML(bullet))
	}

	b.WriteString(`</p:txBody></p:sp>`)
}

// buildSlideRelsXML produces the relationships part binding a generated
// slide to its layout
func buildSlideRelsXML(layoutTarget string) string {
	var b strings.Builder
	b.WriteString(slideXMLHeader)
	fmt.Fprintf(&b, `<Relationships xmlns="%s">`, packageRelsNS)
	fmt.Fprintf(&b, `<Relationship Id="rId1" Type="%s" Target="%s"/>`, layoutRelation, escapeXML(layoutTarget))
	b.WriteString(`</Relationships>`)
	return b.String()
}

// escapeXML escapes text for embedding in XML character data and
// attribute values
func escapeXML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
