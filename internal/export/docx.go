package export

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Layout constants, in twentieths of a point (dxa) unless noted.
const (
	columnWidth   = 4500
	tableWidth    = 2 * columnWidth
	cellMargin    = 200
	cellSpacing   = 100 // space after each problem paragraph
	headerSpacing = 200
	fontName      = "Calibri"
	fontSize      = 24 // half-points, 12pt
	indexColor    = "808080"
	textColor     = "000000"
	ruleColor     = "D3D3D3"
	ruleSize      = 6 // eighths of a point
)

// AnswerBlank follows every problem, leaving room for the answer.
const AnswerBlank = " ......."

// Options controls the document text that does not come from problems.
type Options struct {
	// Locale picks the header line and file name ("vi" or "en").
	Locale string
}

var headers = map[string]string{
	"vi": "Họ và tên: ............................................         Ngày: ............................",
	"en": "Name: ............................................         Date: ............................",
}

// Header returns the name/date line for locale.
func Header(locale string) string {
	if h, ok := headers[locale]; ok {
		return h
	}
	return headers["vi"]
}

// FileName returns the default download name for locale.
func FileName(locale string) string {
	if locale == "en" {
		return "math-worksheet.docx"
	}
	return "bai-tap-toan.docx"
}

// WriteDOCX writes problems as a two-column Word document to w.
func WriteDOCX(w io.Writer, problems []string, opts Options) error {
	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", documentXML(Pair(problems), Header(opts.Locale))},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := io.WriteString(f, p.body); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish docx: %w", err)
	}
	return nil
}

func documentXML(rows []Row, header string) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`)

	fmt.Fprintf(&b, `<w:p><w:pPr><w:pStyle w:val="HeaderStyle"/></w:pPr><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, escape(header))
	fmt.Fprintf(&b, `<w:p><w:pPr><w:spacing w:after="%d"/></w:pPr><w:r><w:t xml:space="preserve"> </w:t></w:r></w:p>`, headerSpacing)

	b.WriteString(`<w:tbl><w:tblPr>`)
	fmt.Fprintf(&b, `<w:tblW w:w="%d" w:type="dxa"/>`, tableWidth)
	b.WriteString(`<w:tblBorders>`)
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(&b, `<w:%s w:val="nil"/>`, side)
	}
	b.WriteString(`</w:tblBorders><w:tblLayout w:type="fixed"/></w:tblPr>`)
	fmt.Fprintf(&b, `<w:tblGrid><w:gridCol w:w="%d"/><w:gridCol w:w="%d"/></w:tblGrid>`, columnWidth, columnWidth)

	for _, row := range rows {
		b.WriteString(`<w:tr>`)
		writeCell(&b, &row.Left)
		writeCell(&b, row.Right)
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)

	// A4 with one-inch margins.
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

// writeCell writes one table cell. A nil or blank cell holds an empty
// paragraph so the row keeps two columns.
func writeCell(b *strings.Builder, c *Cell) {
	b.WriteString(`<w:tc><w:tcPr>`)
	fmt.Fprintf(b, `<w:tcW w:w="%d" w:type="dxa"/>`, columnWidth)
	b.WriteString(`<w:tcBorders><w:top w:val="nil"/><w:left w:val="nil"/><w:bottom w:val="nil"/><w:right w:val="nil"/></w:tcBorders>`)
	fmt.Fprintf(b, `<w:tcMar><w:left w:w="%d" w:type="dxa"/><w:right w:w="%d" w:type="dxa"/></w:tcMar>`, cellMargin, cellMargin)
	b.WriteString(`<w:vAlign w:val="center"/></w:tcPr>`)

	if c == nil || c.Text == "" {
		b.WriteString(`<w:p/></w:tc>`)
		return
	}

	b.WriteString(`<w:p><w:pPr>`)
	fmt.Fprintf(b, `<w:pBdr><w:bottom w:val="single" w:sz="%d" w:space="1" w:color="%s"/></w:pBdr>`, ruleSize, ruleColor)
	fmt.Fprintf(b, `<w:spacing w:after="%d"/></w:pPr>`, cellSpacing)
	writeRun(b, fmt.Sprintf("%d. ", c.Index), indexColor)
	writeRun(b, c.Text+AnswerBlank, textColor)
	b.WriteString(`</w:p></w:tc>`)
}

func writeRun(b *strings.Builder, text, color string) {
	fmt.Fprintf(b, `<w:r><w:rPr><w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:cs="%[1]s"/><w:color w:val="%[2]s"/><w:sz w:val="%[3]d"/><w:szCs w:val="%[3]d"/></w:rPr>`,
		fontName, color, fontSize)
	fmt.Fprintf(b, `<w:t xml:space="preserve">%s</w:t></w:r>`, escape(text))
}

func escape(s string) string {
	var b strings.Builder
	// EscapeText only fails when the writer does.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const rootRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const stylesXML = xml.Header + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:eastAsia="Calibri" w:cs="Calibri"/><w:sz w:val="24"/><w:szCs w:val="24"/><w:lang w:val="vi-VN"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault/></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:customStyle="1" w:styleId="HeaderStyle"><w:name w:val="Header Style"/><w:basedOn w:val="Normal"/>` +
	`<w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="24"/><w:szCs w:val="24"/></w:rPr></w:style>` +
	`</w:styles>`
