// Package ingest turns raw markdown, plain text or PDF input into a Chapter
// with section boundaries, and validates analysis requests before a run.
package ingest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
)

type Format string

const (
	FormatAuto     Format = "auto"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatPDF      Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt", "plain":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// Input is raw chapter material. Data holds file bytes (required for PDF);
// Text is used for markdown and plain text when Data is empty.
type Input struct {
	Title    string
	Name     string
	Format   Format
	Text     string
	Data     []byte
	Domain   string
	Metadata domain.ChapterMetadata
}

var (
	atxHeadingRe      = regexp.MustCompile(`^(#{1,6})[ \t]+(.+?)[ \t]*#*[ \t]*$`)
	numberedHeadingRe = regexp.MustCompile(`^(\d{1,2}(?:\.\d{1,2}){0,3})\.?[ \t]+(\p{Lu}[^.!?]{0,100})$`)
	fenceRe           = regexp.MustCompile("^(```|~~~)")
	markdownHintRe    = regexp.MustCompile(`(?m)^#{1,6}[ \t]+\S`)
)

// DetectFormat guesses the format from the file name, then from the bytes.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".mdx":
		return FormatMarkdown
	case ".pdf":
		return FormatPDF
	case ".txt", ".text":
		return FormatText
	}
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return FormatPDF
	}
	if markdownHintRe.Match(data) {
		return FormatMarkdown
	}
	return FormatText
}

// Build produces a chapter from in. The chapter id is derived from the text.
func Build(in Input) (domain.Chapter, error) {
	format := in.Format
	if format == "" || format == FormatAuto {
		data := in.Data
		if len(data) == 0 {
			data = []byte(in.Text)
		}
		format = DetectFormat(in.Name, data)
	}

	var text string
	switch format {
	case FormatPDF:
		if len(in.Data) == 0 {
			return domain.Chapter{}, fmt.Errorf("pdf input has no data")
		}
		t, err := PDFText(bytes.NewReader(in.Data), int64(len(in.Data)))
		if err != nil {
			return domain.Chapter{}, err
		}
		text = t
	default:
		if len(in.Data) > 0 {
			text = string(in.Data)
		} else {
			text = in.Text
		}
	}
	text = normalizeText(text)

	var secs []domain.Section
	if format == FormatMarkdown {
		secs = MarkdownSections(text)
	} else {
		secs = TextSections(text)
	}

	title := strings.TrimSpace(in.Title)
	for _, s := range secs {
		if title != "" {
			break
		}
		title = s.Heading
	}
	if title == "" {
		title = "Untitled chapter"
	}
	for i := range secs {
		if secs[i].Heading == "" {
			secs[i].Heading = title
		}
	}

	meta := in.Metadata
	if meta.Domain == "" {
		meta.Domain = strings.TrimSpace(in.Domain)
	}
	if meta.Source == "" {
		meta.Source = string(format)
	}
	return domain.Chapter{
		ID:        chapterID(text),
		Title:     title,
		Content:   text,
		WordCount: textstat.WordCount(text),
		Sections:  secs,
		Metadata:  meta,
	}, nil
}

type heading struct {
	offset int
	depth  int
	title  string
}

// MarkdownSections splits on ATX headings outside fenced code blocks.
func MarkdownSections(text string) []domain.Section {
	var hs []heading
	inFence := false
	forEachLine(text, func(offset int, line string) {
		trimmed := strings.TrimSpace(line)
		if fenceRe.MatchString(trimmed) {
			inFence = !inFence
			return
		}
		if inFence {
			return
		}
		if m := atxHeadingRe.FindStringSubmatch(line); m != nil {
			hs = append(hs, heading{offset: offset, depth: len(m[1]), title: stripInline(m[2])})
		}
	})
	return sectionsFrom(text, hs)
}

// TextSections splits on numbered headings such as "1. Basics" or
// "2.3 Worked example".
func TextSections(text string) []domain.Section {
	var hs []heading
	forEachLine(text, func(offset int, line string) {
		trimmed := strings.TrimSpace(line)
		if m := numberedHeadingRe.FindStringSubmatch(trimmed); m != nil {
			hs = append(hs, heading{offset: offset, depth: strings.Count(m[1], ".") + 1, title: collapseWhitespace(m[2])})
		}
	})
	return sectionsFrom(text, hs)
}

func forEachLine(text string, fn func(offset int, line string)) {
	offset := 0
	for offset <= len(text) {
		end := strings.IndexByte(text[offset:], '\n')
		if end < 0 {
			fn(offset, text[offset:])
			return
		}
		fn(offset, text[offset:offset+end])
		offset += end + 1
	}
}

// sectionsFrom cuts the text at each heading. Non-blank text before the
// first heading becomes an untitled leading section.
func sectionsFrom(text string, hs []heading) []domain.Section {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	switch {
	case len(hs) == 0 || strings.TrimSpace(text[:hs[0].offset]) != "":
		hs = append([]heading{{offset: 0, depth: 1}}, hs...)
	default:
		hs[0].offset = 0
	}
	out := make([]domain.Section, 0, len(hs))
	for i, h := range hs {
		end := len(text)
		if i+1 < len(hs) {
			end = hs[i+1].offset
		}
		if end <= h.offset {
			continue
		}
		content := text[h.offset:end]
		out = append(out, domain.Section{
			ID:            fmt.Sprintf("section-%d", len(out)+1),
			Heading:       h.title,
			Content:       content,
			StartPosition: h.offset,
			EndPosition:   end,
			WordCount:     textstat.WordCount(content),
			Depth:         h.depth,
		})
	}
	return out
}

var inlineMarkRe = regexp.MustCompile("[*_`]+")

func stripInline(s string) string {
	return collapseWhitespace(inlineMarkRe.ReplaceAllString(s, ""))
}
