// Package textscan は貼り付けられた文章から漢字を取り出す。
package textscan

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	readability "github.com/go-shiori/go-readability"
)

// ExtractUniqueChars は漢字だけを初出順に重複なしで返す。漢字がなければ空のスライス。
func ExtractUniqueChars(text string) []string {
	out := make([]string, 0)
	seen := make(map[rune]struct{})
	for _, r := range text {
		if !unicode.Is(unicode.Han, r) {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, string(r))
	}
	return out
}

// HasHan は漢字を1文字でも含むかどうか
func HasHan(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool { return unicode.Is(unicode.Han, r) }) >= 0
}

// Article は HTML から取り出した本文
type Article struct {
	Title string
	Text  string
}

var (
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// StripRuby は <rt> と <rp> を取り除く。ルビのピンインが本文に混ざるのを防ぐ。
func StripRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, nil)
	return reRP.ReplaceAll(cleaned, nil)
}

// ExtractArticleText は HTML ページから本文らしき部分のテキストを取り出す。
// pageURL は相対リンクの解決に使うだけなので nil でもよい。
func ExtractArticleText(r io.Reader, pageURL *url.URL) (*Article, error) {
	if pageURL == nil {
		pageURL = &url.URL{}
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("textscan.ExtractArticleText: read: %w", err)
	}
	article, err := readability.FromReader(bytes.NewReader(StripRuby(raw)), pageURL)
	if err != nil {
		return nil, fmt.Errorf("textscan.ExtractArticleText: %w", err)
	}
	return &Article{
		Title: strings.TrimSpace(article.Title),
		Text:  strings.TrimSpace(article.TextContent),
	}, nil
}
