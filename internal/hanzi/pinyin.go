package hanzi

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var toneFold = strings.NewReplacer(
	"ā", "a", "á", "a", "ǎ", "a", "à", "a",
	"ē", "e", "é", "e", "ě", "e", "è", "e", "ê", "e",
	"ī", "i", "í", "i", "ǐ", "i", "ì", "i",
	"ō", "o", "ó", "o", "ǒ", "o", "ò", "o",
	"ū", "u", "ú", "u", "ǔ", "u", "ù", "u",
	"ǖ", "u", "ǘ", "u", "ǚ", "u", "ǜ", "u", "ü", "u",
)

// foldPinyin は声調記号と ü を外して小文字化する。
// transform.Transformer は状態を持つので呼び出しごとに作る。
func foldPinyin(s string) string {
	s = norm.NFKC.String(s)
	s = toneFold.Replace(strings.ToLower(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	return strings.ToLower(s)
}

// NormalizePinyin は a〜z 以外をすべて落とした比較用の文字列を返す。
// "nǐ hǎo" -> "nihao"
func NormalizePinyin(s string) string {
	folded := foldPinyin(s)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TokenizePinyin は a〜z 以外 (数字の声調も含む) を区切りとして音節に分ける。
// "ài, ni3hao" -> ["ai", "ni", "hao"]
func TokenizePinyin(s string) []string {
	return strings.FieldsFunc(foldPinyin(s), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
}

// HasLatin はクエリがピンイン検索かどうかの判定に使う。
func HasLatin(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
		switch r {
		case 'ā', 'á', 'ǎ', 'à', 'ē', 'é', 'ě', 'è', 'ī', 'í', 'ǐ', 'ì',
			'ō', 'ó', 'ǒ', 'ò', 'ū', 'ú', 'ǔ', 'ù', 'ǖ', 'ǘ', 'ǚ', 'ǜ', 'ü':
			return true
		}
	}
	return false
}
