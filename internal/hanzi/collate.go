package hanzi

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewCollator は中国語 (簡体) の照合順序を返す。
// *collate.Collator はスレッドセーフではないので、並べ替えのたびに作ること。
func NewCollator() *collate.Collator {
	return collate.New(language.SimplifiedChinese)
}

// CompareChars は照合順序で比較し、同順位ならコードポイント順にする。
func CompareChars(c *collate.Collator, a, b string) int {
	if r := c.CompareString(a, b); r != 0 {
		return r
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
