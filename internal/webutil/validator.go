package webutil

import (
	"log"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"text":         "本文",
	"html":         "HTML",
	"source_text":  "元の文章",
	"unique_chars": "文字一覧",
	"known":        "既知の文字",
	"selected":     "選択した文字",
	"chars":        "文字",
	"status":       "状態",
	"email":        "メールアドレス",
	"token":        "トークン",
	"confirm":      "確認",
	"hsk":          "HSKレベル",
	"sort":         "並び順",
	"limit":        "件数",
	"offset":       "開始位置",
}

// translateField は項目名を日本語にする。dive の要素 (unique_chars[2]) は添字を残す。
func translateField(name string) string {
	base, index := name, ""
	if i := strings.IndexByte(name, '['); i > 0 {
		base, index = name[:i], name[i:]
	}
	if translated, ok := fieldNameTranslations[base]; ok {
		return translated + index
	}
	return name
}

// isSingleHan は漢字1文字だけの文字列か
func isSingleHan(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	r, size := utf8.DecodeRuneInString(s)
	return size == len(s) && r != utf8.RuneError && unicode.Is(unicode.Han, r)
}

// 上書きするメッセージ。{0} は項目名、{1} はタグの引数。
var messages = []struct {
	tag     string
	msg     string
	withArg bool
}{
	{tag: "required", msg: "{0}は必須項目です。"},
	{tag: "email", msg: "{0}は有効なメールアドレス形式ではありません。"},
	// text と html はどちらか一方があればよい
	{tag: "required_without", msg: "{0}を入力してください。"},
	{tag: "han", msg: "{0}には漢字を1文字ずつ指定してください。"},
	{tag: "oneof", msg: "{0}は[{1}]のいずれかを指定してください。", withArg: true},
	// min / max は文字数ではなく件数にも使うので「以上」「以下」だけにする
	{tag: "min", msg: "{0}は{1}以上で指定してください。", withArg: true},
	{tag: "max", msg: "{0}は{1}以下で指定してください。", withArg: true},
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := Validator.RegisterValidation("han", isSingleHan); err != nil {
		log.Fatal(err)
	}

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}
	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	for _, m := range messages {
		m := m
		err := Validator.RegisterTranslation(m.tag, Trans, func(ut ut.Translator) error {
			return ut.Add(m.tag, m.msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			params := []string{translateField(fe.Field())}
			if m.withArg {
				params = append(params, fe.Param())
			}
			t, _ := ut.T(m.tag, params...)
			return t
		})
		if err != nil {
			log.Fatal(err)
		}
	}
}
