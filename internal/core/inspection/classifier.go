package inspection

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Classify はファイルパスから小文字の拡張子（ドット付き）を返す
// ファイル名先頭のドットは拡張子として扱わない（.bashrc → ""）
func Classify(path string) string {
	base := filepath.Base(path)
	name := strings.TrimLeft(base, ".")

	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx:])
}

// DetectLanguage はファイル名と拡張子から言語名を判定する
// 判定できない場合は空文字を返す
func DetectLanguage(path string) string {
	filename := filepath.Base(path)

	if lang, _ := enry.GetLanguageByFilename(filename); lang != "" {
		return lang
	}
	lang, _ := enry.GetLanguageByExtension(filename)
	return lang
}
