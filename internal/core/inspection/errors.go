package inspection

import "errors"

var (
	// ErrAccess は解析ルートが存在しない、またはディレクトリではない場合のエラー
	ErrAccess = errors.New("root is not accessible")

	// ErrDecode はファイルをテキストとしてデコードできない場合のエラー
	// ファイル単位でのみ発生し、集計からは除外される
	ErrDecode = errors.New("file is not valid UTF-8 text")
)
