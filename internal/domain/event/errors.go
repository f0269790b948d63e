package event

import "errors"

// Event ドメインのエラー定義
var (
	ErrEventNotFound   = errors.New("イベントが見つかりません")
	ErrEventFull       = errors.New("イベントは満席です")
	ErrAlreadyEnrolled = errors.New("このメールアドレスは既に登録されています")
	ErrNotEnrolled     = errors.New("このメールアドレスの登録が見つかりません")
	ErrPastEventDate   = errors.New("イベントの日付を過去にすることはできません")
	ErrInvalidCapacity = errors.New("定員は1以上である必要があります")
	ErrInvalidPrice    = errors.New("料金は0以上である必要があります")
)
