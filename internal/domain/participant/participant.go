package participant

import "strings"

// Participant は参加者を表す値オブジェクト
// 生成時に正規化された値を保持し、以後変更されない
type Participant struct {
	Name  string
	Email string
}

// New は新しい参加者を作成する
// 名前は前後の空白を除去し、メールアドレスは小文字に正規化する
func New(name, email string) Participant {
	return Participant{
		Name:  strings.TrimSpace(name),
		Email: NormalizeEmail(email),
	}
}

// NormalizeEmail はメールアドレスを正規化する（前後空白除去＋小文字化）
// 参加者の同一性判定は常に正規化後の値で行う
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
