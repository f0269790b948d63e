package event

// Store はイベントストアのインターフェース
// バックエンドは単一プロセス内の媒体（メモリまたはスナップショットファイル）であり、
// 列挙順は実装依存とする
type Store interface {
	// NextID は新しいIDを採番する（単調増加、再利用しない）
	NextID() int

	// Put はイベントをIDをキーとして挿入または置換する
	Put(e *Event)

	// Get はIDからイベントを取得する
	// 存在しない場合は ErrEventNotFound を返す
	Get(id int) (*Event, error)

	// ListAll は全イベントを列挙する
	ListAll() []*Event
}

// Persistent は永続化能力を持つストアのインターフェース
// 永続化を持たないストアはこのインターフェースを実装しない
// （呼び出し側は実行時のメソッド探索ではなく型アサーションで判定する）
type Persistent interface {
	Store

	// Load は媒体の内容でメモリ上の状態を全置換する
	// 媒体が存在しない場合はシーケンス1の空ストアとして初期化する
	Load() error

	// Save はメモリ上の全状態を媒体へ書き出す
	Save() error
}
