// C:\Users\wasab\OneDrive\デスクトップ\TPK\wareki\wareki.go
package wareki

import "strings"

// 元号コード→アルファベットの対応。通知書XMLでは数字コードと
// アルファベットの両方が現れます。
var eraMap = map[string]string{
	"5": "S", // 昭和
	"8": "H", // 平成
	"9": "R", // 令和
	"S": "S",
	"H": "H",
	"R": "R",
}

// Convert は元号コードをアルファベット1文字に変換します。
// 未知のコードはそのまま返します。
func Convert(code string) string {
	if letter, ok := eraMap[code]; ok {
		return letter
	}
	return code
}

// Pad2 は年・月・日の値を2桁にゼロ埋めします。
// 値には先頭の空白が含まれることがあるため、先にトリムします。
func Pad2(s string) string {
	s = strings.TrimSpace(s)
	for len(s) < 2 {
		s = "0" + s
	}
	return s
}
