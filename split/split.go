// C:\Users\wasab\OneDrive\デスクトップ\TPK\split\split.go
package split

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

const insurerBlockTag = "_被保険者"

var n7RootPattern = regexp.MustCompile(`^N7\d{6}$`)

func parse(xmlContent string) *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(xmlContent); err != nil {
		return nil
	}
	return doc
}

// SubjectBlocks は文書中の_被保険者ブロックを文書順にシリアライズして返します。
func SubjectBlocks(xmlContent string) []string {
	doc := parse(xmlContent)
	if doc == nil || doc.Root() == nil {
		return nil
	}

	var blocks []string
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == insurerBlockTag {
			fragment := etree.NewDocument()
			fragment.SetRoot(el.Copy())
			if s, err := fragment.WriteToString(); err == nil {
				blocks = append(blocks, strings.TrimSpace(s))
			}
			return
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(doc.Root())
	return blocks
}

// ByInsurer は複数人の通知XMLから、指定した被保険者ブロックだけを含む
// XMLを生成します。全ての_被保険者ブロックを取り除き、指定ブロックを
// ルート終了タグの直前に挿入します。ルートがN7形式のタグでない場合や
// パースに失敗した場合は入力をそのまま返すので、呼び出し側は抽出失敗として
// 連結PDF生成にフォールバックしてください。
func ByInsurer(xmlContent string, insurerBlock string) string {
	doc := parse(xmlContent)
	if doc == nil || doc.Root() == nil {
		return xmlContent
	}
	root := doc.Root()
	if !n7RootPattern.MatchString(root.Tag) {
		return xmlContent
	}

	blockDoc := parse(insurerBlock)
	if blockDoc == nil || blockDoc.Root() == nil {
		return xmlContent
	}

	removeBlocks(root)
	root.AddChild(blockDoc.Root().Copy())

	out, err := doc.WriteToString()
	if err != nil {
		return xmlContent
	}
	return out
}

func removeBlocks(el *etree.Element) {
	for _, child := range el.ChildElements() {
		if child.Tag == insurerBlockTag {
			el.RemoveChild(child)
			continue
		}
		removeBlocks(child)
	}
}
