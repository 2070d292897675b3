// C:\Users\wasab\OneDrive\デスクトップ\TPK\extract\extract.go
package extract

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"tpk/model"
	"tpk/wareki"
)

// KagamiNoticeTitle はkagami（表紙）文書の固定タイトルです。
const KagamiNoticeTitle = "日本年金機構からのお知らせ"

// NoticeTitles はルートタグ→正式な通知書名の対応表です。
// TITLEタグを持たないN7系文書のタイトル解決に使います。
var NoticeTitles = map[string]string{
	"N7100001": "健康保険・厚生年金保険資格取得確認および標準報酬決定通知書",
	"N7130001": "健康保険・厚生年金保険被保険者標準報酬決定通知書",
	"N7140001": "健康保険・厚生年金保険標準報酬改定通知書",
	"N7150001": "健康保険・厚生年金保険被保険者標準報酬決定通知書（算定基礎届）",
	"N7160001": "健康保険・厚生年金保険標準賞与額決定通知書",
	"N7170003": "健康保険被扶養者（異動）届受理通知書",
	"N7200001": "厚生年金保険70歳以上被用者該当および標準報酬月額相当額のお知らせ",
	"N7210001": "厚生年金保険70歳以上被用者標準報酬月額相当額改定のお知らせ",
}

// 被保険者名のタグは様式によって綴りが異なります。先に現れたものを採用します。
var insurerNameTags = []string{"被保険者氏名", "被保険者漢字氏名", "被用者漢字氏名"}

var (
	appTitlePattern      = regexp.MustCompile(`<APPTITLE>(.*?)</APPTITLE>`)
	titleTagPattern      = regexp.MustCompile(`<TITLE>(.*?)</TITLE>`)
	n7RootPattern        = regexp.MustCompile(`<N7\d{6}>`)
	n7TagNamePattern     = regexp.MustCompile(`<(N7\d{6})[\s>]`)
	dataRootNamePattern  = regexp.MustCompile(`^P1_被保険者(?:x|氏名x)(?:漢字)?氏名$`)
	referenceSeqPattern  = regexp.MustCompile(`-(\d{4})_[^"]*\.pdf$`)
	trailingKenSuffix    = "の件"
)

// NamingInfo はXMLの内容とkagami.xmlからPDF命名に必要な情報を抽出します。
// 入力が壊れていてもエラーにはせず、取れなかった項目は空のまま返します。
func NamingInfo(xmlContent string, procedureType model.ProcedureType, kagamiXML string) model.NamingInfo {
	info := model.NamingInfo{AllInsurers: []model.InsurerInfo{}}

	switch {
	case strings.Contains(xmlContent, "<DataRoot>"):
		extractFromDataRoot(xmlContent, &info)
	case strings.Contains(xmlContent, "<DOC"):
		extractFromEmploymentInsurance(xmlContent, &info)
	case n7RootPattern.MatchString(xmlContent):
		extractFromSocialInsurance(xmlContent, procedureType, &info)
	}

	info.NoticeTitle = NoticeTitle(xmlContent, kagamiXML)
	return info
}

// NoticeTitle は通知書名を解決します。優先順位は
// kagamiのAPPTITLE > 文書自身のTITLE（「の件」を除去） > ルートタグの対応表 > 「通知書」。
func NoticeTitle(xmlContent string, kagamiXML string) string {
	if kagamiXML != "" {
		if m := appTitlePattern.FindStringSubmatch(kagamiXML); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	if m := titleTagPattern.FindStringSubmatch(xmlContent); m != nil {
		title := strings.TrimSpace(m[1])
		title = strings.TrimSpace(strings.TrimSuffix(title, trailingKenSuffix))
		return title
	}

	if m := n7TagNamePattern.FindStringSubmatch(xmlContent); m != nil {
		if title, ok := NoticeTitles[m[1]]; ok {
			return title
		}
	}

	return "通知書"
}

func parseDocument(xmlContent string) *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(xmlContent); err != nil {
		return nil
	}
	return doc
}

// findAll は文書順で名前が一致する要素を全て返します。
func findAll(root *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == tag {
			found = append(found, el)
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return found
}

// firstText は文書順で最初に一致した要素のテキストを返します（先勝ち）。
func firstText(root *etree.Element, tags ...string) (string, bool) {
	var result string
	var ok bool
	var walk func(el *etree.Element) bool
	walk = func(el *etree.Element) bool {
		for _, tag := range tags {
			if el.Tag == tag {
				result = strings.TrimSpace(el.Text())
				ok = true
				return true
			}
		}
		for _, child := range el.ChildElements() {
			if walk(child) {
				return true
			}
		}
		return false
	}
	walk(root)
	return result, ok
}

// extractFromSocialInsurance はN7xxxxx形式（社会保険）から情報を抽出します。
func extractFromSocialInsurance(xmlContent string, procedureType model.ProcedureType, info *model.NamingInfo) {
	doc := parseDocument(xmlContent)
	if doc == nil || doc.Root() == nil {
		return
	}
	root := doc.Root()

	blocks := findAll(root, "_被保険者")
	if len(blocks) > 0 {
		// InsurerCountはブロック総数。氏名が取れたものだけをAllInsurersに積む
		// （ブロック数と一致しない場合は呼び出し側が連結PDFに切り替える）。
		info.InsurerCount = len(blocks)

		for _, block := range blocks {
			name, ok := firstText(block, insurerNameTags...)
			if !ok || name == "" {
				continue
			}
			insurer := model.InsurerInfo{Name: name}
			if number, ok := firstText(block, "被保険者番号"); ok {
				insurer.InsurerNumber = number
			}
			info.AllInsurers = append(info.AllInsurers, insurer)
		}

		if len(info.AllInsurers) > 0 {
			info.FirstInsurerName = info.AllInsurers[0].Name
		}
	} else {
		// _被保険者ブロックがない様式では文書全体から1名分を探す。
		if name, ok := firstText(root, insurerNameTags...); ok && name != "" {
			info.FirstInsurerName = name
			info.InsurerCount = 1
			info.AllInsurers = append(info.AllInsurers, model.InsurerInfo{Name: name})
		}
	}

	// 改定年月（月額変更・算定基礎届）。N7210001は「月額改定年月」綴り。
	if procedureType == model.ProcedureMonthlyRevision || procedureType == model.ProcedureBasisAssessment {
		if date, ok := eraYearMonth(root, "改定年月"); ok {
			info.RevisionDate = date
		} else if date, ok := eraYearMonth(root, "月額改定年月"); ok {
			info.RevisionDate = date
		}
	}

	// 適用年月（月額変更のみ。命名では改定年月より優先される）。
	if procedureType == model.ProcedureMonthlyRevision {
		if date, ok := eraYearMonth(root, "適用年月"); ok {
			info.ApplicableDate = date
		}
	}

	// 賞与支払年月日（賞与のみ）。
	if procedureType == model.ProcedureBonus {
		era, okE := firstText(root, "賞与支払年月日_元号")
		year, okY := firstText(root, "賞与支払年月日_年")
		month, okM := firstText(root, "賞与支払年月日_月")
		day, okD := firstText(root, "賞与支払年月日_日")
		if okE && okY && okM && okD {
			info.BonusPaymentDate = wareki.Convert(era) + wareki.Pad2(year) + "年" + wareki.Pad2(month) + "月" + wareki.Pad2(day) + "日"
		}
	}
}

// eraYearMonth は「{prefix}_元号/_年/_月」の3要素から "R07年09月" 形式を組み立てます。
func eraYearMonth(root *etree.Element, prefix string) (string, bool) {
	era, okE := firstText(root, prefix+"_元号")
	year, okY := firstText(root, prefix+"_年")
	month, okM := firstText(root, prefix+"_月")
	if !okE || !okY || !okM {
		return "", false
	}
	return wareki.Convert(era) + wareki.Pad2(year) + "年" + wareki.Pad2(month) + "月", true
}

// extractFromDataRoot はDataRoot形式（社会保険電子申請）から情報を抽出します。
// この形式は1文書1名が前提です。
func extractFromDataRoot(xmlContent string, info *model.NamingInfo) {
	info.InsurerCount = 1

	doc := parseDocument(xmlContent)
	if doc == nil || doc.Root() == nil {
		return
	}
	root := doc.Root()

	var findName func(el *etree.Element) bool
	findName = func(el *etree.Element) bool {
		if dataRootNamePattern.MatchString(el.Tag) {
			info.FirstInsurerName = strings.TrimSpace(el.Text())
			return true
		}
		for _, child := range el.ChildElements() {
			if findName(child) {
				return true
			}
		}
		return false
	}
	findName(root)

	// 取得年月日はP1_被保険者x取得年月日の下の元号/年/月/日から組み立てる。
	for _, group := range findAll(root, "P1_被保険者x取得年月日") {
		era, okE := firstText(group, "P1_元号")
		year, okY := firstText(group, "P1_年")
		month, okM := firstText(group, "P1_月")
		day, okD := firstText(group, "P1_日")
		if okE && okY && okM && okD {
			info.RevisionDate = wareki.Convert(era) + wareki.Pad2(year) + "年" + wareki.Pad2(month) + "月" + wareki.Pad2(day) + "日"
			break
		}
	}
}

// extractFromEmploymentInsurance はDOC形式（雇用保険）から情報を抽出します。
func extractFromEmploymentInsurance(xmlContent string, info *model.NamingInfo) {
	info.InsurerCount = 1

	doc := parseDocument(xmlContent)
	if doc == nil || doc.Root() == nil {
		return
	}
	root := doc.Root()

	if name, ok := firstText(root, "NAME"); ok {
		info.FirstInsurerName = name
	}

	// 人数は添付PDF参照の連番（-0001_ など）の異なり数から推定する。
	sequences := map[string]struct{}{}
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == "Reference" {
			if uri := el.SelectAttrValue("URI", ""); uri != "" {
				if m := referenceSeqPattern.FindStringSubmatch(uri); m != nil {
					sequences[m[1]] = struct{}{}
				}
			}
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)

	if len(sequences) > 1 {
		info.InsurerCount = len(sequences)
	}
}
