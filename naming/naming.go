// C:\Users\wasab\OneDrive\デスクトップ\TPK\naming\naming.go
package naming

import (
	"fmt"
	"strings"

	"tpk/extract"
	"tpk/model"
)

// FileName は手続き種別と抽出情報からPDFファイル名（サニタイズ前）を生成します。
func FileName(procedureType model.ProcedureType, info model.NamingInfo) string {
	// kagami（表紙）は手続き種別にかかわらず常に「表紙.pdf」。
	if info.NoticeTitle == extract.KagamiNoticeTitle || strings.Contains(info.NoticeTitle, "表紙") {
		return "表紙.pdf"
	}

	switch procedureType {
	case model.ProcedureMonthlyRevision:
		// 適用年月_通知書名.pdf。適用年月が取れない場合は改定年月で代替。
		if info.ApplicableDate != "" {
			return info.ApplicableDate + "_" + info.NoticeTitle + ".pdf"
		}
		if info.RevisionDate != "" {
			return info.RevisionDate + "_" + info.NoticeTitle + ".pdf"
		}
		return info.NoticeTitle + ".pdf"

	case model.ProcedureBasisAssessment:
		if info.RevisionDate != "" {
			return info.RevisionDate + "_" + info.NoticeTitle + ".pdf"
		}
		return info.NoticeTitle + ".pdf"

	case model.ProcedureBonus:
		if info.BonusPaymentDate != "" {
			return info.BonusPaymentDate + "_" + info.NoticeTitle + ".pdf"
		}
		return info.NoticeTitle + ".pdf"

	case model.ProcedureAcquisition, model.ProcedureLoss:
		return insurerFileName(info)

	default:
		// その他でも被保険者名が取れていれば取得・喪失と同じ命名を使う。
		return insurerFileName(info)
	}
}

func insurerFileName(info model.NamingInfo) string {
	if info.FirstInsurerName == "" {
		return info.NoticeTitle + ".pdf"
	}
	if info.InsurerCount > 1 {
		return fmt.Sprintf("%s様他%d名_%s.pdf", info.FirstInsurerName, info.InsurerCount-1, info.NoticeTitle)
	}
	return info.FirstInsurerName + "様_" + info.NoticeTitle + ".pdf"
}

// OSで禁止されている文字の全角置換表。
// " は原典の置換表どおり無変換のまま残してあります。
var forbiddenReplacer = strings.NewReplacer(
	"/", "／",
	"\\", "＼",
	":", "：",
	"*", "＊",
	"?", "？",
	`"`, `"`,
	"<", "＜",
	">", "＞",
	"|", "｜",
)

// Sanitize はファイル名をファイルシステムで安全な形式に変換します。
// 禁止文字を全角へ置換し、連続する空白（全角含む）を半角スペース1つにまとめ、
// 前後の空白を除去します。空になった場合は「通知書.pdf」を返します。
func Sanitize(fileName string) string {
	sanitized := forbiddenReplacer.Replace(fileName)
	sanitized = strings.Join(strings.Fields(sanitized), " ")
	sanitized = strings.TrimSpace(sanitized)

	if sanitized == "" || sanitized == ".pdf" {
		return "通知書.pdf"
	}
	return sanitized
}

// SafeFileName は命名とサニタイズをまとめて行います。
func SafeFileName(procedureType model.ProcedureType, info model.NamingInfo) string {
	return Sanitize(FileName(procedureType, info))
}

// IndividualFileName は個別PDF生成時の1名分のファイル名を生成します。
// 個別生成は取得・喪失でのみ呼ばれますが、それ以外の種別が来ても
// 通知書名のみで命名して返します。
func IndividualFileName(procedureType model.ProcedureType, insurerName string, noticeTitle string) string {
	if procedureType == model.ProcedureAcquisition || procedureType == model.ProcedureLoss {
		return Sanitize(insurerName + "様_" + noticeTitle + ".pdf")
	}
	return Sanitize(noticeTitle + ".pdf")
}
