// C:\Users\wasab\OneDrive\デスクトップ\TPK\classify\classify.go
package classify

import (
	"regexp"
	"strings"

	"tpk/model"
)

// ルートタグの検出は整形式でないXMLでも失敗しないよう、
// パーサーではなく先頭タグのパターン走査で行います。
var (
	rootTagPattern = regexp.MustCompile(`<([A-Za-z0-9_-]+)[\s>]`)
	formIDPattern  = regexp.MustCompile(`<様式ID>(\d+)</様式ID>`)
	titlePattern   = regexp.MustCompile(`<TITLE>(.*?)</TITLE>`)
)

// N7xxxxx系（社会保険）のルートタグと手続き種別の対応表。
var socialInsurancePatterns = map[string]model.ProcedureType{
	"N7100001": model.ProcedureAcquisition,     // 資格取得確認および標準報酬決定通知書
	"N7130001": model.ProcedureAcquisition,     // 標準報酬決定通知書
	"N7140001": model.ProcedureMonthlyRevision, // 標準報酬改定通知書
	"N7150001": model.ProcedureBasisAssessment, // 算定基礎届
	"N7160001": model.ProcedureBonus,           // 賞与支払届
	"N7170003": model.ProcedureAcquisition,     // 被扶養者（異動）届
	"N7200001": model.ProcedureAcquisition,     // 70歳以上被用者通知書
	"N7210001": model.ProcedureMonthlyRevision, // 70歳以上被用者月額改定通知書
}

// Detect はXMLの内容から手続き種別を判定します。
// 入力が壊れていてもエラーにはせず、判定不能はその他/不明/連結に落とします。
func Detect(xmlContent string) model.ProcedureInfo {
	m := rootTagPattern.FindStringSubmatch(xmlContent)
	if m == nil {
		return model.ProcedureInfo{Type: model.ProcedureOther, Category: model.CategoryUnknown, PdfStrategy: model.StrategyCombined}
	}
	rootTag := m[1]

	if t, ok := socialInsurancePatterns[rootTag]; ok {
		// 社会保険：取得・喪失は個別PDF、それ以外は連結PDF。
		// ただしN7210001（70歳以上被用者月額改定）だけは改定系でも個別PDF。
		strategy := model.StrategyCombined
		if t == model.ProcedureAcquisition || t == model.ProcedureLoss || rootTag == "N7210001" {
			strategy = model.StrategyIndividual
		}
		return model.ProcedureInfo{Type: t, Category: model.CategorySocialInsurance, PdfStrategy: strategy}
	}

	// DataRoot形式（社会保険の電子申請）
	if rootTag == "DataRoot" {
		if fm := formIDPattern.FindStringSubmatch(xmlContent); fm != nil {
			formID := fm[1]
			switch {
			case strings.Contains(formID, "30839"):
				return model.ProcedureInfo{Type: model.ProcedureAcquisition, Category: model.CategorySocialInsurance, PdfStrategy: model.StrategyIndividual}
			case strings.Contains(formID, "30840"):
				return model.ProcedureInfo{Type: model.ProcedureLoss, Category: model.CategorySocialInsurance, PdfStrategy: model.StrategyIndividual}
			case strings.Contains(formID, "30841"):
				return model.ProcedureInfo{Type: model.ProcedureAcquisition, Category: model.CategorySocialInsurance, PdfStrategy: model.StrategyIndividual}
			}
		}
		return model.ProcedureInfo{Type: model.ProcedureOther, Category: model.CategorySocialInsurance, PdfStrategy: model.StrategyCombined}
	}

	// DOC形式（雇用保険）
	if rootTag == "DOC" {
		if tm := titlePattern.FindStringSubmatch(xmlContent); tm != nil {
			title := tm[1]
			if strings.Contains(title, "資格取得") {
				return model.ProcedureInfo{Type: model.ProcedureAcquisition, Category: model.CategoryEmploymentInsurance, PdfStrategy: model.StrategyIndividual}
			}
			if strings.Contains(title, "資格喪失") {
				return model.ProcedureInfo{Type: model.ProcedureLoss, Category: model.CategoryEmploymentInsurance, PdfStrategy: model.StrategyIndividual}
			}
		}
		return model.ProcedureInfo{Type: model.ProcedureOther, Category: model.CategoryEmploymentInsurance, PdfStrategy: model.StrategyCombined}
	}

	return model.ProcedureInfo{Type: model.ProcedureOther, Category: model.CategoryUnknown, PdfStrategy: model.StrategyCombined}
}

// DetectFromFileName はファイル名から手続き種別を推測します（判定のバックアップ用）。
func DetectFromFileName(fileName string) model.ProcedureInfo {
	switch {
	case strings.Contains(fileName, "月額変更"):
		return model.ProcedureInfo{Type: model.ProcedureMonthlyRevision, Category: model.CategorySocialInsurance, PdfStrategy: model.StrategyCombined}
	case strings.Contains(fileName, "算定基礎"):
		return model.ProcedureInfo{Type: model.ProcedureBasisAssessment, Category: model.CategorySocialInsurance, PdfStrategy: model.StrategyCombined}
	case strings.Contains(fileName, "賞与"):
		return model.ProcedureInfo{Type: model.ProcedureBonus, Category: model.CategorySocialInsurance, PdfStrategy: model.StrategyCombined}
	case strings.Contains(fileName, "資格取得") || strings.Contains(fileName, "被扶養"):
		if strings.Contains(fileName, "雇保") {
			return model.ProcedureInfo{Type: model.ProcedureAcquisition, Category: model.CategoryEmploymentInsurance, PdfStrategy: model.StrategyIndividual}
		}
		return model.ProcedureInfo{Type: model.ProcedureAcquisition, Category: model.CategorySocialInsurance, PdfStrategy: model.StrategyIndividual}
	case strings.Contains(fileName, "資格喪失"):
		if strings.Contains(fileName, "雇保") {
			return model.ProcedureInfo{Type: model.ProcedureLoss, Category: model.CategoryEmploymentInsurance, PdfStrategy: model.StrategyIndividual}
		}
		return model.ProcedureInfo{Type: model.ProcedureLoss, Category: model.CategorySocialInsurance, PdfStrategy: model.StrategyIndividual}
	}
	return model.ProcedureInfo{Type: model.ProcedureOther, Category: model.CategoryUnknown, PdfStrategy: model.StrategyCombined}
}
