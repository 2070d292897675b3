// C:\Users\wasab\OneDrive\デスクトップ\TPK\classify\classify_test.go
package classify

import (
	"testing"

	"tpk/model"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name         string
		xml          string
		wantType     model.ProcedureType
		wantCategory model.InsuranceCategory
		wantStrategy model.PdfStrategy
	}{
		{
			name:         "資格取得確認通知書",
			xml:          `<?xml version="1.0"?><N7100001><本文></本文></N7100001>`,
			wantType:     model.ProcedureAcquisition,
			wantCategory: model.CategorySocialInsurance,
			wantStrategy: model.StrategyIndividual,
		},
		{
			name:         "標準報酬決定通知書",
			xml:          `<N7130001></N7130001>`,
			wantType:     model.ProcedureAcquisition,
			wantCategory: model.CategorySocialInsurance,
			wantStrategy: model.StrategyIndividual,
		},
		{
			name:         "標準報酬改定通知書は連結",
			xml:          `<N7140001></N7140001>`,
			wantType:     model.ProcedureMonthlyRevision,
			wantCategory: model.CategorySocialInsurance,
			wantStrategy: model.StrategyCombined,
		},
		{
			name:         "算定基礎届は連結",
			xml:          `<N7150001></N7150001>`,
			wantType:     model.ProcedureBasisAssessment,
			wantCategory: model.CategorySocialInsurance,
			wantStrategy: model.StrategyCombined,
		},
		{
			name:         "賞与支払届は連結",
			xml:          `<N7160001></N7160001>`,
			wantType:     model.ProcedureBonus,
			wantCategory: model.CategorySocialInsurance,
			wantStrategy: model.StrategyCombined,
		},
		{
			name:         "被扶養者異動届",
			xml:          `<N7170003></N7170003>`,
			wantType:     model.ProcedureAcquisition,
			wantCategory: model.CategorySocialInsurance,
			wantStrategy: model.StrategyIndividual,
		},
		{
			name:         "70歳以上被用者月額改定は改定系でも個別",
			xml:          `<N7210001></N7210001>`,
			wantType:     model.ProcedureMonthlyRevision,
			wantCategory: model.CategorySocialInsurance,
			wantStrategy: model.StrategyIndividual,
		},
		{
			name:         "DataRoot取得",
			xml:          `<DataRoot><様式ID>30839001</様式ID></DataRoot>`,
			wantType:     model.ProcedureAcquisition,
			wantCategory: model.CategorySocialInsurance,
			wantStrategy: model.StrategyIndividual,
		},
		{
			name:         "DataRoot喪失",
			xml:          `<DataRoot><様式ID>30840002</様式ID></DataRoot>`,
			wantType:     model.ProcedureLoss,
			wantCategory: model.CategorySocialInsurance,
			wantStrategy: model.StrategyIndividual,
		},
		{
			name:         "DataRootで様式ID不明",
			xml:          `<DataRoot><様式ID>99999</様式ID></DataRoot>`,
			wantType:     model.ProcedureOther,
			wantCategory: model.CategorySocialInsurance,
			wantStrategy: model.StrategyCombined,
		},
		{
			name:         "雇用保険の資格取得",
			xml:          `<DOC><TITLE>雇用保険被保険者資格取得届の件</TITLE></DOC>`,
			wantType:     model.ProcedureAcquisition,
			wantCategory: model.CategoryEmploymentInsurance,
			wantStrategy: model.StrategyIndividual,
		},
		{
			name:         "雇用保険の資格喪失",
			xml:          `<DOC><TITLE>雇用保険被保険者資格喪失届の件</TITLE></DOC>`,
			wantType:     model.ProcedureLoss,
			wantCategory: model.CategoryEmploymentInsurance,
			wantStrategy: model.StrategyIndividual,
		},
		{
			name:         "未知のルートタグ",
			xml:          `<Unknown><data/></Unknown>`,
			wantType:     model.ProcedureOther,
			wantCategory: model.CategoryUnknown,
			wantStrategy: model.StrategyCombined,
		},
		{
			name:         "タグのない入力",
			xml:          `just some text`,
			wantType:     model.ProcedureOther,
			wantCategory: model.CategoryUnknown,
			wantStrategy: model.StrategyCombined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.xml)
			if got.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", got.Type, tt.wantType)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %v, want %v", got.Category, tt.wantCategory)
			}
			if got.PdfStrategy != tt.wantStrategy {
				t.Errorf("PdfStrategy = %v, want %v", got.PdfStrategy, tt.wantStrategy)
			}
		})
	}
}

func TestDetectFromFileName(t *testing.T) {
	tests := []struct {
		fileName     string
		wantType     model.ProcedureType
		wantCategory model.InsuranceCategory
	}{
		{"月額変更届通知.xml", model.ProcedureMonthlyRevision, model.CategorySocialInsurance},
		{"算定基礎届決定通知.xml", model.ProcedureBasisAssessment, model.CategorySocialInsurance},
		{"賞与支払届通知.xml", model.ProcedureBonus, model.CategorySocialInsurance},
		{"資格取得確認通知.xml", model.ProcedureAcquisition, model.CategorySocialInsurance},
		{"雇保資格取得通知.xml", model.ProcedureAcquisition, model.CategoryEmploymentInsurance},
		{"資格喪失確認通知.xml", model.ProcedureLoss, model.CategorySocialInsurance},
		{"雇保資格喪失通知.xml", model.ProcedureLoss, model.CategoryEmploymentInsurance},
		{"report.xml", model.ProcedureOther, model.CategoryUnknown},
	}
	for _, tt := range tests {
		got := DetectFromFileName(tt.fileName)
		if got.Type != tt.wantType || got.Category != tt.wantCategory {
			t.Errorf("DetectFromFileName(%q) = %v/%v, want %v/%v",
				tt.fileName, got.Type, got.Category, tt.wantType, tt.wantCategory)
		}
	}
}
