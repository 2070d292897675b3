// C:\Users\wasab\OneDrive\デスクトップ\TPK\extract\extract_test.go
package extract

import (
	"testing"

	"tpk/model"
)

func TestNamingInfoSocialInsuranceSingle(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<N7140001>
  <_被保険者>
    <被保険者氏名><![CDATA[田名網　亜衣子]]></被保険者氏名>
    <被保険者番号>12345</被保険者番号>
    <改定年月_元号>9</改定年月_元号>
    <改定年月_年>7</改定年月_年>
    <改定年月_月>9</改定年月_月>
  </_被保険者>
</N7140001>`

	info := NamingInfo(xml, model.ProcedureMonthlyRevision, "")

	if info.FirstInsurerName != "田名網　亜衣子" {
		t.Errorf("FirstInsurerName = %q", info.FirstInsurerName)
	}
	if info.InsurerCount != 1 {
		t.Errorf("InsurerCount = %d, want 1", info.InsurerCount)
	}
	if info.RevisionDate != "R07年09月" {
		t.Errorf("RevisionDate = %q, want R07年09月", info.RevisionDate)
	}
	if info.NoticeTitle != "健康保険・厚生年金保険標準報酬改定通知書" {
		t.Errorf("NoticeTitle = %q", info.NoticeTitle)
	}
}

func TestNamingInfoMultipleInsurers(t *testing.T) {
	xml := `<N7150001>
  <_被保険者><被保険者氏名>山田　太郎</被保険者氏名></_被保険者>
  <_被保険者><被保険者氏名>鈴木　花子</被保険者氏名></_被保険者>
  <_被保険者><被保険者氏名>佐藤　次郎</被保険者氏名></_被保険者>
</N7150001>`

	info := NamingInfo(xml, model.ProcedureBasisAssessment, "")

	if info.InsurerCount != 3 {
		t.Errorf("InsurerCount = %d, want 3", info.InsurerCount)
	}
	if len(info.AllInsurers) != 3 {
		t.Errorf("len(AllInsurers) = %d, want 3", len(info.AllInsurers))
	}
	if info.FirstInsurerName != "山田　太郎" {
		t.Errorf("FirstInsurerName = %q", info.FirstInsurerName)
	}
}

func TestNamingInfoUnnamedBlocksKeptInCount(t *testing.T) {
	// 氏名の取れないブロックも人数には数える。名前一覧には入れない。
	xml := `<N7100001>
  <_被保険者><被保険者氏名>山田　太郎</被保険者氏名></_被保険者>
  <_被保険者><生年月日>S60</生年月日></_被保険者>
</N7100001>`

	info := NamingInfo(xml, model.ProcedureAcquisition, "")

	if info.InsurerCount != 2 {
		t.Errorf("InsurerCount = %d, want 2", info.InsurerCount)
	}
	if len(info.AllInsurers) != 1 {
		t.Errorf("len(AllInsurers) = %d, want 1", len(info.AllInsurers))
	}
}

func TestNamingInfoAlternateNameSpellings(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"被保険者漢字氏名", `<N7130001><_被保険者><被保険者漢字氏名>高橋　一郎</被保険者漢字氏名></_被保険者></N7130001>`},
		{"被用者漢字氏名", `<N7200001><_被保険者><被用者漢字氏名>高橋　一郎</被用者漢字氏名></_被保険者></N7200001>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NamingInfo(tt.xml, model.ProcedureAcquisition, "")
			if info.FirstInsurerName != "高橋　一郎" {
				t.Errorf("FirstInsurerName = %q", info.FirstInsurerName)
			}
		})
	}
}

func TestNamingInfoMonthlyRevisionAlternateDateTag(t *testing.T) {
	// N7210001は改定年月ではなく月額改定年月の綴りを使う。
	xml := `<N7210001>
  <_被保険者>
    <被用者漢字氏名>高橋　一郎</被用者漢字氏名>
    <月額改定年月_元号>9</月額改定年月_元号>
    <月額改定年月_年>6</月額改定年月_年>
    <月額改定年月_月>10</月額改定年月_月>
  </_被保険者>
</N7210001>`

	info := NamingInfo(xml, model.ProcedureMonthlyRevision, "")

	if info.RevisionDate != "R06年10月" {
		t.Errorf("RevisionDate = %q, want R06年10月", info.RevisionDate)
	}
}

func TestNamingInfoApplicableDatePreferred(t *testing.T) {
	xml := `<N7140001>
  <_被保険者>
    <被保険者氏名>山田　太郎</被保険者氏名>
    <改定年月_元号>9</改定年月_元号>
    <改定年月_年>7</改定年月_年>
    <改定年月_月>9</改定年月_月>
    <適用年月_元号>9</適用年月_元号>
    <適用年月_年>7</適用年月_年>
    <適用年月_月>11</適用年月_月>
  </_被保険者>
</N7140001>`

	info := NamingInfo(xml, model.ProcedureMonthlyRevision, "")

	if info.ApplicableDate != "R07年11月" {
		t.Errorf("ApplicableDate = %q, want R07年11月", info.ApplicableDate)
	}
	if info.RevisionDate != "R07年09月" {
		t.Errorf("RevisionDate = %q, want R07年09月", info.RevisionDate)
	}
}

func TestNamingInfoBonusDate(t *testing.T) {
	xml := `<N7160001>
  <_被保険者>
    <被保険者氏名>山田　太郎</被保険者氏名>
    <賞与支払年月日_元号>9</賞与支払年月日_元号>
    <賞与支払年月日_年>7</賞与支払年月日_年>
    <賞与支払年月日_月>6</賞与支払年月日_月>
    <賞与支払年月日_日>15</賞与支払年月日_日>
  </_被保険者>
</N7160001>`

	info := NamingInfo(xml, model.ProcedureBonus, "")

	if info.BonusPaymentDate != "R07年06月15日" {
		t.Errorf("BonusPaymentDate = %q, want R07年06月15日", info.BonusPaymentDate)
	}
}

func TestNamingInfoDataRoot(t *testing.T) {
	xml := `<DataRoot>
  <様式ID>30839001</様式ID>
  <P1_被保険者x漢字氏名>中村　三郎</P1_被保険者x漢字氏名>
  <P1_被保険者x取得年月日>
    <P1_元号>9</P1_元号>
    <P1_年>7</P1_年>
    <P1_月>4</P1_月>
    <P1_日>1</P1_日>
  </P1_被保険者x取得年月日>
</DataRoot>`

	info := NamingInfo(xml, model.ProcedureAcquisition, "")

	if info.FirstInsurerName != "中村　三郎" {
		t.Errorf("FirstInsurerName = %q", info.FirstInsurerName)
	}
	if info.InsurerCount != 1 {
		t.Errorf("InsurerCount = %d, want 1", info.InsurerCount)
	}
	if info.RevisionDate != "R07年04月01日" {
		t.Errorf("RevisionDate = %q, want R07年04月01日", info.RevisionDate)
	}
}

func TestNamingInfoEmploymentInsurance(t *testing.T) {
	xml := `<DOC>
  <TITLE>雇用保険被保険者資格取得届の件</TITLE>
  <NAME>渡辺　四郎</NAME>
  <Signature>
    <Reference URI="tsuchi-0001_shikaku.pdf"/>
    <Reference URI="tsuchi-0002_shikaku.pdf"/>
  </Signature>
</DOC>`

	info := NamingInfo(xml, model.ProcedureAcquisition, "")

	if info.FirstInsurerName != "渡辺　四郎" {
		t.Errorf("FirstInsurerName = %q", info.FirstInsurerName)
	}
	if info.InsurerCount != 2 {
		t.Errorf("InsurerCount = %d, want 2", info.InsurerCount)
	}
	if info.NoticeTitle != "雇用保険被保険者資格取得届" {
		t.Errorf("NoticeTitle = %q", info.NoticeTitle)
	}
}

func TestNoticeTitle(t *testing.T) {
	tests := []struct {
		name   string
		xml    string
		kagami string
		want   string
	}{
		{
			name:   "kagamiのAPPTITLEが最優先",
			xml:    `<DOC><TITLE>雇用保険被保険者資格取得届の件</TITLE></DOC>`,
			kagami: `<DOC><APPTITLE>雇用保険被保険者資格取得等確認通知書</APPTITLE></DOC>`,
			want:   "雇用保険被保険者資格取得等確認通知書",
		},
		{
			name: "TITLEからの件を除去",
			xml:  `<DOC><TITLE>雇用保険被保険者資格喪失届の件</TITLE></DOC>`,
			want: "雇用保険被保険者資格喪失届",
		},
		{
			name: "N7系は対応表で解決",
			xml:  `<N7160001><本文/></N7160001>`,
			want: "健康保険・厚生年金保険標準賞与額決定通知書",
		},
		{
			name: "解決できなければ通知書",
			xml:  `<Unknown/>`,
			want: "通知書",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NoticeTitle(tt.xml, tt.kagami); got != tt.want {
				t.Errorf("NoticeTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
