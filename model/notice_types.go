// C:\Users\wasab\OneDrive\デスクトップ\TPK\model\notice_types.go
package model

// ProcedureType は通知書が表す手続きの種別です。
type ProcedureType string

const (
	ProcedureMonthlyRevision ProcedureType = "月額変更"
	ProcedureBasisAssessment ProcedureType = "算定基礎届"
	ProcedureBonus           ProcedureType = "賞与"
	ProcedureAcquisition     ProcedureType = "取得"
	ProcedureLoss            ProcedureType = "喪失"
	ProcedureOther           ProcedureType = "その他"
)

// InsuranceCategory は保険制度の区分です。
type InsuranceCategory string

const (
	CategorySocialInsurance     InsuranceCategory = "社会保険"
	CategoryLaborInsurance      InsuranceCategory = "労働保険"
	CategoryEmploymentInsurance InsuranceCategory = "雇用保険"
	CategoryUnknown             InsuranceCategory = "不明"
)

// PdfStrategy は複数人通知のPDF化方針です。
// individual: 被保険者ごとに個別PDF、combined: 1つの連結PDF。
type PdfStrategy string

const (
	StrategyIndividual PdfStrategy = "individual"
	StrategyCombined   PdfStrategy = "combined"
)

type ProcedureInfo struct {
	Type        ProcedureType     `json:"type"`
	Category    InsuranceCategory `json:"category"`
	PdfStrategy PdfStrategy       `json:"pdfStrategy"`
}

// InsurerInfo は被保険者1名分の情報です。氏名は抽出時そのまま
// （全角スペース等を含む）で保持し、サニタイズは命名時にのみ行います。
type InsurerInfo struct {
	Name          string `json:"name"`
	InsurerNumber string `json:"insurerNumber,omitempty"`
}

// NamingInfo はPDFファイル名の生成に必要な情報一式です。
// 日付は元号付きの整形済み文字列（例: "R07年09月"）で保持します。
type NamingInfo struct {
	FirstInsurerName string        `json:"firstInsurerName"`
	InsurerCount     int           `json:"insurerCount"`
	AllInsurers      []InsurerInfo `json:"allInsurers"`
	RevisionDate     string        `json:"revisionDate,omitempty"`
	ApplicableDate   string        `json:"applicableDate,omitempty"`
	BonusPaymentDate string        `json:"bonusPaymentDate,omitempty"`
	NoticeTitle      string        `json:"noticeTitle"`
}

// PairType はXML/XSLペアの種別です。kagami（表紙）は常に通知書より先に処理します。
type PairType string

const (
	PairKagami       PairType = "kagami"
	PairNotification PairType = "notification"
)

type DocumentPair struct {
	Type        PairType `json:"type"`
	XmlPath     string   `json:"xmlPath"`
	XslPath     string   `json:"xslPath"`
	XmlFileName string   `json:"xmlFileName"`
	XslFileName string   `json:"xslFileName"`
}

// FolderStructure は展開済みZIP内の1フォルダ分の構成です。
type FolderStructure struct {
	FolderName  string         `json:"folderName"`
	FolderPath  string         `json:"folderPath"`
	Documents   []DocumentPair `json:"documents"`
	XmlXslFiles []string       `json:"xmlXslFiles"`
	OtherFiles  []string       `json:"otherFiles"`
}

type GeneratedPdf struct {
	Name string
	Data []byte
}

type ProcessedFolder struct {
	FolderName  string         `json:"folderName"`
	Success     bool           `json:"success"`
	Pdfs        []GeneratedPdf `json:"-"`
	XmlXslFiles []string       `json:"-"`
	OtherFiles  []string       `json:"-"`
	PdfCount    int            `json:"pdfCount"`
	Error       string         `json:"error,omitempty"`
}

// ConversionRecord は変換リクエスト1件分の履歴です。
type ConversionRecord struct {
	ID           int64  `db:"id" json:"id"`
	UploadedFile string `db:"uploaded_file" json:"uploadedFile"`
	FolderCount  int    `db:"folder_count" json:"folderCount"`
	SuccessCount int    `db:"success_count" json:"successCount"`
	ErrorCount   int    `db:"error_count" json:"errorCount"`
	PdfCount     int    `db:"pdf_count" json:"pdfCount"`
	DurationMs   int64  `db:"duration_ms" json:"durationMs"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
}
