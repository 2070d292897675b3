// C:\Users\wasab\OneDrive\デスクトップ\TPK\bundle\pairing_test.go
package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"tpk/model"
)

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyze(t *testing.T) {
	root := t.TempDir()

	folder := filepath.Join(root, "0001_健康保険・厚生年金保険被保険者資格取得届")
	if err := os.MkdirAll(folder, 0755); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, folder, "kagami.xml", `<DOC><APPTITLE>通知書</APPTITLE></DOC>`)
	writeTestFile(t, folder, "kagami.xsl", `<xsl:stylesheet/>`)
	writeTestFile(t, folder, "7100001.xml", `<N7100001/>`)
	writeTestFile(t, folder, "7100001.xsl", `<xsl:stylesheet/>`)
	writeTestFile(t, folder, "添付資料.pdf", "%PDF-1.4")
	// 対応XSLのないXMLは無視される。
	writeTestFile(t, folder, "orphan.xml", `<Unknown/>`)

	// プレフィックスのないフォルダは対象外。
	skipped := filepath.Join(root, "メタデータ")
	if err := os.MkdirAll(skipped, 0755); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, skipped, "meta.xml", `<meta/>`)

	folders, err := Analyze(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(folders) != 1 {
		t.Fatalf("len(folders) = %d, want 1", len(folders))
	}

	f := folders[0]
	if len(f.Documents) != 2 {
		t.Fatalf("len(Documents) = %d, want 2", len(f.Documents))
	}
	if f.Documents[0].Type != model.PairKagami {
		t.Errorf("first document should be kagami, got %v", f.Documents[0].Type)
	}
	if f.Documents[1].XmlFileName != "7100001.xml" {
		t.Errorf("second document = %q, want 7100001.xml", f.Documents[1].XmlFileName)
	}
	if len(f.XmlXslFiles) != 5 {
		t.Errorf("len(XmlXslFiles) = %d, want 5", len(f.XmlXslFiles))
	}
	if len(f.OtherFiles) != 1 || f.OtherFiles[0] != "添付資料.pdf" {
		t.Errorf("OtherFiles = %v", f.OtherFiles)
	}
}

func TestAnalyzeReachNumberKagami(t *testing.T) {
	root := t.TempDir()
	folder := filepath.Join(root, "0002_雇用保険")
	if err := os.MkdirAll(folder, 0755); err != nil {
		t.Fatal(err)
	}
	// 到達番号（18桁）のファイル名はkagami扱い。
	writeTestFile(t, folder, "202501010123456789.xml", `<DOC><APPTITLE>通知書</APPTITLE></DOC>`)
	writeTestFile(t, folder, "kagami.xsl", `<xsl:stylesheet/>`)

	folders, err := Analyze(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(folders) != 1 || len(folders[0].Documents) != 1 {
		t.Fatalf("unexpected structure: %+v", folders)
	}
	if folders[0].Documents[0].Type != model.PairKagami {
		t.Errorf("reach number file should be kagami, got %v", folders[0].Documents[0].Type)
	}
}

func TestAnalyzeReferencedStylesheet(t *testing.T) {
	root := t.TempDir()
	folder := filepath.Join(root, "0003_資格取得")
	if err := os.MkdirAll(folder, 0755); err != nil {
		t.Fatal(err)
	}
	// ベース名が一致しなくてもSTYLESHEETタグで解決できる。
	writeTestFile(t, folder, "henrei.xml", `<DataRoot><STYLESHEET>30839.xsl</STYLESHEET></DataRoot>`)
	writeTestFile(t, folder, "30839.xsl", `<xsl:stylesheet/>`)

	folders, err := Analyze(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(folders) != 1 || len(folders[0].Documents) != 1 {
		t.Fatalf("unexpected structure: %+v", folders)
	}
	if folders[0].Documents[0].XslFileName != "30839.xsl" {
		t.Errorf("XslFileName = %q, want 30839.xsl", folders[0].Documents[0].XslFileName)
	}
}

func TestDecodeDocument(t *testing.T) {
	utf8XML := `<?xml version="1.0" encoding="UTF-8"?><root>日本語</root>`
	if got := DecodeDocument([]byte(utf8XML)); got != utf8XML {
		t.Errorf("UTF-8 input should pass through unchanged")
	}

	sjisSource := `<?xml version="1.0" encoding="Shift_JIS"?><root>日本語</root>`
	encoded, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(sjisSource))
	if err != nil {
		t.Fatal(err)
	}

	decoded := DecodeDocument(encoded)
	if !strings.Contains(decoded, "日本語") {
		t.Errorf("Shift_JIS content not decoded: %q", decoded)
	}
}
