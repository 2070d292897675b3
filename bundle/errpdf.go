// C:\Users\wasab\OneDrive\デスクトップ\TPK\bundle\errpdf.go
package bundle

import (
	"bytes"
	"fmt"
	"log"

	"github.com/jung-kurt/gofpdf"
)

// errorPdf は変換に失敗した文書の代わりに格納するプレースホルダPDFを生成
// します。コアフォントはLatin-1のみ対応のため、本文はASCIIに落として出力
// します。
func errorPdf(docName, message string) []byte {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, "PDF Conversion Error", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("Document: %s", asciiOnly(docName)), "", "L", false)
	pdf.Ln(2)
	pdf.MultiCell(0, 6, fmt.Sprintf("Error: %s", asciiOnly(message)), "", "L", false)
	pdf.Ln(6)
	pdf.MultiCell(0, 6, "Please check the original XML/XSL files and upload again.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("WARN: Failed to build error placeholder PDF: %v", err)
		return nil
	}
	return buf.Bytes()
}

func asciiOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 0x20 && r < 0x7f {
			out = append(out, r)
		} else {
			out = append(out, '?')
		}
	}
	return string(out)
}
