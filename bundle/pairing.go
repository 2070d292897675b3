// C:\Users\wasab\OneDrive\デスクトップ\TPK\bundle\pairing.go
package bundle

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"tpk/model"
)

var (
	// 処理対象は「0001_」のような数字4桁プレフィックス付きフォルダのみ。
	targetFolderPattern = regexp.MustCompile(`^\d{4}_`)
	// 到達番号（数字18桁）だけのファイル名はkagamiとして扱う。
	reachNumberPattern  = regexp.MustCompile(`^\d{18}$`)
	stylesheetTag       = regexp.MustCompile(`<STYLESHEET>([^<]+)</STYLESHEET>`)
	stylesheetPI        = regexp.MustCompile(`<\?xml-stylesheet[^>]*href="([^"]+)"`)
	encodingDeclPattern = regexp.MustCompile(`(?i)encoding="(shift_jis|shift-jis|sjis|windows-31j|cp932)"`)
)

// Analyze は展開済みディレクトリのフォルダ構造を分析します。
func Analyze(extractPath string) ([]model.FolderStructure, error) {
	entries, err := os.ReadDir(extractPath)
	if err != nil {
		return nil, err
	}

	var folders []model.FolderStructure
	for _, entry := range entries {
		if !entry.IsDir() || !targetFolderPattern.MatchString(entry.Name()) {
			continue
		}
		folderPath := filepath.Join(extractPath, entry.Name())
		fileEntries, err := os.ReadDir(folderPath)
		if err != nil {
			log.Printf("WARN: Failed to read folder %s: %v", entry.Name(), err)
			continue
		}

		files := lo.FilterMap(fileEntries, func(e os.DirEntry, _ int) (string, bool) {
			return e.Name(), !e.IsDir()
		})

		documents := detectDocumentPairs(folderPath, files)

		xmlXslFiles := lo.Filter(files, func(f string, _ int) bool {
			ext := strings.ToLower(filepath.Ext(f))
			return ext == ".xml" || ext == ".xsl"
		})
		// PDFやTXTなどの同梱ファイルは変換後のZIPにもそのまま残す。
		otherFiles := lo.Filter(files, func(f string, _ int) bool {
			ext := strings.ToLower(filepath.Ext(f))
			return ext != ".xml" && ext != ".xsl"
		})

		folders = append(folders, model.FolderStructure{
			FolderName:  entry.Name(),
			FolderPath:  folderPath,
			Documents:   documents,
			XmlXslFiles: xmlXslFiles,
			OtherFiles:  otherFiles,
		})
	}

	return folders, nil
}

// detectDocumentPairs はフォルダ内のXML/XSLペアを検出します。
// 対応するXSLが見つからないXMLはペアにせず読み飛ばします（エラーにしない）。
func detectDocumentPairs(folderPath string, files []string) []model.DocumentPair {
	xmlFiles := lo.Filter(files, func(f string, _ int) bool {
		return strings.HasSuffix(strings.ToLower(f), ".xml")
	})
	xslFiles := lo.Filter(files, func(f string, _ int) bool {
		return strings.HasSuffix(strings.ToLower(f), ".xsl")
	})

	var pairs []model.DocumentPair
	for _, xmlFile := range xmlFiles {
		baseName := strings.TrimSuffix(xmlFile, filepath.Ext(xmlFile))

		isKagami := strings.EqualFold(baseName, "kagami") || reachNumberPattern.MatchString(baseName)

		var xslFile string
		if isKagami {
			xslFile, _ = lo.Find(xslFiles, func(f string) bool {
				return strings.EqualFold(strings.TrimSuffix(f, filepath.Ext(f)), "kagami")
			})
		} else {
			xslFile, _ = lo.Find(xslFiles, func(f string) bool {
				return strings.TrimSuffix(f, filepath.Ext(f)) == baseName
			})

			if xslFile == "" {
				// DataRoot形式などはXML本文がスタイルシート名を持っている。
				xmlContent, err := ReadDocument(filepath.Join(folderPath, xmlFile))
				if err == nil {
					if name := referencedStylesheet(xmlContent); name != "" {
						xslFile, _ = lo.Find(xslFiles, func(f string) bool { return f == name })
					}
				}
			}
		}

		if xslFile == "" {
			continue
		}

		pairType := model.PairNotification
		if isKagami {
			pairType = model.PairKagami
		}
		pairs = append(pairs, model.DocumentPair{
			Type:        pairType,
			XmlPath:     filepath.Join(folderPath, xmlFile),
			XslPath:     filepath.Join(folderPath, xslFile),
			XmlFileName: xmlFile,
			XslFileName: xslFile,
		})
	}

	// kagamiの通知書名は他の文書の命名にも使うため、必ず先頭に置く。
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Type == model.PairKagami && pairs[j].Type != model.PairKagami
	})

	return pairs
}

// referencedStylesheet はXML本文からスタイルシートのファイル名を取り出します。
func referencedStylesheet(xmlContent string) string {
	if m := stylesheetTag.FindStringSubmatch(xmlContent); m != nil {
		return m[1]
	}
	if m := stylesheetPI.FindStringSubmatch(xmlContent); m != nil {
		return m[1]
	}
	return ""
}

// ReadDocument はXML/XSLファイルを読み込み、宣言がShift_JIS系の場合は
// UTF-8に変換して返します。
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return DecodeDocument(data), nil
}

// DecodeDocument はエンコーディング宣言を見てShift_JIS系ならUTF-8へ変換します。
func DecodeDocument(data []byte) string {
	head := data
	if len(head) > 200 {
		head = head[:200]
	}
	if encodingDeclPattern.Match(head) {
		decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
		if err == nil {
			return string(decoded)
		}
		log.Printf("WARN: Shift_JIS decode failed, using raw bytes: %v", err)
	}
	return string(data)
}
