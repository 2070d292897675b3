// C:\Users\wasab\OneDrive\デスクトップ\TPK\bundle\process.go
package bundle

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"tpk/classify"
	"tpk/extract"
	"tpk/model"
	"tpk/naming"
	"tpk/render"
	"tpk/split"
	"tpk/xsladjust"
)

// Progress は処理経過を受け取るコールバックです（SSE配信用）。nil可。
type Progress func(message string)

// Process は各フォルダのドキュメントをPDF化します。フォルダ内は
// メモリ使用量を抑えるため逐次処理、フォルダ間はworkers数まで並列に
// 処理します（フォルダ間に共有状態はありません）。
func Process(ctx context.Context, folders []model.FolderStructure, renderer *render.Renderer, workers int, progress Progress) []model.ProcessedFolder {
	if workers < 1 {
		workers = 1
	}

	var progressMu sync.Mutex
	logf := func(format string, args ...interface{}) {
		message := fmt.Sprintf(format, args...)
		log.Print(message)
		if progress != nil {
			progressMu.Lock()
			progress(message)
			progressMu.Unlock()
		}
	}

	results := make([]model.ProcessedFolder, len(folders))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range folders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			folder := folders[i]
			logf("Processing folder %d/%d: %s", i+1, len(folders), folder.FolderName)
			start := time.Now()

			pdfs, err := processFolderDocuments(ctx, folder, renderer, logf)
			if err != nil {
				logf("Folder %s failed after %s: %v", folder.FolderName, time.Since(start).Round(time.Millisecond), err)
				results[i] = model.ProcessedFolder{
					FolderName: folder.FolderName,
					Success:    false,
					Error:      err.Error(),
				}
				return
			}

			logf("Completed %s: %d PDFs generated (%s)", folder.FolderName, len(pdfs), time.Since(start).Round(time.Millisecond))
			results[i] = model.ProcessedFolder{
				FolderName:  folder.FolderName,
				Success:     true,
				Pdfs:        pdfs,
				XmlXslFiles: folder.XmlXslFiles,
				OtherFiles:  folder.OtherFiles,
				PdfCount:    len(pdfs),
			}
		}(i)
	}
	wg.Wait()

	return results
}

// processFolderDocuments は1フォルダ分のドキュメントをPDF化します。
// レンダラー起因の失敗は文書単位で代替PDFに差し替えて処理を続行し、
// ファイルが読めない等のフォルダ単位の失敗だけをエラーとして返します。
func processFolderDocuments(ctx context.Context, folder model.FolderStructure, renderer *render.Renderer, logf func(string, ...interface{})) ([]model.GeneratedPdf, error) {
	var pdfs []model.GeneratedPdf
	usedNames := map[string]int{}

	appendPdf := func(name string, data []byte) {
		pdfs = append(pdfs, model.GeneratedPdf{Name: uniqueName(usedNames, name), Data: data})
	}

	// kagami.xmlの内容は他文書の通知書名の解決にも使うため先に読む。
	var kagamiContent string
	for _, doc := range folder.Documents {
		if doc.Type == model.PairKagami {
			content, err := ReadDocument(doc.XmlPath)
			if err != nil {
				return nil, fmt.Errorf("kagami読み込みに失敗 (%s): %w", doc.XmlFileName, err)
			}
			kagamiContent = content
			break
		}
	}

	for docIndex, doc := range folder.Documents {
		logf("  Document %d/%d: %s", docIndex+1, len(folder.Documents), doc.XmlFileName)

		xmlContent, err := ReadDocument(doc.XmlPath)
		if err != nil {
			return nil, fmt.Errorf("XML読み込みに失敗 (%s): %w", doc.XmlFileName, err)
		}
		rawXsl, err := ReadDocument(doc.XslPath)
		if err != nil {
			return nil, fmt.Errorf("XSL読み込みに失敗 (%s): %w", doc.XslFileName, err)
		}
		xslContent := xsladjust.Optimize(rawXsl)

		procedureInfo := classify.Detect(xmlContent)
		namingInfo := extract.NamingInfo(xmlContent, procedureInfo.Type, kagamiContent)

		if procedureInfo.PdfStrategy == model.StrategyIndividual && len(namingInfo.AllInsurers) > 1 {
			blocks := split.SubjectBlocks(xmlContent)
			if len(blocks) == len(namingInfo.AllInsurers) {
				logf("  Generating %d individual PDFs...", len(namingInfo.AllInsurers))
				for i, insurer := range namingInfo.AllInsurers {
					individualXml := split.ByInsurer(xmlContent, blocks[i])
					name := naming.IndividualFileName(procedureInfo.Type, insurer.Name, namingInfo.NoticeTitle)

					data, err := renderer.TransformAndRender(ctx, individualXml, xslContent)
					if err != nil {
						logf("  WARN: Render failed for %s: %v", insurer.Name, err)
						appendPdf(errorPdfName(doc.XmlFileName), errorPdf(doc.XmlFileName, err.Error()))
						continue
					}
					appendPdf(name, data)
					logf("    -> %s", name)
				}
				continue
			}

			// ブロック数と抽出人数が食い違う場合は分割をあきらめて連結PDFにする。
			logf("  WARN: Insurer block count mismatch (%d blocks, %d extracted) in %s, generating combined PDF",
				len(blocks), len(namingInfo.AllInsurers), doc.XmlFileName)
		}

		name := naming.SafeFileName(procedureInfo.Type, namingInfo)
		data, err := renderer.TransformAndRender(ctx, xmlContent, xslContent)
		if err != nil {
			logf("  WARN: Render failed for %s: %v", doc.XmlFileName, err)
			appendPdf(errorPdfName(doc.XmlFileName), errorPdf(doc.XmlFileName, err.Error()))
			continue
		}
		appendPdf(name, data)
		logf("    -> %s", name)
	}

	return pdfs, nil
}

// uniqueName は同一フォルダ内でのファイル名衝突を避けます。
func uniqueName(used map[string]int, name string) string {
	count := used[name]
	used[name] = count + 1
	if count == 0 {
		return name
	}
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s(%d)%s", strings.TrimSuffix(name, ext), count+1, ext)
}

func errorPdfName(xmlFileName string) string {
	base := strings.TrimSuffix(xmlFileName, filepath.Ext(xmlFileName))
	return naming.Sanitize("変換エラー_" + base + ".pdf")
}
