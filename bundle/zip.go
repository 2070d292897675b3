// C:\Users\wasab\OneDrive\デスクトップ\TPK\bundle\zip.go
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"tpk/model"
)

// ExtractZip はZIPを一時ディレクトリに展開し、そのパスを返します。
func ExtractZip(zipData []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return "", fmt.Errorf("ZIPの読み込みに失敗: %w", err)
	}

	extractPath, err := os.MkdirTemp("", "tpk-zip-")
	if err != nil {
		return "", fmt.Errorf("一時フォルダの作成に失敗: %w", err)
	}

	for _, file := range reader.File {
		targetPath := filepath.Join(extractPath, filepath.Clean(file.Name))
		// 展開先の外を指すエントリは捨てる。
		if !strings.HasPrefix(targetPath, extractPath+string(os.PathSeparator)) {
			log.Printf("WARN: Skipping suspicious zip entry: %s", file.Name)
			continue
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return "", err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
			return "", err
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("ZIPエントリの展開に失敗 (%s): %w", file.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("ZIPエントリの読み取りに失敗 (%s): %w", file.Name, err)
		}
		if err := os.WriteFile(targetPath, content, 0644); err != nil {
			return "", err
		}
	}

	return extractPath, nil
}

// CreateResultZip は変換結果をZIPにまとめます。成功フォルダは生成PDFと
// 元のXML/XSL・その他ファイルを、失敗フォルダはエラー内容のテキストを
// 格納します。ルート直下のファイル（Excel等）もそのままコピーします。
func CreateResultZip(processedFolders []model.ProcessedFolder, extractPath string) ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	addFile := func(name string, data []byte) error {
		w, err := writer.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	for _, folder := range processedFolders {
		if !folder.Success {
			errorMessage := fmt.Sprintf(
				"PDFの変換中にエラーが発生しました\n\nフォルダ: %s\nエラー内容: %s\n\n対処方法:\n1. 元のZIPファイルの内容を確認してください\n2. 不足しているファイルを追加して再度アップロードしてください",
				folder.FolderName, folder.Error)
			if err := addFile(folder.FolderName+"/変換エラー.txt", []byte(errorMessage)); err != nil {
				return nil, err
			}
			continue
		}

		for _, pdf := range folder.Pdfs {
			if err := addFile(folder.FolderName+"/"+pdf.Name, pdf.Data); err != nil {
				return nil, err
			}
		}

		copyOriginal := func(fileName string) {
			data, err := os.ReadFile(filepath.Join(extractPath, folder.FolderName, fileName))
			if err != nil {
				log.Printf("WARN: Failed to copy original file %s: %v", fileName, err)
				return
			}
			if err := addFile(folder.FolderName+"/"+fileName, data); err != nil {
				log.Printf("WARN: Failed to add original file %s to zip: %v", fileName, err)
			}
		}
		for _, fileName := range folder.XmlXslFiles {
			copyOriginal(fileName)
		}
		for _, fileName := range folder.OtherFiles {
			copyOriginal(fileName)
		}
	}

	rootEntries, err := os.ReadDir(extractPath)
	if err == nil {
		for _, entry := range rootEntries {
			if entry.IsDir() {
				continue
			}
			data, err := os.ReadFile(filepath.Join(extractPath, entry.Name()))
			if err != nil {
				log.Printf("WARN: Failed to copy root file %s: %v", entry.Name(), err)
				continue
			}
			if err := addFile(entry.Name(), data); err != nil {
				return nil, err
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Cleanup は展開用の一時ディレクトリを削除します。
func Cleanup(tempPath string) {
	if err := os.RemoveAll(tempPath); err != nil {
		log.Printf("WARN: Failed to cleanup temp directory %s: %v", tempPath, err)
	}
}
