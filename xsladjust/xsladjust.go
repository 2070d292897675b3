// C:\Users\wasab\OneDrive\デスクトップ\TPK\xsladjust\xsladjust.go
package xsladjust

import (
	"fmt"
	"regexp"
	"strconv"
)

// 政府様式のXSLは640px固定幅で作られていることが多く、A4印刷では
// 余白を確保した720pxに拡大してから描画します。
const (
	a4WidthPx           = 720
	commonOriginalWidth = 640
)

var (
	widthPattern    = regexp.MustCompile(`(?i)width\s*:\s*(\d+)px`)
	heightPattern   = regexp.MustCompile(`(?i)height\s*:\s*(\d+)px`)
	colWidthPattern = regexp.MustCompile(`(?i)<col\s+([^>]*?)width="(\d+)px"([^>]*?)>`)
	styleClose      = regexp.MustCompile(`(?i)</style>`)
	headOpen        = regexp.MustCompile(`(?i)<head>`)
)

const pageStyles = `
    @page {
      size: A4;
      margin: 5mm;
    }
    pre {
      white-space: pre-wrap;
      word-wrap: break-word;
      overflow-wrap: break-word;
      word-break: break-all;
    }
    table {
      table-layout: fixed;
    }
    td {
      word-break: break-word;
      overflow-wrap: break-word;
    }
`

// Optimize はXSLスタイルシートをA4のPDF出力向けに調整します。
// 固定px幅のスケーリング、preタグの折り返し、metaタグの補完を行います。
// 構造には手を入れない見た目だけの前処理です。
func Optimize(xslContent string) string {
	adjusted := scaleFixedSizes(xslContent)

	// 改ページとpre折り返しのスタイルを既存の<style>の末尾に注入する。
	if styleClose.MatchString(adjusted) {
		injected := false
		adjusted = styleClose.ReplaceAllStringFunc(adjusted, func(m string) string {
			if injected {
				return m
			}
			injected = true
			return pageStyles + m
		})
	}

	adjusted = headOpen.ReplaceAllString(adjusted,
		`<head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />`)

	return adjusted
}

func scaleFixedSizes(content string) string {
	scale := float64(a4WidthPx) / float64(commonOriginalWidth)

	scalePx := func(raw string) string {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return raw
		}
		return strconv.Itoa(int(float64(n)*scale + 0.5))
	}

	content = widthPattern.ReplaceAllStringFunc(content, func(m string) string {
		sub := widthPattern.FindStringSubmatch(m)
		return fmt.Sprintf("width: %spx", scalePx(sub[1]))
	})

	content = heightPattern.ReplaceAllStringFunc(content, func(m string) string {
		sub := heightPattern.FindStringSubmatch(m)
		return fmt.Sprintf("height: %spx", scalePx(sub[1]))
	})

	content = colWidthPattern.ReplaceAllStringFunc(content, func(m string) string {
		sub := colWidthPattern.FindStringSubmatch(m)
		return fmt.Sprintf(`<col %swidth="%spx"%s>`, sub[1], scalePx(sub[2]), sub[3])
	})

	return content
}
