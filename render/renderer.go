// C:\Users\wasab\OneDrive\デスクトップ\TPK\render\renderer.go
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Renderer はヘッドレスブラウザを保持し、XSLT変換とPDF出力を行います。
// ブラウザはリクエスト間で使い回し、メモリ肥大を防ぐため一定回数ごとに
// 再起動します。パイプライン本体（判定・抽出・命名）はこのハンドルに
// 依存しないため、Rendererは明示的に注入して使います。
type Renderer struct {
	mu           sync.Mutex
	browser      *rod.Browser
	requestCount int
	maxRequests  int
	timeout      time.Duration
}

type Stats struct {
	Active       bool `json:"isActive"`
	RequestCount int  `json:"requestCount"`
	MaxRequests  int  `json:"maxRequests"`
}

func NewRenderer(maxRequests int, timeout time.Duration) *Renderer {
	if maxRequests <= 0 {
		maxRequests = 50
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Renderer{maxRequests: maxRequests, timeout: timeout}
}

func (r *Renderer) acquireBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil && r.requestCount >= r.maxRequests {
		log.Printf("Recycling browser instance after %d requests", r.requestCount)
		if err := r.browser.Close(); err != nil {
			log.Printf("WARN: Failed to close browser for recycle: %v", err)
		}
		r.browser = nil
		r.requestCount = 0
	}

	if r.browser == nil {
		log.Println("Launching new browser instance...")
		u, err := launcher.New().
			Headless(true).
			Set("no-sandbox").
			Set("disable-gpu").
			Set("disable-dev-shm-usage").
			Launch()
		if err != nil {
			return nil, fmt.Errorf("ブラウザの起動に失敗: %w", err)
		}
		browser := rod.New().ControlURL(u)
		if err := browser.Connect(); err != nil {
			return nil, fmt.Errorf("ブラウザへの接続に失敗: %w", err)
		}
		r.browser = browser
	}

	r.requestCount++
	return r.browser, nil
}

// TransformAndRender はXMLをXSLTでHTML化し、A4のPDFバイト列を返します。
// 変換はブラウザ内のXSLTProcessorで実行します。
func (r *Renderer) TransformAndRender(ctx context.Context, xmlContent, xslContent string) ([]byte, error) {
	browser, err := r.acquireBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("ページの作成に失敗: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx).Timeout(r.timeout)

	html, err := buildTransformHarness(xmlContent, xslContent)
	if err != nil {
		return nil, err
	}

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("変換ページの読み込みに失敗: %w", err)
	}

	// 変換完了フラグ（またはエラー）を待つ。
	obj, err := page.Eval(`() => new Promise((resolve) => {
		const check = () => {
			if (window.transformError) { resolve(String(window.transformError)); return; }
			if (window.transformComplete) { resolve(""); return; }
			setTimeout(check, 50);
		};
		check();
	})`)
	if err != nil {
		return nil, fmt.Errorf("XSLT変換の完了待ちに失敗: %w", err)
	}
	if msg := obj.Value.Str(); msg != "" {
		return nil, fmt.Errorf("XSLT変換に失敗: %s", msg)
	}

	margin := 10.0 / 25.4 // 10mm in inches
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      f(8.27),
		PaperHeight:     f(11.69),
		MarginTop:       f(margin),
		MarginBottom:    f(margin),
		MarginLeft:      f(margin),
		MarginRight:     f(margin),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("PDF出力に失敗: %w", err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("PDFデータの読み取りに失敗: %w", err)
	}
	return data, nil
}

func f(v float64) *float64 { return &v }

// buildTransformHarness はブラウザ内でXSLT変換を実行するHTMLを組み立てます。
// XML/XSLはJSON文字列として埋め込み、内容によるスクリプト破壊を防ぎます。
func buildTransformHarness(xmlContent, xslContent string) (string, error) {
	xmlJSON, err := json.Marshal(xmlContent)
	if err != nil {
		return "", fmt.Errorf("XMLの埋め込みに失敗: %w", err)
	}
	xslJSON, err := json.Marshal(xslContent)
	if err != nil {
		return "", fmt.Errorf("XSLの埋め込みに失敗: %w", err)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            margin: 0;
            padding: 20px;
            font-family: "MS Gothic", "Yu Gothic", sans-serif;
        }
        #result {
            width: 100%%;
        }
    </style>
</head>
<body>
    <div id="result"></div>
    <script>
        try {
            const xmlText = %s;
            const xslText = %s;
            const parser = new DOMParser();
            const xmlDoc = parser.parseFromString(xmlText, "text/xml");
            const xslDoc = parser.parseFromString(xslText, "text/xml");
            const xsltProcessor = new XSLTProcessor();
            xsltProcessor.importStylesheet(xslDoc);
            const resultDoc = xsltProcessor.transformToFragment(xmlDoc, document);
            document.getElementById("result").appendChild(resultDoc);
            window.transformComplete = true;
        } catch (e) {
            window.transformError = e;
        }
    </script>
</body>
</html>`, string(xmlJSON), string(xslJSON)), nil
}

// Stats は稼働状況を返します（ヘルスチェック用）。
func (r *Renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Active:       r.browser != nil,
		RequestCount: r.requestCount,
		MaxRequests:  r.maxRequests,
	}
}

// Close は保持しているブラウザを終了します。
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		if err := r.browser.Close(); err != nil {
			log.Printf("WARN: Failed to close browser: %v", err)
		}
		r.browser = nil
		r.requestCount = 0
	}
}
