package sheets

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shlayncha-dot/tgbot-SLS/internal/config"
)

// Writer appends one verification record to the spreadsheet backend.
type Writer interface {
	Write(rec Record) error
}

// NewWriter picks the backend once at startup. A configured relay endpoint
// is the simpler trust boundary and wins over direct credentials.
func NewWriter(cfg *config.Config) (Writer, error) {
	if cfg.HasRelay() {
		return NewRelayWriter(cfg.RelayURL), nil
	}
	if cfg.HasServiceAccount() {
		ts, err := NewTokenSource(cfg.ServiceAccountEmail, cfg.PrivateKeyPEM)
		if err != nil {
			return nil, err
		}
		resolver := NewResolver(TargetConfig{
			SpreadsheetID:  cfg.SpreadsheetID,
			SpreadsheetURL: cfg.SpreadsheetURL,
			GID:            cfg.SheetGID,
			Range:          cfg.SheetRange,
		})
		return NewSheetsWriter(ts, resolver), nil
	}
	return nil, &Error{Kind: KindCredentials, Msg: "no relay URL and no service account configured"}
}

// UnconfiguredWriter always fails with the credentials diagnostic. It lets
// the dialogue run end to end when no backend is configured at all.
type UnconfiguredWriter struct{}

func (UnconfiguredWriter) Write(Record) error {
	return &Error{Kind: KindCredentials, Msg: "no spreadsheet backend configured"}
}

// SheetsWriter appends rows straight to the Sheets API, bearer-authenticated
// via the token source.
type SheetsWriter struct {
	tokens   *TokenSource
	resolver *Resolver
	httpc    *http.Client
	apiBase  string
}

func NewSheetsWriter(ts *TokenSource, resolver *Resolver) *SheetsWriter {
	return &SheetsWriter{
		tokens:   ts,
		resolver: resolver,
		httpc:    &http.Client{Timeout: 10 * time.Second},
		apiBase:  sheetsAPIBase,
	}
}

func (w *SheetsWriter) Write(rec Record) error {
	token, err := w.tokens.Token()
	if err != nil {
		return err
	}
	target, err := w.resolver.Resolve(token)
	if err != nil {
		return err
	}

	endpoint := w.apiBase + "/v4/spreadsheets/" + target.SpreadsheetID +
		"/values/" + url.PathEscape(target.Range) +
		":append?valueInputOption=USER_ENTERED&insertDataOption=INSERT_ROWS"
	payload := map[string]any{
		"majorDimension": "ROWS",
		"values":         [][]string{rec.Row()},
	}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", endpoint, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := w.httpc.Do(req)
	if err != nil {
		return &Error{Kind: KindUpstream, Msg: "append request", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &Error{
			Kind:   classify(resp.StatusCode, string(body)),
			Status: resp.StatusCode,
			Body:   string(body),
			Msg:    "append row",
		}
	}
	return nil
}

// RelayWriter hands the row to a pre-authorized relay endpoint that does
// the spreadsheet write under its own credentials.
type RelayWriter struct {
	url   string
	httpc *http.Client
}

func NewRelayWriter(url string) *RelayWriter {
	return &RelayWriter{url: url, httpc: &http.Client{Timeout: 10 * time.Second}}
}

func (w *RelayWriter) Write(rec Record) error {
	payload, _ := json.Marshal(map[string]any{"values": rec.Row()})
	resp, err := w.httpc.Post(w.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return &Error{Kind: KindUpstream, Msg: "relay request", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &Error{
			Kind:   classify(resp.StatusCode, string(body)),
			Status: resp.StatusCode,
			Body:   string(body),
			Msg:    "relay row",
		}
	}
	return nil
}
