package sheets

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

const (
	sheetsAPIBase = "https://sheets.googleapis.com"

	// Used when neither an explicit id nor a share URL is configured.
	defaultSpreadsheetID = "1q7xdgTSLRRCk6frjxSFzLXkGW47B7JXhGLK0K6Wr5pE"
	defaultRange         = "Лист1!A:F"
)

var (
	reSpreadsheetID = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9\-_]+)`)
	reGID           = regexp.MustCompile(`[#?&]gid=(\d+)`)
)

// Target is the destination of one append: which spreadsheet, which range.
type Target struct {
	SpreadsheetID string
	Range         string
}

// TargetConfig is the raw configured destination, any of whose fields may
// be empty.
type TargetConfig struct {
	SpreadsheetID  string
	SpreadsheetURL string
	GID            string
	Range          string
}

// Resolver turns a TargetConfig into a concrete Target, fetching sheet
// metadata when only a numeric gid identifies the tab. The result is cached
// for the process lifetime: the destination never changes between writes.
type Resolver struct {
	cfg     TargetConfig
	httpc   *http.Client
	apiBase string

	mu     sync.Mutex
	cached *Target
}

func NewResolver(cfg TargetConfig) *Resolver {
	return &Resolver{
		cfg:     cfg,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		apiBase: sheetsAPIBase,
	}
}

// Resolve applies the precedence rules: explicit range wins outright, then
// a gid-identified tab looked up in metadata, then the default range. The
// spreadsheet id follows explicit > parsed from share URL > built-in default.
func (r *Resolver) Resolve(token string) (Target, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cached != nil {
		return *r.cached, nil
	}

	id := r.cfg.SpreadsheetID
	if id == "" {
		if m := reSpreadsheetID.FindStringSubmatch(r.cfg.SpreadsheetURL); m != nil {
			id = m[1]
		}
	}
	if id == "" {
		id = defaultSpreadsheetID
	}

	if r.cfg.Range != "" {
		t := Target{SpreadsheetID: id, Range: r.cfg.Range}
		r.cached = &t
		return t, nil
	}

	gid := r.cfg.GID
	if gid == "" {
		if m := reGID.FindStringSubmatch(r.cfg.SpreadsheetURL); m != nil {
			gid = m[1]
		}
	}
	if gid == "" {
		t := Target{SpreadsheetID: id, Range: defaultRange}
		r.cached = &t
		return t, nil
	}

	title, err := r.titleByGID(id, gid, token)
	if err != nil {
		return Target{}, err
	}
	t := Target{SpreadsheetID: id, Range: RangeForTitle(title)}
	r.cached = &t
	return t, nil
}

// RangeForTitle quotes a sheet title into an A1-notation range over columns
// A..F, doubling any single quote inside the title.
func RangeForTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'!A:F"
}

func (r *Resolver) titleByGID(spreadsheetID, gid, token string) (string, error) {
	url := fmt.Sprintf("%s/v4/spreadsheets/%s?fields=sheets.properties", r.apiBase, spreadsheetID)
	req, _ := http.NewRequest("GET", url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := r.httpc.Do(req)
	if err != nil {
		return "", &Error{Kind: KindUpstream, Msg: "fetch spreadsheet metadata", Err: err}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return "", &Error{
			Kind:   classify(resp.StatusCode, string(body)),
			Status: resp.StatusCode,
			Body:   string(body),
			Msg:    "fetch spreadsheet metadata",
		}
	}

	var meta struct {
		Sheets []struct {
			Properties struct {
				SheetID int64  `json:"sheetId"`
				Title   string `json:"title"`
			} `json:"properties"`
		} `json:"sheets"`
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		return "", &Error{Kind: KindUpstream, Msg: "decode spreadsheet metadata", Err: err}
	}
	for _, s := range meta.Sheets {
		if fmt.Sprintf("%d", s.Properties.SheetID) == gid {
			return s.Properties.Title, nil
		}
	}
	return "", &Error{Kind: KindNotFound, Msg: "no sheet with gid " + gid}
}
