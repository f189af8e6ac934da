package sheets

import (
	"crypto/rsa"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	googleTokenEndpoint = "https://oauth2.googleapis.com/token"
	spreadsheetsScope   = "https://www.googleapis.com/auth/spreadsheets"
	jwtBearerGrant      = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// Tokens are valid for an hour; refresh a minute early so one is never
	// presented right at its expiry edge.
	tokenLifetime = time.Hour
	expiryLeeway  = time.Minute
)

// TokenSource mints Google API bearer tokens from a service-account key by
// exchanging a self-signed RS256 assertion, and caches each token for its
// validity window.
type TokenSource struct {
	email    string
	key      *rsa.PrivateKey
	httpc    *http.Client
	endpoint string
	now      func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewTokenSource parses the service-account key. Missing or malformed
// material fails with a credentials-kind error.
func NewTokenSource(email, privateKeyPEM string) (*TokenSource, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(privateKeyPEM) == "" {
		return nil, &Error{Kind: KindCredentials, Msg: "service account email or private key not configured"}
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return nil, &Error{Kind: KindCredentials, Msg: "parse service account private key", Err: err}
	}
	return &TokenSource{
		email:    email,
		key:      key,
		httpc:    &http.Client{Timeout: 10 * time.Second},
		endpoint: googleTokenEndpoint,
		now:      time.Now,
	}, nil
}

// Token returns a bearer token, minting a fresh one when the cached token
// is absent or about to expire.
func (ts *TokenSource) Token() (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	now := ts.now()
	if ts.token != "" && now.Before(ts.expiry.Add(-expiryLeeway)) {
		return ts.token, nil
	}

	assertion, err := ts.assertion(now)
	if err != nil {
		return "", err
	}
	token, expiresIn, err := ts.exchange(assertion)
	if err != nil {
		return "", err
	}
	ts.token = token
	ts.expiry = now.Add(expiresIn)
	return token, nil
}

// assertion builds the signed JWT-bearer claim set: issuer is the service
// account, audience is the token endpoint, validity is one hour from now.
func (ts *TokenSource) assertion(now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss":   ts.email,
		"scope": spreadsheetsScope,
		"aud":   ts.endpoint,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(ts.key)
	if err != nil {
		return "", &Error{Kind: KindCredentials, Msg: "sign token assertion", Err: err}
	}
	return signed, nil
}

func (ts *TokenSource) exchange(assertion string) (string, time.Duration, error) {
	form := url.Values{
		"grant_type": {jwtBearerGrant},
		"assertion":  {assertion},
	}
	resp, err := ts.httpc.PostForm(ts.endpoint, form)
	if err != nil {
		return "", 0, &Error{Kind: KindUpstream, Msg: "token exchange request", Err: err}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return "", 0, &Error{
			Kind:   classify(resp.StatusCode, string(body)),
			Status: resp.StatusCode,
			Body:   string(body),
			Msg:    "token exchange",
		}
	}

	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.AccessToken == "" {
		return "", 0, &Error{Kind: KindUpstream, Msg: "decode token response", Err: err}
	}
	expiresIn := time.Duration(out.ExpiresIn) * time.Second
	if expiresIn <= 0 {
		expiresIn = tokenLifetime
	}
	return out.AccessToken, expiresIn, nil
}
