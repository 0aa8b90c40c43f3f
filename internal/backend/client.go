package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/guonaihong/gout"
	"github.com/guonaihong/gout/dataflow"
	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client is the thin REST wrapper around the pharmacy backend. It
// attaches the session credential as a bearer token on every call and
// maps failures into the error taxonomy. It holds no state of its own.
type Client struct {
	base    string
	timeout time.Duration
	debug   bool
	tokenFn func() string
}

func New(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{base: base, timeout: timeout}
}

// SetTokenSource installs the credential callback, typically the
// session store's Token method. A nil source sends anonymous requests.
func (c *Client) SetTokenSource(fn func() string) {
	c.tokenFn = fn
}

func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) call(ctx context.Context, method, path string, query gout.H, body interface{}, out interface{}) error {
	url := c.base + path

	var df *dataflow.DataFlow
	switch method {
	case "GET":
		df = gout.GET(url)
	case "POST":
		df = gout.POST(url)
	case "PUT":
		df = gout.PUT(url)
	case "DELETE":
		df = gout.DELETE(url)
	default:
		return &Error{Kind: KindUnknown, Message: "unsupported method " + method}
	}

	df = df.WithContext(ctx).SetTimeout(c.timeout).Debug(c.debug)
	if c.tokenFn != nil {
		if token := c.tokenFn(); token != "" {
			df = df.SetHeader(gout.H{"Authorization": "Bearer " + token})
		}
	}
	if query != nil {
		df = df.SetQuery(query)
	}
	if body != nil {
		df = df.SetJSON(body)
	}

	var (
		code int
		raw  []byte
	)
	start := time.Now()
	err := df.BindBody(&raw).Code(&code).Do()
	zap.L().Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", code),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))
	if err != nil {
		return networkErr(err)
	}
	if code >= 400 {
		return decodeError(code, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Kind: KindUnknown, Status: code,
				Message: fmt.Sprintf("malformed response for %s %s", method, path), cause: err}
		}
	}
	return nil
}

func decodeError(code int, raw []byte) *Error {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return statusErr(code, "")
	}
	var body errorBody
	if err := mapstructure.WeakDecode(fields, &body); err != nil {
		return statusErr(code, "")
	}
	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	return statusErr(code, msg)
}
