package aios

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Doer performs HTTP requests. *http.Client satisfies it; a single client is
// meant to be shared by every device in the process.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Arg is one argument element of a SOAP action, in call order.
type Arg struct {
	Name  string
	Value string
}

// SOAPClient sends SOAP actions to one device. It holds no mutable state and
// is safe for concurrent use.
type SOAPClient struct {
	http   Doer
	host   string
	port   int
	logger *slog.Logger
}

// Option configures a client.
type Option func(*SOAPClient)

// WithPort overrides the device port (DefaultPort).
func WithPort(port int) Option {
	return func(c *SOAPClient) {
		if port > 0 {
			c.port = port
		}
	}
}

// WithLogger sets the logger used for per-call debug logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *SOAPClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewSOAPClient creates a client for the device at host.
func NewSOAPClient(httpClient Doer, host string, opts ...Option) *SOAPClient {
	c := &SOAPClient{
		http:   httpClient,
		host:   host,
		port:   DefaultPort,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Host returns the device host this client is bound to.
func (c *SOAPClient) Host() string {
	return c.host
}

func (c *SOAPClient) baseURL() string {
	return "http://" + net.JoinHostPort(c.host, strconv.Itoa(c.port))
}

// Response is the raw body of a successful (HTTP 200) call.
type Response struct {
	Action string
	Body   []byte
}

// Document parses the body as XML.
func (r *Response) Document() (*Element, error) {
	root, err := ParseDocument(r.Body)
	if err != nil {
		return nil, malformed(r.Action, err)
	}
	return root, nil
}

// SOAPAction returns the quoted SOAPACTION header value for an action.
func SOAPAction(namespace, action string) string {
	return fmt.Sprintf("%q", namespace+"#"+action)
}

// Call invokes action on svc. Network errors are returned unchanged; a
// non-200 status returns a *TransportError without reading the body.
func (c *SOAPClient) Call(ctx context.Context, svc Service, action string, args ...Arg) (*Response, error) {
	body, err := BuildEnvelope(svc.Namespace, action, args)
	if err != nil {
		return nil, err
	}

	url := c.baseURL() + svc.Path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	// Set directly so the header goes out as SOAPACTION, not Soapaction.
	req.Header["SOAPACTION"] = []string{SOAPAction(svc.Namespace, action)}
	req.Header.Set("Content-Type", "text/xml")

	return c.do(req, action)
}

func (c *SOAPClient) get(ctx context.Context, path, action string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, action)
}

func (c *SOAPClient) do(req *http.Request, action string) (*Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("aios: request failed", "action", action, "url", req.URL.String(), "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	c.logger.Debug("aios: response",
		"action", action,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		// Drained so the connection can be reused; never parsed.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{Action: action, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{Action: action, Body: data}, nil
}

// BuildEnvelope serializes a SOAP 1.1 envelope:
//
//	<s:Envelope><s:Body><u:{action} xmlns:u="{namespace}">{args}</u:{action}></s:Body></s:Envelope>
//
// Arguments are unqualified child elements of the action, in order.
func BuildEnvelope(namespace, action string, args []Arg) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)

	envelope := xml.StartElement{
		Name: xml.Name{Local: "s:Envelope"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns:s"}, Value: envelopeNS}},
	}
	body := xml.StartElement{Name: xml.Name{Local: "s:Body"}}
	actionEl := xml.StartElement{
		Name: xml.Name{Local: "u:" + action},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns:u"}, Value: namespace}},
	}

	for _, tok := range []xml.Token{envelope, body, actionEl} {
		if err := enc.EncodeToken(tok); err != nil {
			return nil, fmt.Errorf("encode envelope: %w", err)
		}
	}
	for _, arg := range args {
		if err := enc.EncodeElement(arg.Value, xml.StartElement{Name: xml.Name{Local: arg.Name}}); err != nil {
			return nil, fmt.Errorf("encode argument %s: %w", arg.Name, err)
		}
	}
	for _, tok := range []xml.Token{actionEl.End(), body.End(), envelope.End()} {
		if err := enc.EncodeToken(tok); err != nil {
			return nil, fmt.Errorf("encode envelope: %w", err)
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
