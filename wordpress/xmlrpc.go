package wordpress

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const iso8601 = "20060102T15:04:05"

// XMLRPC talks to a WordPress-compatible blog over its XML-RPC endpoint.
// Every call carries the full credentials; no session state is kept.
type XMLRPC struct {
	endpoint string
	username string
	password string
	blogID   int
	http     *http.Client
}

// NewXMLRPC creates a client for the given endpoint. A nil httpClient gets a
// default with a 60s timeout. A zero blogID defaults to 1, which is what
// single-blog WordPress installs expect.
func NewXMLRPC(endpoint, username, password string, blogID int, httpClient *http.Client) *XMLRPC {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if blogID == 0 {
		blogID = 1
	}
	return &XMLRPC{
		endpoint: endpoint,
		username: username,
		password: password,
		blogID:   blogID,
		http:     httpClient,
	}
}

// GetTerms lists every term of the given taxonomy.
func (c *XMLRPC) GetTerms(ctx context.Context, taxonomy string) ([]Term, error) {
	v, err := c.call(ctx, "wp.getTerms", []any{c.blogID, c.username, c.password, taxonomy})
	if err != nil {
		return nil, err
	}
	terms := make([]Term, 0, len(v.Array))
	for _, tv := range v.Array {
		t := Term{Taxonomy: taxonomy}
		if m, ok := tv.member("term_id"); ok {
			t.ID = m.stringValue()
		}
		if m, ok := tv.member("name"); ok {
			t.Name = m.stringValue()
		}
		terms = append(terms, t)
	}
	return terms, nil
}

// NewTerm creates a term and returns its remote identifier.
func (c *XMLRPC) NewTerm(ctx context.Context, taxonomy, name string) (string, error) {
	content := map[string]any{"taxonomy": taxonomy, "name": name}
	v, err := c.call(ctx, "wp.newTerm", []any{c.blogID, c.username, c.password, content})
	if err != nil {
		return "", err
	}
	id := v.stringValue()
	if id == "" {
		return "", fmt.Errorf("wp.newTerm: remote returned no term id for %q", name)
	}
	return id, nil
}

// NewPost creates a post from the given content struct and returns the new
// post identifier.
func (c *XMLRPC) NewPost(ctx context.Context, content map[string]any) (string, error) {
	v, err := c.call(ctx, "wp.newPost", []any{c.blogID, c.username, c.password, content})
	if err != nil {
		return "", err
	}
	id := v.stringValue()
	if id == "" {
		return "", fmt.Errorf("wp.newPost: remote returned no post id")
	}
	return id, nil
}

// EditPost updates an existing post in place.
func (c *XMLRPC) EditPost(ctx context.Context, postID string, content map[string]any) error {
	v, err := c.call(ctx, "wp.editPost", []any{c.blogID, c.username, c.password, postIDParam(postID), content})
	if err != nil {
		return err
	}
	if !v.boolValue() {
		return fmt.Errorf("wp.editPost: remote returned false for post %s", postID)
	}
	return nil
}

// postIDParam sends numeric post ids as ints, which is what the remote API
// declares; anything else goes through as a string.
func postIDParam(id string) any {
	if n, err := strconv.Atoi(id); err == nil {
		return n
	}
	return id
}

func (c *XMLRPC) call(ctx context.Context, method string, params []any) (rpcValue, error) {
	body, err := marshalCall(method, params)
	if err != nil {
		return rpcValue{}, fmt.Errorf("%s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return rpcValue{}, fmt.Errorf("%s: %w", method, err)
	}
	req.Header.Set("Content-Type", "text/xml")

	log.Debug().Str("method", method).Str("endpoint", c.endpoint).Msg("remote call")
	resp, err := c.http.Do(req)
	if err != nil {
		return rpcValue{}, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return rpcValue{}, fmt.Errorf("%s: unexpected HTTP status %s", method, resp.Status)
	}

	var decoded rpcResponse
	if err := xml.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return rpcValue{}, fmt.Errorf("%s: decode response: %w", method, err)
	}
	if decoded.Fault != nil {
		return rpcValue{}, fmt.Errorf("%s: %w", method, faultError(*decoded.Fault))
	}
	if len(decoded.Params) == 0 {
		return rpcValue{}, fmt.Errorf("%s: empty response", method)
	}
	return decoded.Params[0], nil
}

// faultError turns a fault struct value into a *Fault, keeping the remote
// code and message untouched.
func faultError(v rpcValue) error {
	f := &Fault{}
	for _, m := range v.Struct {
		switch m.Name {
		case "faultCode":
			f.Code = m.Value.intValue()
		case "faultString":
			f.Message = m.Value.stringValue()
		}
	}
	return f
}

func marshalCall(method string, params []any) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString("<methodCall><methodName>")
	if err := xml.EscapeText(&b, []byte(method)); err != nil {
		return nil, err
	}
	b.WriteString("</methodName><params>")
	for _, p := range params {
		b.WriteString("<param>")
		if err := writeValue(&b, p); err != nil {
			return nil, err
		}
		b.WriteString("</param>")
	}
	b.WriteString("</params></methodCall>")
	return b.Bytes(), nil
}

// writeValue encodes a Go value as an XML-RPC <value>. Struct keys are
// emitted in sorted order so the wire form is deterministic.
func writeValue(b *bytes.Buffer, v any) error {
	b.WriteString("<value>")
	switch t := v.(type) {
	case string:
		b.WriteString("<string>")
		if err := xml.EscapeText(b, []byte(t)); err != nil {
			return err
		}
		b.WriteString("</string>")
	case int:
		fmt.Fprintf(b, "<int>%d</int>", t)
	case bool:
		if t {
			b.WriteString("<boolean>1</boolean>")
		} else {
			b.WriteString("<boolean>0</boolean>")
		}
	case time.Time:
		b.WriteString("<dateTime.iso8601>" + t.Format(iso8601) + "</dateTime.iso8601>")
	case []string:
		b.WriteString("<array><data>")
		for _, e := range t {
			if err := writeValue(b, e); err != nil {
				return err
			}
		}
		b.WriteString("</data></array>")
	case []any:
		b.WriteString("<array><data>")
		for _, e := range t {
			if err := writeValue(b, e); err != nil {
				return err
			}
		}
		b.WriteString("</data></array>")
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("<struct>")
		for _, k := range keys {
			b.WriteString("<member><name>")
			if err := xml.EscapeText(b, []byte(k)); err != nil {
				return err
			}
			b.WriteString("</name>")
			if err := writeValue(b, t[k]); err != nil {
				return err
			}
			b.WriteString("</member>")
		}
		b.WriteString("</struct>")
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	b.WriteString("</value>")
	return nil
}

type rpcResponse struct {
	XMLName xml.Name   `xml:"methodResponse"`
	Params  []rpcValue `xml:"params>param>value"`
	Fault   *rpcValue  `xml:"fault>value"`
}

type rpcValue struct {
	String  *string     `xml:"string"`
	Int     *string     `xml:"int"`
	I4      *string     `xml:"i4"`
	Boolean *string     `xml:"boolean"`
	Double  *string     `xml:"double"`
	Date    *string     `xml:"dateTime.iso8601"`
	Array   []rpcValue  `xml:"array>data>value"`
	Struct  []rpcMember `xml:"struct>member"`
	Text    string      `xml:",chardata"`
}

type rpcMember struct {
	Name  string   `xml:"name"`
	Value rpcValue `xml:"value"`
}

func (v rpcValue) member(name string) (rpcValue, bool) {
	for _, m := range v.Struct {
		if m.Name == name {
			return m.Value, true
		}
	}
	return rpcValue{}, false
}

// stringValue also covers bare <value>text</value> responses, which the
// protocol allows for strings.
func (v rpcValue) stringValue() string {
	if v.String != nil {
		return *v.String
	}
	if v.Int != nil {
		return strings.TrimSpace(*v.Int)
	}
	if v.I4 != nil {
		return strings.TrimSpace(*v.I4)
	}
	return strings.TrimSpace(v.Text)
}

func (v rpcValue) intValue() int {
	for _, s := range []*string{v.Int, v.I4} {
		if s != nil {
			n, _ := strconv.Atoi(strings.TrimSpace(*s))
			return n
		}
	}
	n, _ := strconv.Atoi(strings.TrimSpace(v.Text))
	return n
}

func (v rpcValue) boolValue() bool {
	if v.Boolean != nil {
		return strings.TrimSpace(*v.Boolean) == "1"
	}
	return strings.TrimSpace(v.Text) == "1"
}
