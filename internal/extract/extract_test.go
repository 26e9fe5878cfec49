package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackzampolin/formscan/internal/providers"
)

func newTestClient(t *testing.T, mock *providers.MockClient, cfg Config) *Client {
	t.Helper()
	reg := providers.NewRegistry()
	reg.Register(mock.Name(), mock)
	if cfg.DefaultProvider == "" {
		cfg.DefaultProvider = mock.Name()
	}
	return NewClient(reg, cfg)
}

func TestExtract_ParsesReply(t *testing.T) {
	mock := &providers.MockClient{
		NameValue: "mock",
		Response:  `{"Invoice Number": "INV-12345", "Customer Name": "John Doe", "Total Amount": "$999.99"}`,
	}
	client := newTestClient(t, mock, Config{})

	result, err := client.Extract(context.Background(), &Request{
		Image:  []byte("png"),
		Fields: []string{"Invoice Number", "Customer Name", "Total Amount"},
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := []FieldValue{
		{Name: "Invoice Number", Value: "INV-12345"},
		{Name: "Customer Name", Value: "John Doe"},
		{Name: "Total Amount", Value: "$999.99"},
	}
	if len(result.Fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(result.Fields))
	}
	for i, fv := range result.Fields {
		if fv != want[i] {
			t.Errorf("field %d: got %+v, want %+v", i, fv, want[i])
		}
	}
	if result.Cached {
		t.Error("fresh result should not be marked cached")
	}
}

func TestExtract_StripsCodeFences(t *testing.T) {
	mock := &providers.MockClient{
		NameValue: "mock",
		Response:  "```json\n{\"Total\": \"$5.00\"}\n```",
	}
	client := newTestClient(t, mock, Config{})

	result, err := client.Extract(context.Background(), &Request{
		Image:  []byte("png"),
		Fields: []string{"Total"},
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.Fields[0].Value != "$5.00" {
		t.Errorf("expected $5.00, got %q", result.Fields[0].Value)
	}
}

func TestExtract_MissingFieldGetsSentinel(t *testing.T) {
	mock := &providers.MockClient{
		NameValue: "mock",
		Response:  `{"Total": "$5.00"}`,
	}
	client := newTestClient(t, mock, Config{})

	result, err := client.Extract(context.Background(), &Request{
		Image:  []byte("png"),
		Fields: []string{"Total", "Due Date"},
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.Fields[1].Value != NotFound {
		t.Errorf("expected %q for missing field, got %q", NotFound, result.Fields[1].Value)
	}
}

func TestExtract_ProseReplyFails(t *testing.T) {
	mock := &providers.MockClient{
		NameValue: "mock",
		Response:  "I'm sorry, I cannot read this document.",
	}
	client := newTestClient(t, mock, Config{})

	_, err := client.Extract(context.Background(), &Request{
		Image:  []byte("png"),
		Fields: []string{"Total"},
	})
	if err == nil {
		t.Fatal("expected error for prose reply")
	}
	var eerr *Error
	if !errors.As(err, &eerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if eerr.Kind != ErrKindParse {
		t.Errorf("expected parse error, got kind %q", eerr.Kind)
	}
}

func TestExtract_ProviderFailure(t *testing.T) {
	mock := &providers.MockClient{
		NameValue: "mock",
		Err:       errors.New("quota exceeded"),
	}
	client := newTestClient(t, mock, Config{})

	_, err := client.Extract(context.Background(), &Request{
		Image:  []byte("png"),
		Fields: []string{"Total"},
	})
	var eerr *Error
	if !errors.As(err, &eerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if eerr.Kind != ErrKindTransport {
		t.Errorf("expected transport error, got kind %q", eerr.Kind)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected exactly 1 call (no retries), got %d", mock.CallCount())
	}
}

func TestExtract_PromptContainsFields(t *testing.T) {
	mock := &providers.MockClient{
		NameValue: "mock",
		Response:  `{"Serial # (Rev. 2)": "X9"}`,
	}
	client := newTestClient(t, mock, Config{})

	_, err := client.Extract(context.Background(), &Request{
		Image:  []byte("png"),
		Fields: []string{"Serial # (Rev. 2)"},
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if !strings.Contains(calls[0].Prompt, "Serial # (Rev. 2)") {
		t.Error("prompt should contain the field name verbatim")
	}
	if !strings.Contains(calls[0].Prompt, "N/A") {
		t.Error("prompt should instruct the sentinel value")
	}
}

func TestExtract_ValidatesRequest(t *testing.T) {
	mock := &providers.MockClient{NameValue: "mock", Response: "{}"}
	client := newTestClient(t, mock, Config{})

	if _, err := client.Extract(context.Background(), &Request{Fields: []string{"A"}}); err == nil {
		t.Error("expected error for missing image")
	}
	if _, err := client.Extract(context.Background(), &Request{Image: []byte("png")}); err == nil {
		t.Error("expected error for empty field list")
	}
	if mock.CallCount() != 0 {
		t.Errorf("invalid requests should not reach the provider, got %d calls", mock.CallCount())
	}
}

func TestExtract_UnknownProvider(t *testing.T) {
	mock := &providers.MockClient{NameValue: "mock", Response: "{}"}
	client := newTestClient(t, mock, Config{})

	_, err := client.Extract(context.Background(), &Request{
		Image:    []byte("png"),
		Fields:   []string{"A"},
		Provider: "nope",
	})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestExtract_CacheHit(t *testing.T) {
	mock := &providers.MockClient{
		NameValue: "mock",
		Response:  `{"Total": "$5.00"}`,
	}
	client := newTestClient(t, mock, Config{CacheEnabled: true})

	req := &Request{Image: []byte("png"), Fields: []string{"Total"}}

	first, err := client.Extract(context.Background(), req)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	second, err := client.Extract(context.Background(), req)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Errorf("expected 1 provider call, got %d", mock.CallCount())
	}
	if first.Cached {
		t.Error("first result should not be cached")
	}
	if !second.Cached {
		t.Error("second result should be marked cached")
	}
	if second.Fields[0].Value != "$5.00" {
		t.Errorf("cached result value mismatch: %q", second.Fields[0].Value)
	}
}

func TestExtract_CacheKeySensitivity(t *testing.T) {
	mock := &providers.MockClient{
		NameValue: "mock",
		Response:  `{"Total": "$5.00", "Date": "2024-01-01"}`,
	}
	client := newTestClient(t, mock, Config{CacheEnabled: true})

	if _, err := client.Extract(context.Background(), &Request{
		Image: []byte("png"), Fields: []string{"Total", "Date"},
	}); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	// Reordered fields are a different request, not a cache hit.
	if _, err := client.Extract(context.Background(), &Request{
		Image: []byte("png"), Fields: []string{"Date", "Total"},
	}); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if mock.CallCount() != 2 {
		t.Errorf("expected 2 provider calls, got %d", mock.CallCount())
	}
}

func TestExtract_CacheMissAfterModelChange(t *testing.T) {
	reg := providers.NewRegistry()
	first := &providers.MockClient{
		NameValue:  "gemini",
		ModelValue: "model-a",
		Response:   `{"Total": "$1.00"}`,
	}
	reg.Register(first.Name(), first)

	client := NewClient(reg, Config{DefaultProvider: "gemini", CacheEnabled: true})
	req := &Request{Image: []byte("png"), Fields: []string{"Total"}}

	if _, err := client.Extract(context.Background(), req); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	// A config reload can swap the model behind the same provider name.
	second := &providers.MockClient{
		NameValue:  "gemini",
		ModelValue: "model-b",
		Response:   `{"Total": "$2.00"}`,
	}
	reg.Register(second.Name(), second)

	result, err := client.Extract(context.Background(), req)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.Cached {
		t.Error("result from a new model should not be served from cache")
	}
	if result.Model != "model-b" {
		t.Errorf("expected model-b, got %q", result.Model)
	}
	if result.Fields[0].Value != "$2.00" {
		t.Errorf("expected fresh value $2.00, got %q", result.Fields[0].Value)
	}
	if second.CallCount() != 1 {
		t.Errorf("expected the new model to be called once, got %d", second.CallCount())
	}
}

func TestExtract_CacheDisabled(t *testing.T) {
	mock := &providers.MockClient{
		NameValue: "mock",
		Response:  `{"Total": "$5.00"}`,
	}
	client := newTestClient(t, mock, Config{CacheEnabled: false})

	req := &Request{Image: []byte("png"), Fields: []string{"Total"}}
	for i := 0; i < 2; i++ {
		if _, err := client.Extract(context.Background(), req); err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected 2 provider calls with cache off, got %d", mock.CallCount())
	}
}

func TestExtract_StrictKeys(t *testing.T) {
	mock := &providers.MockClient{
		NameValue: "mock",
		Response:  `{"Total": "$5.00", "Extra": "nope"}`,
	}
	client := newTestClient(t, mock, Config{StrictKeys: true})

	_, err := client.Extract(context.Background(), &Request{
		Image:  []byte("png"),
		Fields: []string{"Total"},
	})
	var eerr *Error
	if !errors.As(err, &eerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if eerr.Kind != ErrKindReply {
		t.Errorf("expected reply error, got kind %q", eerr.Kind)
	}
}

func TestExtract_StrictKeysExactMatchPasses(t *testing.T) {
	mock := &providers.MockClient{
		NameValue: "mock",
		Response:  `{"Total": "$5.00"}`,
	}
	client := newTestClient(t, mock, Config{StrictKeys: true})

	if _, err := client.Extract(context.Background(), &Request{
		Image:  []byte("png"),
		Fields: []string{"Total"},
	}); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
}
