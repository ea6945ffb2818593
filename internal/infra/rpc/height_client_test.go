package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vietddude/sentinel/internal/core/domain"
)

func rpcServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchHeight_HexResult(t *testing.T) {
	srv := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req["method"] != "eth_blockNumber" {
			t.Errorf("expected eth_blockNumber, got %v", req["method"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x10a"}`))
	})

	client := NewHeightClient("local", srv.URL, 2*time.Second)
	result := client.FetchHeight(context.Background())

	if !result.OK() {
		t.Fatalf("expected success, got error: %v", result.Err)
	}
	if result.Height != 266 {
		t.Errorf("expected height 266, got %d", result.Height)
	}
}

func TestFetchHeight_NumericResult(t *testing.T) {
	srv := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":12345}`))
	})

	client := NewHeightClient("local", srv.URL, 2*time.Second)
	result := client.FetchHeight(context.Background())

	if !result.OK() {
		t.Fatalf("expected success, got error: %v", result.Err)
	}
	if result.Height != 12345 {
		t.Errorf("expected height 12345, got %d", result.Height)
	}
}

func TestFetchHeight_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Shut down immediately so the port refuses connections

	client := NewHeightClient("local", srv.URL, 2*time.Second)
	result := client.FetchHeight(context.Background())

	if result.OK() {
		t.Fatal("expected failure for closed server")
	}
	if result.Reason != domain.ReasonUnreachable {
		t.Errorf("expected unreachable, got %s", result.Reason)
	}
}

func TestFetchHeight_Timeout(t *testing.T) {
	srv := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"result":"0x1"}`))
	})

	client := NewHeightClient("local", srv.URL, 50*time.Millisecond)
	result := client.FetchHeight(context.Background())

	if result.OK() {
		t.Fatal("expected timeout failure")
	}
	if result.Reason != domain.ReasonUnreachable {
		t.Errorf("expected unreachable for timeout, got %s", result.Reason)
	}
}

func TestFetchHeight_ProtocolErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"non-2xx status",
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "internal error", http.StatusInternalServerError)
			},
		},
		{
			"malformed json",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"result":`))
			},
		},
		{
			"rpc error object",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found"}}`))
			},
		},
		{
			"invalid hex",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"result":"0xzz"}`))
			},
		},
		{
			"missing result",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"jsonrpc":"2.0","id":1}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := rpcServer(t, tt.handler)

			client := NewHeightClient("remote", srv.URL, 2*time.Second)
			result := client.FetchHeight(context.Background())

			if result.OK() {
				t.Fatal("expected failure")
			}
			if result.Reason != domain.ReasonProtocol {
				t.Errorf("expected protocol_error, got %s", result.Reason)
			}
		})
	}
}

func TestParseHexString(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"0x0", 0, false},
		{"0x10a", 266, false},
		{"0xffffffffffffffff", 18446744073709551615, false},
		{"10a", 266, false},
		{"0x", 0, true},
		{"not-hex", 0, true},
	}

	for _, tt := range tests {
		got, err := parseHexString(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseHexString(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseHexString(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseHexString(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
