package utils_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/semafind/closepairs/catalog"
	"github.com/semafind/closepairs/httpapi/utils"
	"github.com/semafind/closepairs/models"
	"github.com/semafind/closepairs/points"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		v        any
		status   int
		want     string
		wantCode int
	}{
		{
			name:     "successful encoding",
			v:        map[string]string{"hello": "world"},
			status:   http.StatusOK,
			want:     "{\"hello\":\"world\"}\n",
			wantCode: http.StatusOK,
		},
		{
			name:     "encoding error",
			v:        func() {}, // Not JSON encodable
			status:   http.StatusOK,
			want:     "{\"error\":\"json: unsupported type: func()\"}\n",
			wantCode: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			utils.Encode(w, tt.status, tt.v)
			require.Equal(t, tt.wantCode, w.Code)
			require.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestEncodeAccept(t *testing.T) {
	p := models.Point{X: 1.5, Y: -2}
	// ---------------------------
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	utils.EncodeAccept(w, r, http.StatusOK, p)
	require.Equal(t, utils.ContentTypeJSON, w.Header().Get("Content-Type"))
	require.Equal(t, "{\"x\":1.5,\"y\":-2}\n", w.Body.String())
	// ---------------------------
	r.Header.Set("Accept", "application/msgpack")
	w = httptest.NewRecorder()
	utils.EncodeAccept(w, r, http.StatusCreated, p)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, utils.ContentTypeMsgpack, w.Header().Get("Content-Type"))
	var decoded models.Point
	require.NoError(t, msgpack.Unmarshal(w.Body.Bytes(), &decoded))
	require.Equal(t, p, decoded)
}

type testPoints struct {
	Points []models.Point `json:"points" msgpack:"points"`
}

func (t testPoints) Validate() error {
	if len(t.Points) == 0 {
		return fmt.Errorf("no points")
	}
	return nil
}

func TestDecodeValid(t *testing.T) {
	want := testPoints{Points: []models.Point{{X: 1, Y: 2}}}
	tests := []struct {
		name    string
		body    []byte
		content string
		fail    bool
	}{
		{
			name:    "successful decoding and validation",
			body:    []byte(`{"points": [{"x": 1, "y": 2}]}`),
			content: "application/json",
			fail:    false,
		},
		{
			name:    "content type with charset",
			body:    []byte(`{"points": [{"x": 1, "y": 2}]}`),
			content: "application/json; charset=utf-8",
			fail:    false,
		},
		{
			name:    "invalid content type",
			body:    []byte(`{"points": [{"x": 1, "y": 2}]}`),
			content: "text/plain",
			fail:    true,
		},
		{
			name:    "missing content type",
			body:    []byte(`{"points": [{"x": 1, "y": 2}]}`),
			content: "",
			fail:    true,
		},
		{
			name:    "decoding error",
			body:    []byte(`{"points": [`),
			content: "application/json",
			fail:    true,
		},
		{
			name:    "validation error",
			body:    []byte(`{"gandalf": "world"}`),
			content: "application/json",
			fail:    true,
		},
		{
			name:    "msgpack decoding",
			body:    func() []byte { b, _ := msgpack.Marshal(want); return b }(),
			content: "application/msgpack",
			fail:    false,
		},
		{
			name:    "msgpack decoding error",
			body:    func() []byte { b, _ := msgpack.Marshal("hello"); return b }(),
			content: "application/msgpack",
			fail:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(tt.body))
			r.Header.Set("Content-Type", tt.content)
			v, err := utils.DecodeValid[testPoints](r)
			if tt.fail {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, want, v)
		})
	}
}

func BenchmarkDecodeValid(b *testing.B) {
	for _, n := range []int{6, 9, 12} {
		data := testPoints{Points: points.GeneratePoints(catalog.Prefix(n))}
		for _, encoding := range []string{"application/json", "application/msgpack"} {
			var payload []byte
			var err error
			switch encoding {
			case "application/json":
				payload, err = json.Marshal(data)
			case "application/msgpack":
				payload, err = msgpack.Marshal(data)
			}
			if err != nil {
				b.Fatal(err)
			}
			b.Run(fmt.Sprintf("n%d-%s", n, encoding), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
					r.Header.Set("Content-Type", encoding)
					_, err := utils.DecodeValid[testPoints](r)
					if err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
