package mip65

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchWad(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "number", body: `{"nav": 101.25}`, path: "$.nav", want: "101.25"},
		{name: "nested", body: `{"fund": {"latest": {"value": 99.9}}}`, path: "$.fund.latest.value", want: "99.9"},
		{name: "quoted number", body: `{"nav": "101.25"}`, path: "$.nav", want: "101.25"},
		{name: "comma separator", body: `{"nav": "1 013,5"}`, path: "$.nav", want: "1013.5"},
		{name: "list answer", body: `{"navs": [42.0, 43.0]}`, path: "$.navs[*]", want: "42"},
		{name: "not a number", body: `{"nav": "n/a"}`, path: "$.nav", wantErr: true},
		{name: "bad path", body: `{"nav": 101.25}`, path: "$.price", wantErr: true},
		{name: "object value", body: `{"nav": {"v": 1}}`, path: "$.nav", wantErr: true},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, tt.body)
		}))

		got, err := FetchWad(srv.Client(), srv.URL, tt.path)
		srv.Close()

		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: want error, got %s", tt.name, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestFetchWadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := FetchWad(srv.Client(), srv.URL, "$.nav"); err == nil {
		t.Error("want error on 404, got none")
	}
}
