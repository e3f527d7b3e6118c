package transport

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewSuccess_JSONShape(t *testing.T) {
	out, err := json.Marshal(NewSuccess(map[string]bool{"postgresql": true}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := string(out)
	if !strings.Contains(got, `"status":"success"`) {
		t.Errorf("envelope = %s", got)
	}
	if strings.Contains(got, `"code"`) || strings.Contains(got, `"error"`) {
		t.Errorf("success envelope must omit error fields: %s", got)
	}
}

func TestNewError_JSONShape(t *testing.T) {
	detail := map[string]bool{"redis": false}
	out, err := json.Marshal(NewError("DEGRADED", "dependencies unhealthy", detail))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := string(out)
	for _, want := range []string{`"status":"error"`, `"code":"DEGRADED"`, `"error":"dependencies unhealthy"`, `"redis":false`} {
		if !strings.Contains(got, want) {
			t.Errorf("envelope missing %s: %s", want, got)
		}
	}
}

func TestNewError_NoDetail(t *testing.T) {
	out, err := json.Marshal(NewError("NOT_FOUND", "user not found", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), `"data"`) {
		t.Errorf("nil detail must be omitted: %s", out)
	}
}
