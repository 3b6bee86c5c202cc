package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/test", nil)
	return c, w
}

func decodeEnvelope(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode envelope failed: %v", err)
	}
	return out
}

func TestFailKeepsHTTPOKAndNullData(t *testing.T) {
	c, w := newTestContext(t)
	c.Set("request_id", "req-123")

	Fail(c, TypeDomainFailure, "Campaign not found")

	if w.Code != 200 {
		t.Fatalf("domain failures must stay HTTP 200, got %d", w.Code)
	}
	out := decodeEnvelope(t, w.Body.Bytes())
	if out["data"] != nil {
		t.Fatalf("domain failure data must stay null, got %v", out["data"])
	}
	if out["isSuccess"] != false || out["message"] != "Campaign not found" {
		t.Fatalf("unexpected envelope: %v", out)
	}
	if out["type"] != float64(TypeDomainFailure) {
		t.Fatalf("unexpected type: %v", out["type"])
	}
}

func TestUnauthorizedAttachesRequestID(t *testing.T) {
	c, w := newTestContext(t)
	c.Set("request_id", "req-456")

	Unauthorized(c, "Invalid or expired token")

	if w.Code != 401 {
		t.Fatalf("expected HTTP 401, got %d", w.Code)
	}
	out := decodeEnvelope(t, w.Body.Bytes())
	data, ok := out["data"].(map[string]interface{})
	if !ok || data["request_id"] != "req-456" {
		t.Fatalf("expected request_id in data, got %v", out["data"])
	}
	if out["type"] != float64(TypeUnauthorized) {
		t.Fatalf("unexpected type: %v", out["type"])
	}
}

func TestForbiddenWithoutRequestID(t *testing.T) {
	c, w := newTestContext(t)

	Forbidden(c, "Access denied")

	if w.Code != 403 {
		t.Fatalf("expected HTTP 403, got %d", w.Code)
	}
	out := decodeEnvelope(t, w.Body.Bytes())
	if out["data"] != nil {
		t.Fatalf("data must stay null without request_id, got %v", out["data"])
	}
}

func TestSuccessWithPage(t *testing.T) {
	c, w := newTestContext(t)

	SuccessWithPage(c, []string{"a", "b"}, Pagination{Page: 2, PageSize: 10, Total: 12, TotalPage: 2})

	out := decodeEnvelope(t, w.Body.Bytes())
	if out["isSuccess"] != true || out["type"] != float64(TypeOK) {
		t.Fatalf("unexpected envelope: %v", out)
	}
	page, ok := out["pagination"].(map[string]interface{})
	if !ok || page["total"] != float64(12) || page["totalPage"] != float64(2) {
		t.Fatalf("unexpected pagination: %v", out["pagination"])
	}
}
