package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/haierkeys/simple-note-service/pkg/code"
	"github.com/haierkeys/simple-note-service/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type writeBody struct {
	Title   *string `json:"title" binding:"required,notblank"`
	Content *string `json:"content" binding:"required"`
	Creator *string `json:"creator"`
}

type idParam struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

func newJSONContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBindAndValid(t *testing.T) {
	uni, err := validator.Install()
	require.NoError(t, err)
	trans, _ := uni.GetTranslator("en")

	tests := []struct {
		name      string
		body      string
		wantValid bool
		wantKey   string
	}{
		{"valid", `{"title":"Test Note","content":"This is a test","creator":"Tester"}`, true, ""},
		{"null creator", `{"title":"Test Note","content":"x","creator":null}`, true, ""},
		{"missing content", `{"title":"Test Note","creator":"Tester"}`, false, "content"},
		{"wrong type", `{"title":5,"content":"x"}`, false, "title"},
		{"malformed", `{"title":`, false, "body"},
		{"empty body", ``, false, "body"},
		{"second value", `{"title":"x","content":"y"}{"a":1}`, false, "body"},
		{"trailing garbage", `{"title":"x","content":"y"} x`, false, "body"},
		{"trailing whitespace", "{\"title\":\"x\",\"content\":\"y\"}\n ", true, ""},
		{"top level array", `[1]`, false, "body"},
		{"top level string", `"note"`, false, "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newJSONContext(t, tt.body)
			c.Set("trans", trans)

			params := &writeBody{}
			valid, errs := BindAndValid(c, params)

			assert.Equal(t, tt.wantValid, valid)
			if tt.wantValid {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantKey, errs[0].Key)
			assert.NotContains(t, errs.ErrorsToString(), "writeBody")
		})
	}
}

func TestBindUriAndValid(t *testing.T) {
	_, err := validator.Install()
	require.NoError(t, err)

	c, _ := newJSONContext(t, "")
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	p := &idParam{}
	valid, errs := BindUriAndValid(c, p)
	assert.True(t, valid)
	assert.Empty(t, errs)
	assert.Equal(t, int64(12), p.ID)

	c, _ = newJSONContext(t, "")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	valid, errs = BindUriAndValid(c, &idParam{})
	assert.False(t, valid)
	assert.NotEmpty(t, errs)
}

func TestResponse_ToResponse(t *testing.T) {
	c, w := newJSONContext(t, "")
	NewResponse(c).ToResponse(code.ErrorNoteNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Note not found"}`, w.Body.String())

	c, w = newJSONContext(t, "")
	errs := ValidErrors{{Key: "content", Message: "content is a required field"}}
	NewResponse(c).ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid params: content is a required field","errors":[{"field":"content","message":"content is a required field"}]}`, w.Body.String())

	c, w = newJSONContext(t, "")
	NewResponse(c).ToData([]string{"a"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["a"]`, w.Body.String())
}
