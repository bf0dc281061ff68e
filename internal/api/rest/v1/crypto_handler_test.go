//go:build unit
// +build unit

package v1

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newJSONContext(t *testing.T, method, url, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestCryptoHandler_Digest(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockDigestService := new(MockDigestService)
		handler := NewCryptoHandler(mockDigestService, new(MockRandomService))

		mockDigestService.On("Digest", mock.Anything, "SHA-256", []byte("abc")).
			Return([]byte{0xba, 0x78}, nil)

		// "YWJj" is base64 for "abc"
		c, w := newJSONContext(t, "POST", "/digest", `{"algorithm":"SHA-256","data":"YWJj"}`)
		handler.Digest(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"algorithm":"SHA-256","digest":"ba78"}`, w.Body.String())
		mockDigestService.AssertExpectations(t)
	})

	t.Run("MissingAlgorithm", func(t *testing.T) {
		mockDigestService := new(MockDigestService)
		handler := NewCryptoHandler(mockDigestService, new(MockRandomService))

		c, w := newJSONContext(t, "POST", "/digest", `{"data":"YWJj"}`)
		handler.Digest(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockDigestService.AssertNotCalled(t, "Digest", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownAlgorithm", func(t *testing.T) {
		mockDigestService := new(MockDigestService)
		handler := NewCryptoHandler(mockDigestService, new(MockRandomService))

		mockDigestService.On("Digest", mock.Anything, "MD5", mock.Anything).
			Return(nil, fips.ErrUnknownAlgorithm)

		c, w := newJSONContext(t, "POST", "/digest", `{"algorithm":"MD5","data":"YWJj"}`)
		handler.Digest(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "digest failed")
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		handler := NewCryptoHandler(new(MockDigestService), new(MockRandomService))

		c, w := newJSONContext(t, "POST", "/digest", `{"algorithm":`)
		handler.Digest(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCryptoHandler_Random(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRandomService := new(MockRandomService)
		handler := NewCryptoHandler(new(MockDigestService), mockRandomService)

		mockRandomService.On("Generate", mock.Anything, 3).Return([]byte{1, 2, 3}, nil)

		c, w := newJSONContext(t, "POST", "/random", `{"length":3}`)
		handler.Random(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"bytes":"AQID"}`, w.Body.String())
		mockRandomService.AssertExpectations(t)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		for _, body := range []string{`{"length":-1}`, `{"length":65537}`} {
			mockRandomService := new(MockRandomService)
			handler := NewCryptoHandler(new(MockDigestService), mockRandomService)

			c, w := newJSONContext(t, "POST", "/random", body)
			handler.Random(c)

			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			mockRandomService.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		}
	})

	t.Run("ModuleFailure", func(t *testing.T) {
		mockRandomService := new(MockRandomService)
		handler := NewCryptoHandler(new(MockDigestService), mockRandomService)

		mockRandomService.On("Generate", mock.Anything, 16).
			Return(nil, fips.NewError(fips.KindOperation, "drbg.generate", "generation failed", nil))

		c, w := newJSONContext(t, "POST", "/random", `{"length":16}`)
		handler.Random(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
