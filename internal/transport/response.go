package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/labelsync/pkg/errors"
)

// apiErrorBody is the error document GitHub returns with 4xx responses.
type apiErrorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Resource string `json:"resource"`
		Field    string `json:"field"`
		Code     string `json:"code"`
	} `json:"errors"`
}

// DecodeResponse closes resp after decoding its JSON body into target.
// A status other than expected yields an *errors.APIError carrying method,
// endpoint and status. A nil target discards the body.
func DecodeResponse(resp *http.Response, method, endpoint string, expected int, target any) error {
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != expected {
		return &errors.APIError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, body),
		}
	}

	if target == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", method+" "+endpoint, err)
	}
	return nil
}

// errorMessage summarises an error body as "message: code, code".
func errorMessage(status int, body []byte) string {
	var doc apiErrorBody
	if err := json.Unmarshal(body, &doc); err != nil || doc.Message == "" {
		if text := strings.TrimSpace(string(body)); text != "" {
			return text
		}
		return http.StatusText(status)
	}

	codes := make([]string, 0, len(doc.Errors))
	for _, e := range doc.Errors {
		switch {
		case e.Code != "" && e.Field != "":
			codes = append(codes, fmt.Sprintf("%s (%s)", e.Code, e.Field))
		case e.Code != "":
			codes = append(codes, e.Code)
		}
	}
	if len(codes) == 0 {
		return doc.Message
	}
	return doc.Message + ": " + strings.Join(codes, ", ")
}
