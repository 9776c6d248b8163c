package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps request bodies. Semantic checks (empty prompt, theme
// membership, name length) belong to the designs service so that
// ownership is checked first.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

type generateRequest struct {
	Prompt      string `json:"prompt" validate:"max=10000"`
	ProjectName string `json:"projectName" validate:"max=1000"`
	Theme       string `json:"theme" validate:"max=64"`
}

type screenRequest struct {
	Prompt string `json:"prompt" validate:"max=10000"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"max=64"`
}

type projectNameRequest struct {
	ProjectName string `json:"projectName" validate:"max=1000"`
}

// errInvalidRequest marks a body that could not be decoded or failed
// structural validation.
var errInvalidRequest = errors.New("invalid request body")

// decodeBody reads a single JSON object into dst and validates it. Unknown
// fields are ignored.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: body is empty", errInvalidRequest)
		}
		return fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", errInvalidRequest, describeValidation(err))
	}
	return nil
}

// describeValidation turns validator errors into a short client message.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "max":
			parts = append(parts, fmt.Sprintf("%s is too long (max %s characters)", jsonName(fe.StructField()), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %q", jsonName(fe.StructField()), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// jsonName lowercases the first letter of a Go field name.
func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
