package ingest

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/learnlens/internal/analysis/textstat"
	"github.com/yungbote/learnlens/internal/domain"
	"github.com/yungbote/learnlens/internal/platform/apierr"
)

const DefaultMinWords = 200

const (
	CodeInvalidRequest  = "invalid_request"
	CodeInvalidSections = "invalid_sections"
	CodeChapterTooShort = "chapter_too_short"
)

// Validator rejects requests that must never reach a run.
type Validator struct {
	v        *validator.Validate
	minWords int
}

func NewValidator(minWords int) *Validator {
	if minWords < 0 {
		minWords = 0
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v, minWords: minWords}
}

func (x *Validator) MinWords() int { return x.minWords }

// Validate checks request structure, then the word floor. Section offsets
// past the end of the text are not rejected here; the analyzer drops them.
func (x *Validator) Validate(req *domain.AnalysisRequest) error {
	if err := x.ValidateStructure(req); err != nil {
		return err
	}
	if words := textstat.WordCount(req.Chapter.Content); words < x.minWords {
		return apierr.New(http.StatusUnprocessableEntity, CodeChapterTooShort,
			fmt.Errorf("chapter has %d words; at least %d are needed for a meaningful analysis", words, x.minWords))
	}
	return nil
}

// ValidateStructure applies the field rules without the word floor.
func (x *Validator) ValidateStructure(req *domain.AnalysisRequest) error {
	if req == nil {
		return apierr.New(http.StatusBadRequest, CodeInvalidRequest, errors.New("request is empty"))
	}
	if err := x.v.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			code := CodeInvalidRequest
			if strings.Contains(verrs[0].Namespace(), ".sections[") {
				code = CodeInvalidSections
			}
			return apierr.New(http.StatusBadRequest, code, fmt.Errorf("%s failed %q validation", verrs[0].Namespace(), verrs[0].Tag()))
		}
		return apierr.New(http.StatusBadRequest, CodeInvalidRequest, err)
	}
	return nil
}
