package schemas

import (
	"github.com/iota-uz/deptemp/pkg/validation"
)

const requiredMessage = "is required"

// ValidateQuery is the query of GET /validate.
type ValidateQuery struct {
	X *uint32 `form:"x" json:"x"`
	Y *string `form:"y" json:"y,omitempty"`
}

var validateQuerySchema = validation.NewSchema(
	validation.Of("x", func(q ValidateQuery) any { return q.X },
		validation.Required(requiredMessage),
		validation.IntRange(1, 10, "must be between 1 and 10")),
	validation.Of("y", func(q ValidateQuery) any { return q.Y },
		validation.Length(2, 5, "must be between 2 and 5 characters")),
)

func (q ValidateQuery) Validate() error {
	return validateQuerySchema.Validate(q)
}

// ValidateForm is the body of POST /validate. Absent fields echo back as null.
type ValidateForm struct {
	Name       *string `json:"name"`
	BirthMonth *uint32 `json:"birth_month"`
	Email      *string `json:"email"`
	HpURL      *string `json:"hp_url"`
	PostCode   *string `json:"post_code"`
}

var validateFormSchema = validation.NewSchema(
	validation.Of("name", func(f ValidateForm) any { return f.Name },
		validation.Required("name is required"),
		validation.Length(1, 10, "enter a name of 1 to 10 characters")),
	validation.Of("birth_month", func(f ValidateForm) any { return f.BirthMonth },
		validation.Required("birth month is required"),
		validation.IntRange(1, 12, "enter a birth month between 1 and 12")),
	validation.Of("email", func(f ValidateForm) any { return f.Email },
		validation.Email("email address is malformed")),
	validation.Of("hp_url", func(f ValidateForm) any { return f.HpURL },
		validation.URL("URL is malformed")),
	validation.Of("post_code", func(f ValidateForm) any { return f.PostCode },
		validation.Pattern(validation.PostCodeTag, "post code is malformed")),
)

func (f ValidateForm) Validate() error {
	return validateFormSchema.Validate(f)
}

type JSONRequest struct {
	Val1 *uint32 `json:"val1"`
	Val2 *string `json:"val2"`
}

type JSONResponse struct {
	ResVal1 uint32 `json:"res_val1"`
	ResVal2 string `json:"res_val2"`
}

type Path1Response struct {
	Value uint32 `json:"value"`
}
