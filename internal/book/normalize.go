package book

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Input carries the raw multipart field values of a create or update
// request. This is the only place raw wire strings are interpreted; the
// rest of the package works on the typed Book payload.
type Input struct {
	Title       string
	Description string
	Price       string
	Categories  string
	Languages   string
	Type        string
	Quantity    string
	IsMonthly   string
	Image       []byte
}

// payload mirrors Book's mutable fields for structural validation.
type payload struct {
	Title      string   `validate:"required"`
	Price      float64  `validate:"gte=0"`
	Categories []string `validate:"required,min=1"`
	Languages  []string `validate:"required,min=1"`
	Type       string   `validate:"required,oneof=single collection"`
	Quantity   int      `validate:"gte=0"`
}

var validate = validator.New()

// Normalize converts raw request fields into a validated Book payload or
// a *ValidationError listing every invalid field. It never touches the
// image store or the repository.
func Normalize(in Input) (Book, error) {
	var fields []FieldError

	var price float64
	if strings.TrimSpace(in.Price) == "" {
		fields = append(fields, FieldError{Field: "price", Message: "is required"})
	} else if v, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64); err != nil {
		fields = append(fields, FieldError{Field: "price", Message: "must be a number"})
	} else {
		price = v
	}

	var quantity int
	if strings.TrimSpace(in.Quantity) != "" {
		v, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
		if err != nil {
			fields = append(fields, FieldError{Field: "quantity", Message: "must be an integer"})
		} else {
			quantity = v
		}
	}

	categories := splitList(in.Categories)
	languages := splitList(in.Languages)

	p := payload{
		Title:      strings.TrimSpace(in.Title),
		Price:      price,
		Categories: categories,
		Languages:  languages,
		Type:       strings.TrimSpace(in.Type),
		Quantity:   quantity,
	}

	fields = append(fields, validateStruct(p)...)

	if invalid := invalidLanguages(languages); len(invalid) > 0 {
		fields = append(fields, FieldError{
			Field:   "languages",
			Message: fmt.Sprintf("invalid languages: %s", strings.Join(invalid, ", ")),
		})
	}

	if len(fields) > 0 {
		return Book{}, &ValidationError{Fields: fields}
	}

	return Book{
		Title:       p.Title,
		Description: strings.TrimSpace(in.Description),
		Price:       p.Price,
		Categories:  categories,
		Languages:   languages,
		Type:        p.Type,
		// Only the exact string "true" enables the flag, anything else
		// (including absence) is false.
		IsMonthly: in.IsMonthly == "true",
		Quantity:  quantity,
	}, nil
}

// splitList splits a comma-joined field, trims each token and drops
// empty ones, preserving input order.
func splitList(raw string) []string {
	var out []string
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}

// invalidLanguages returns every token outside the fixed enumeration,
// in input order. Duplicates are reported as supplied.
func invalidLanguages(languages []string) []string {
	valid := make(map[string]bool, len(ValidLanguages))
	for _, l := range ValidLanguages {
		valid[l] = true
	}
	var invalid []string
	for _, l := range languages {
		if !valid[l] {
			invalid = append(invalid, l)
		}
	}
	return invalid
}

func validateStruct(p payload) []FieldError {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fields []FieldError
	for _, ve := range err.(validator.ValidationErrors) {
		field := strings.ToLower(ve.Field())

		var message string
		switch ve.Tag() {
		case "required", "min":
			message = "is required"
		case "gte":
			message = "must not be negative"
		case "oneof":
			message = fmt.Sprintf("must be one of: %s", strings.ReplaceAll(ve.Param(), " ", ", "))
		default:
			message = "is invalid"
		}

		fields = append(fields, FieldError{Field: field, Message: message})
	}
	return fields
}
