package request

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

var noBlankItems = validation.By(func(value interface{}) error {
	items, _ := value.([]string)
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			return errors.New("must not contain blank entries")
		}
	}
	return nil
})

type UpdatePreferencesRequest struct {
	Categories []string `json:"categories"`
	Regions    []string `json:"regions"`
}

func (req *UpdatePreferencesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Categories, noBlankItems),
		validation.Field(&req.Regions, noBlankItems),
	)
}
