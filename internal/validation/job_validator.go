package validation

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nsedata/downloader/internal/dates"
	"github.com/nsedata/downloader/internal/domain"
)

var validate = validator.New()

// ValidateCreateJob checks a job-creation request and returns one entry per
// invalid field. A nil result means the request is valid. Structural rules
// come from the validator tags; the date-format, ordering, span and
// future-date rules are checked here.
func ValidateCreateJob(req *domain.CreateJobRequest, now time.Time) []domain.FieldError {
	var fieldErrs []domain.FieldError

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, ve := range verrs {
				fieldErrs = append(fieldErrs, domain.FieldError{
					Field:   fieldName(ve.Field()),
					Message: tagMessage(ve),
				})
			}
		} else {
			fieldErrs = append(fieldErrs, domain.FieldError{Field: "request", Message: err.Error()})
		}
		return fieldErrs
	}

	start, err := dates.Parse(req.StartDate)
	if err != nil {
		return append(fieldErrs, domain.FieldError{Field: "start_date", Message: "date must be in DD/MM/YYYY format"})
	}

	end := start
	if req.JobType == domain.JobTypeRange {
		end, err = dates.Parse(req.EndDate)
		if err != nil {
			return append(fieldErrs, domain.FieldError{Field: "end_date", Message: "date must be in DD/MM/YYYY format"})
		}
	}

	if err := dates.ValidateRange(start, end, now); err != nil {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: "start_date", Message: err.Error()})
	}
	return fieldErrs
}

func fieldName(structField string) string {
	switch structField {
	case "JobType":
		return "job_type"
	case "StartDate":
		return "start_date"
	case "EndDate":
		return "end_date"
	case "DataSources":
		return "data_sources"
	}
	return structField
}

func tagMessage(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required", "required_if":
		return "field is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "min":
		return "at least one data source must be selected"
	}
	return fmt.Sprintf("failed validation: %s", ve.Tag())
}
