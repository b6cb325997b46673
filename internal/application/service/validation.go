package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/sangkips/loyalty-admin/pkg/apperror"
	"github.com/shopspring/decimal"
)

// forms checks every console form, for the HTTP API and the CLI alike
var forms = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// field errors carry the JSON names the console sends
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if t, ok := field.Interface().(entity.Timestamp); ok {
			return t.Time
		}
		return nil
	}, entity.Timestamp{})

	mustRegister(v, "nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), " \t")
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	v.RegisterStructValidation(couponRules, CouponInput{})
	v.RegisterStructValidation(surveyRules, SurveyInput{})
	v.RegisterStructValidation(questionRules, QuestionInput{})
	v.RegisterStructValidation(campaignRules, CampaignInput{})
	v.RegisterStructValidation(rewardRules, RewardInput{})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// validateForm runs the form's tags and rules and returns a validation AppError
// listing every failed field
func validateForm(form any) error {
	err := forms.Struct(form)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	fields := make([]apperror.FieldError, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, apperror.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return apperror.NewValidationError(fields)
}

func fieldMessage(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "http_url":
		return "must be an http or https URL"
	case "nospace":
		return "must not contain spaces"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(param), ", ")
	case "gt":
		return "must be greater than " + param
	case "min":
		if param == "0" {
			return "must not be negative"
		}
		return "must be " + param + " or more"
	case "max":
		return "must not exceed " + param
	case "max_percentage":
		return "must not exceed " + param + " for a percentage coupon"
	case "after":
		return "must be after " + param
	case "not_before":
		return "must not be before " + param
	case "min_options":
		return "needs at least " + param + " options"
	case "required_for":
		return "is required for a " + param + " reward"
	}
	return "is invalid"
}

func couponRules(sl validator.StructLevel) {
	in := sl.Current().Interface().(CouponInput)
	if in.Type == enum.CouponTypePercentage && in.Value.GreaterThan(decimal.NewFromInt(100)) {
		sl.ReportError(in.Value, "value", "Value", "max_percentage", "100")
	}
	if !in.ValidFrom.IsZero() && !in.ValidUntil.IsZero() && !in.ValidUntil.After(in.ValidFrom.Time) {
		sl.ReportError(in.ValidUntil, "valid_until", "ValidUntil", "after", "valid_from")
	}
}

func surveyRules(sl validator.StructLevel) {
	in := sl.Current().Interface().(SurveyInput)
	if !in.StartsAt.IsZero() && !in.EndsAt.IsZero() && !in.EndsAt.After(in.StartsAt.Time) {
		sl.ReportError(in.EndsAt, "ends_at", "EndsAt", "after", "starts_at")
	}
}

func questionRules(sl validator.StructLevel) {
	in := sl.Current().Interface().(QuestionInput)
	if in.QuestionType.HasOptions() && len(in.Options) < 2 {
		sl.ReportError(in.Options, "options", "Options", "min_options", "2")
	}
}

func campaignRules(sl validator.StructLevel) {
	in := sl.Current().Interface().(CampaignInput)
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate.Time) {
		sl.ReportError(in.EndDate, "end_date", "EndDate", "not_before", "start_date")
	}
}

func rewardRules(sl validator.StructLevel) {
	in := sl.Current().Interface().(RewardInput)
	if in.RewardType == enum.RewardTypeCoupon {
		if in.CouponID.IsZero() {
			sl.ReportError(in.CouponID, "coupon_id", "CouponID", "required_for", "coupon")
		}
		return
	}
	if !in.RewardValue.IsPositive() {
		sl.ReportError(in.RewardValue, "reward_value", "RewardValue", "gt", "0")
	}
}
