package profileValidator

import (
	"reflect"
	"strings"

	"kmatch/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator reports struct violations under their json field names so the
// caller sees "personalInfo.name", not "PersonalInfo.Name".
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type PersonalInfo struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Gender     string `json:"gender" validate:"required,oneof=male female"`
	LookingFor string `json:"lookingFor" validate:"required"`
	Mobile     string `json:"mobile" validate:"required"`
}

type Demographics struct {
	DateOfBirth   string `json:"dateOfBirth" validate:"required"`
	Height        string `json:"height" validate:"required"`
	MaritalStatus string `json:"maritalStatus" validate:"required"`
	Religion      string `json:"religion" validate:"required"`
	Community     string `json:"community" validate:"required"`
	MotherTongue  string `json:"motherTongue" validate:"required"`
	Horoscope     bool   `json:"horoscope"`
}

type ProfessionalInfo struct {
	Education  string `json:"education" validate:"required"`
	Occupation string `json:"occupation" validate:"required"`
	Income     string `json:"income" validate:"required"`
}

type Location struct {
	City  string `json:"city" validate:"required"`
	State string `json:"state" validate:"required"`
}

type Credentials struct {
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type Subscription struct {
	Current string `json:"current"`
}

// CreateProfileRequest is the full signup payload. Every required field is
// checked in one declarative pass so a response lists all omissions at once.
type CreateProfileRequest struct {
	PersonalInfo     PersonalInfo     `json:"personalInfo"`
	Demographics     Demographics     `json:"demographics"`
	ProfessionalInfo ProfessionalInfo `json:"professionalInfo"`
	Location         Location         `json:"location"`
	Credentials      Credentials      `json:"credentials"`
	Subscription     *Subscription    `json:"subscription"`
	AppVersion       string           `json:"appVersion"`
}

// CreateProfile validator middleware
func CreateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				// Namespace is "createProfileRequest.personalInfo.name";
				// drop the root segment.
				field := fieldErr.Namespace()
				if idx := strings.Index(field, "."); idx >= 0 {
					field = field[idx+1:]
				}
				switch fieldErr.Tag() {
				case "email":
					errors[field] = "Invalid email!"
				case "oneof":
					errors[field] = "Must be one of: " + strings.ReplaceAll(fieldErr.Param(), " ", ", ")
				default:
					errors[field] = "This field is required!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateProfile", reqData)
		return c.Next()
	}
}

// UpdatedData enumerates the partial-update surface. Absent fields stay nil
// and are left untouched on the record.
type UpdatedData struct {
	Name       *string `json:"name"`
	Height     *string `json:"height"`
	Profession *string `json:"profession"`
	Education  *string `json:"education"`
	Religion   *string `json:"religion"`
	Caste      *string `json:"caste"`
	Language   *string `json:"language"`
	Hobbies    *string `json:"hobbies"`
	Family     *struct {
		Father *string `json:"father"`
		Mother *string `json:"mother"`
	} `json:"family"`
}

type UpdateProfileRequest struct {
	ProfileID   string       `json:"profileId"`
	UpdatedData *UpdatedData `json:"updatedData"`
}

// UpdateProfile validator middleware
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ProfileID == "" {
			errors["profileId"] = "Profile ID is required!"
		}
		if reqData.UpdatedData == nil {
			errors["updatedData"] = "Updated data is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateProfile", reqData)
		return c.Next()
	}
}
