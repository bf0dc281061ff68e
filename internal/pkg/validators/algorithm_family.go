package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// AlgorithmFamilyValidation checks that the sibling Algorithm field names a signature algorithm
// of the validated family ("rsa" or "ecdsa"). An empty Algorithm or family passes.
func AlgorithmFamilyValidation(fl validator.FieldLevel) bool {
	family := fl.Field().String()
	algorithm := strings.ToUpper(fl.Parent().FieldByName("Algorithm").String())
	if family == "" || algorithm == "" {
		return true
	}

	switch family {
	case "rsa":
		return strings.Contains(algorithm, "WITHRSA")
	case "ecdsa":
		return strings.Contains(algorithm, "WITHECDSA")
	default:
		return false
	}
}
