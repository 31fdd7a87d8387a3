package tramite

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var (
	ErrInvalidCURP  = errors.New("curp inválida")
	ErrInvalidPhone = errors.New("teléfono inválido")
)

// curpPattern is the 18-character Mexican CURP layout: four name
// letters, birth date, sex, state code, three internal consonants,
// homoclave and check digit.
var curpPattern = regexp.MustCompile(`^[A-Z][AEIOUX][A-Z]{2}\d{2}(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])[HM][A-Z]{2}[B-DF-HJ-NP-TV-Z]{3}[A-Z0-9]\d$`)

// ValidateCURP checks the format only; it does not verify the check
// digit against the rest of the key.
func ValidateCURP(curp string) (string, error) {
	curp = strings.ToUpper(strings.TrimSpace(curp))
	if !curpPattern.MatchString(curp) {
		return "", ErrInvalidCURP
	}
	return curp, nil
}

// NormalizePhone strips separators and requires exactly 10 digits.
func NormalizePhone(phone string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	out := digits.String()
	if len(out) != 10 {
		return "", ErrInvalidPhone
	}
	return out, nil
}

// ValidatePersonalData normalizes and validates the citizen form. All
// field errors are caught here, before anything reaches the registry.
func ValidatePersonalData(d *PersonalData) error {
	d.Nombre = strings.TrimSpace(d.Nombre)
	d.ApellidoPaterno = strings.TrimSpace(d.ApellidoPaterno)
	d.ApellidoMaterno = strings.TrimSpace(d.ApellidoMaterno)
	d.FechaNacimiento = strings.TrimSpace(d.FechaNacimiento)
	d.Direccion = strings.TrimSpace(d.Direccion)
	d.Email = strings.TrimSpace(d.Email)

	if d.Nombre == "" {
		return fmt.Errorf("nombre: el campo es obligatorio")
	}
	if d.ApellidoPaterno == "" {
		return fmt.Errorf("apellidoPaterno: el campo es obligatorio")
	}
	if d.FechaNacimiento == "" {
		return fmt.Errorf("fechaNacimiento: el campo es obligatorio")
	}

	curp, err := ValidateCURP(d.CURP)
	if err != nil {
		return fmt.Errorf("curp: %w", err)
	}
	d.CURP = curp

	if _, err := mail.ParseAddress(d.Email); err != nil {
		return fmt.Errorf("email: dirección inválida")
	}

	phone, err := NormalizePhone(d.Telefono)
	if err != nil {
		return fmt.Errorf("telefono: %w", err)
	}
	d.Telefono = phone

	return nil
}
