package tramite

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateCURP(t *testing.T) {
	cases := []struct {
		name  string
		curp  string
		want  string
		valid bool
	}{
		{"valid", "GALO850101HTLRPN09", "GALO850101HTLRPN09", true},
		{"lowercase and spaces", "  galo850101htlrpn09 ", "GALO850101HTLRPN09", true},
		{"too short", "GALO850101HTL", "", false},
		{"bad month", "GALO851301HTLRPN09", "", false},
		{"bad day", "GALO850132HTLRPN09", "", false},
		{"bad sex letter", "GALO850101XTLRPN09", "", false},
		{"vowel in consonant block", "GALO850101HTLRAN09", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateCURP(tc.curp)
			if tc.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tc.want {
					t.Fatalf("got %q, want %q", got, tc.want)
				}
				return
			}
			if !errors.Is(err, ErrInvalidCURP) {
				t.Fatalf("got err %v, want ErrInvalidCURP", err)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		valid bool
	}{
		{"5512345678", "5512345678", true},
		{"(55) 1234-5678", "5512345678", true},
		{"55 12 34 56 78", "5512345678", true},
		{"123456789", "", false},
		{"+52 55 1234 5678", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, err := NormalizePhone(tc.in)
		if tc.valid {
			if err != nil || got != tc.want {
				t.Errorf("NormalizePhone(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidPhone) {
			t.Errorf("NormalizePhone(%q) err = %v, want ErrInvalidPhone", tc.in, err)
		}
	}
}

func validTestData() PersonalData {
	return PersonalData{
		Nombre:          "Oscar",
		ApellidoPaterno: "García",
		ApellidoMaterno: "López",
		FechaNacimiento: "1985-01-01",
		CURP:            "GALO850101HTLRPN09",
		Email:           "oscar@example.com",
		Telefono:        "(55) 1234-5678",
		Direccion:       "Av. Juárez 10",
	}
}

func TestValidatePersonalDataNormalizes(t *testing.T) {
	d := validTestData()
	d.Nombre = "  Oscar "
	d.CURP = "galo850101htlrpn09"

	if err := ValidatePersonalData(&d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Nombre != "Oscar" {
		t.Errorf("Nombre = %q, want trimmed", d.Nombre)
	}
	if d.CURP != "GALO850101HTLRPN09" {
		t.Errorf("CURP = %q, want uppercased", d.CURP)
	}
	if d.Telefono != "5512345678" {
		t.Errorf("Telefono = %q, want digits only", d.Telefono)
	}
}

func TestValidatePersonalDataFieldErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PersonalData)
		field  string
	}{
		{"missing nombre", func(d *PersonalData) { d.Nombre = "  " }, "nombre"},
		{"missing apellido paterno", func(d *PersonalData) { d.ApellidoPaterno = "" }, "apellidoPaterno"},
		{"missing birth date", func(d *PersonalData) { d.FechaNacimiento = "" }, "fechaNacimiento"},
		{"bad curp", func(d *PersonalData) { d.CURP = "XXX" }, "curp"},
		{"bad email", func(d *PersonalData) { d.Email = "not-an-email" }, "email"},
		{"short phone", func(d *PersonalData) { d.Telefono = "12345" }, "telefono"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validTestData()
			tc.mutate(&d)
			err := ValidatePersonalData(&d)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), tc.field+":") {
				t.Fatalf("error %q does not name field %q", err, tc.field)
			}
		})
	}
}
