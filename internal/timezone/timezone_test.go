package timezone

import "testing"

func TestIsValid(t *testing.T) {
	if !IsValid("America/Sao_Paulo") || !IsValid("UTC") {
		t.Error("fusos conhecidos devem ser válidos")
	}
	if IsValid("") || IsValid("Marte/Cratera") {
		t.Error("vazio e desconhecido devem ser inválidos")
	}
}

func TestLocationFallsBackToDefault(t *testing.T) {
	if got := Location("fuso-que-nao-existe"); got.String() != DefaultTimezone {
		t.Errorf("Location(inválido) = %s, want %s", got, DefaultTimezone)
	}
	if got := Location("UTC"); got.String() != "UTC" {
		t.Errorf("Location(UTC) = %s, want UTC", got)
	}
}
