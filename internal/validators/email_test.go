package validators

import "testing"

// Sem rede: só os formatos rejeitados antes de qualquer lookup.
func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"semarroba",
		"@dominio.com",
		"usuario@",
	}
	for _, email := range bad {
		if IsEmailDomainValid(email) {
			t.Errorf("IsEmailDomainValid(%q) = true, want false", email)
		}
	}
}

func TestOnlyDigits(t *testing.T) {
	cases := []struct{ in, want string }{
		{"(11) 98888-7777", "11988887777"},
		{"+55 11 98888 7777", "5511988887777"},
		{"abc", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := OnlyDigits(tc.in); got != tc.want {
			t.Errorf("OnlyDigits(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
